package sqlite

import (
	"errors"
	"strings"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sakif/news-api/internal/apperror"
)

// isForeignKeyViolation reports whether err is SQLite rejecting a row whose
// REFERENCES target is missing.
//
// modernc.org/sqlite reports the extended result code (787) when it has one.
// Older builds only surface the primary SQLITE_CONSTRAINT code, so the message
// is checked as a fallback.
func isForeignKeyViolation(err error) bool {
	var se *moderncsqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	code := se.Code()
	if code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
		return true
	}
	return code&0xff == sqlite3.SQLITE_CONSTRAINT &&
		strings.Contains(se.Error(), "FOREIGN KEY")
}

// foreignKeyError wraps a driver error as a store-level ForeignKey error on
// the given referenced column.
//
// SQLite, unlike Postgres, does not say WHICH constraint failed, so the caller
// works that out and passes it in.
func foreignKeyError(ref string, err error) error {
	return &apperror.StoreError{
		Kind:       apperror.ForeignKey,
		Constraint: ref,
		Err:        err,
	}
}
