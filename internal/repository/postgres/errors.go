package postgres

import (
	"errors"
	"strings"

	"github.com/lib/pq"

	"github.com/sakif/news-api/internal/apperror"
)

// SQLSTATE codes the API maps to client errors.
const (
	codeInvalidText = pq.ErrorCode("22P02") // invalid_text_representation
	codeForeignKey  = pq.ErrorCode("23503") // foreign_key_violation
	codeOutOfRange  = pq.ErrorCode("22003") // numeric_value_out_of_range
)

// Default constraint names Postgres gives the comments table's REFERENCES
// clauses (<table>_<column>_fkey).
const (
	constraintCommentArticle = "comments_article_id_fkey"
	constraintCommentAuthor  = "comments_author_fkey"
)

// translate turns the driver errors the API cares about into StoreErrors and
// returns everything else unchanged.
func translate(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case codeInvalidText:
		return &apperror.StoreError{Kind: apperror.InvalidText, Err: err}
	case codeOutOfRange:
		return &apperror.StoreError{Kind: apperror.OutOfRange, Err: err}
	case codeForeignKey:
		return &apperror.StoreError{
			Kind:       apperror.ForeignKey,
			Constraint: referencedColumn(pqErr.Constraint),
			Err:        err,
		}
	}
	return err
}

func referencedColumn(constraint string) string {
	switch constraint {
	case constraintCommentArticle:
		return apperror.RefArticle
	case constraintCommentAuthor:
		return apperror.RefAuthor
	}
	if strings.Contains(constraint, "author") {
		return apperror.RefAuthor
	}
	return apperror.RefArticle
}
