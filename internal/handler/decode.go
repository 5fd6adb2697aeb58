package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sakif/news-api/internal/apperror"
)

// maxBodyBytes caps request bodies; the largest legitimate one is a comment.
const maxBodyBytes = 1 << 20

// decodeBody reads a JSON object into dst. An empty body leaves dst at its
// zero value, so missing fields are reported by validation with their own
// message. Anything that is not valid JSON is a plain Bad Request.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return apperror.BadRequest("Bad Request")
	}
	return nil
}
