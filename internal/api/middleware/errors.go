package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/profilehub/backend/pkg/logger"
)

// ErrorBody is the only body the terminal error stage ever sends. Error
// detail stays in the server log.
const ErrorBody = "Something went wrong!"

// HandlerFunc is an http.HandlerFunc that hands unexpected failures to the
// terminal error stage instead of writing them itself.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// HandleErr adapts h to http.HandlerFunc; a non-nil error ends in Fail.
func HandleErr(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			Fail(w, r, err)
		}
	}
}

// Fail is the terminal error stage: it logs err and answers 500 with
// ErrorBody. Errors are not classified.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context()).Error("Internal Server Error",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	h := w.Header()
	h.Del("Content-Length")
	h.Set("Content-Type", "text/plain; charset=utf-8")
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(ErrorBody))
}
