package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	appErr "github.com/profilehub/backend/pkg/errors"
)

// DefaultBodyLimit caps JSON payloads at 100 KiB.
const DefaultBodyLimit int64 = 100 << 10

var (
	ErrNoBody       = errors.New("request has no JSON body")
	ErrBodyTooLarge = errors.New("request body too large")
	ErrNotJSON      = errors.New("JSON body must be an object or array")
)

type bodyKey struct{}

type jsonBody struct {
	raw   []byte
	value any
}

// JSONBody parses application/json payloads up to limit bytes and stores
// the result on the request context. Other content types pass through
// untouched. Malformed or oversized payloads go to the terminal error stage.
func JSONBody(limit int64) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = DefaultBodyLimit
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody || !isJSON(r) {
				next.ServeHTTP(w, r)
				return
			}
			body, err := readJSON(r.Body, limit)
			if err != nil {
				Fail(w, r, appErr.Wrap(err, appErr.CodeInvalid, "parse json body"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body.raw))
			ctx := context.WithValue(r.Context(), bodyKey{}, body)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isJSON(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(ct)
	return err == nil && mt == "application/json"
}

func readJSON(rc io.ReadCloser, limit int64) (*jsonBody, error) {
	defer rc.Close()
	raw, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(raw)) > limit {
		return nil, ErrBodyTooLarge
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return &jsonBody{}, nil
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return nil, ErrNotJSON
	}
	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	return &jsonBody{raw: trimmed, value: v}, nil
}

// Body returns the decoded JSON payload, if the request had one.
func Body(ctx context.Context) (any, bool) {
	b, ok := ctx.Value(bodyKey{}).(*jsonBody)
	if !ok || b.raw == nil {
		return nil, false
	}
	return b.value, true
}

// RawBody returns the validated JSON bytes, or nil.
func RawBody(ctx context.Context) []byte {
	if b, ok := ctx.Value(bodyKey{}).(*jsonBody); ok {
		return b.raw
	}
	return nil
}

// BindJSON decodes the parsed payload into dst. It returns ErrNoBody when
// the body stage found nothing to parse.
func BindJSON(r *http.Request, dst any) error {
	raw := RawBody(r.Context())
	if raw == nil {
		return ErrNoBody
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return appErr.Wrap(err, appErr.CodeInvalid, "body does not match the expected shape")
	}
	return nil
}
