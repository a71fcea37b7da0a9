package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONBody(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("parses objects", func(t *testing.T) {
		var got payload
		var decoded any
		h := JSONBody(DefaultBodyLimit)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decoded, _ = Body(r.Context())
			require.NoError(t, BindJSON(r, &got))
		}))
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ada"}`))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "ada", got.Name)
		assert.Equal(t, map[string]any{"name": "ada"}, decoded)
	})

	t.Run("empty body is not an error", func(t *testing.T) {
		var bindErr error
		h := JSONBody(DefaultBodyLimit)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bindErr = BindJSON(r, &payload{})
		}))
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("  "))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.ErrorIs(t, bindErr, ErrNoBody)
	})

	t.Run("other content types pass through", func(t *testing.T) {
		var reached bool
		h := JSONBody(DefaultBodyLimit)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			require.Nil(t, RawBody(r.Context()))
		}))
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "text/plain")
		h.ServeHTTP(httptest.NewRecorder(), req)
		require.True(t, reached)
	})

	failures := map[string]string{
		"malformed":  `{"name":`,
		"scalar":     `"just a string"`,
		"over limit": `{"name":"` + strings.Repeat("x", 64) + `"}`,
	}
	for name, body := range failures {
		t.Run(name, func(t *testing.T) {
			var reached bool
			h := JSONBody(32)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
			}))
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			require.False(t, reached)
			require.Equal(t, http.StatusInternalServerError, rr.Code)
			require.Equal(t, ErrorBody, rr.Body.String())
		})
	}
}
