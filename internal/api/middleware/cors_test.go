package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frontend = "https://app.example.com"

func corsHandler(reached *bool) http.Handler {
	return CORS(NewCORSConfig(frontend))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*reached = true
		_, _ = w.Write([]byte("ok"))
	}))
}

func TestCORSMatchingOrigin(t *testing.T) {
	var reached bool
	req := httptest.NewRequest(http.MethodGet, "/user/data", nil)
	req.Header.Set("Origin", frontend)
	rr := httptest.NewRecorder()
	corsHandler(&reached).ServeHTTP(rr, req)

	require.True(t, reached)
	assert.Equal(t, frontend, rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSForeignOriginIsNotRejected(t *testing.T) {
	var reached bool
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr := httptest.NewRecorder()
	corsHandler(&reached).ServeHTTP(rr, req)

	require.True(t, reached)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	for _, path := range []string{"/", "/user/auth/login", "/no/such/route"} {
		t.Run(path, func(t *testing.T) {
			var reached bool
			req := httptest.NewRequest(http.MethodOptions, path, nil)
			req.Header.Set("Origin", frontend)
			req.Header.Set("Access-Control-Request-Method", http.MethodPut)
			req.Header.Set("Access-Control-Request-Headers", "Content-Type")
			rr := httptest.NewRecorder()
			corsHandler(&reached).ServeHTTP(rr, req)

			require.False(t, reached)
			require.Equal(t, http.StatusNoContent, rr.Code)
			require.Empty(t, rr.Body.String())
			assert.Equal(t, frontend, rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
			assert.Equal(t, "GET,POST,PUT,DELETE", rr.Header().Get("Access-Control-Allow-Methods"))
			assert.Equal(t, "Content-Type,Authorization,X-Requested-With", rr.Header().Get("Access-Control-Allow-Headers"))
		})
	}
}

func TestCORSBareOptions(t *testing.T) {
	var reached bool
	req := httptest.NewRequest(http.MethodOptions, "/anything", nil)
	req.Header.Set("Origin", frontend)
	rr := httptest.NewRecorder()
	corsHandler(&reached).ServeHTTP(rr, req)

	require.False(t, reached)
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, frontend, rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET,POST,PUT,DELETE", rr.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORSEmptyOriginAllowsNobody(t *testing.T) {
	h := CORS(NewCORSConfig(""))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", frontend)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflightIgnoresRequestedMethodAndHeaders(t *testing.T) {
	var reached bool
	req := httptest.NewRequest(http.MethodOptions, "/user/data/x", nil)
	req.Header.Set("Origin", frontend)
	req.Header.Set("Access-Control-Request-Method", "PATCH")
	req.Header.Set("Access-Control-Request-Headers", "X-Custom")
	rr := httptest.NewRecorder()
	corsHandler(&reached).ServeHTTP(rr, req)

	require.False(t, reached)
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, frontend, rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "GET,POST,PUT,DELETE", rr.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type,Authorization,X-Requested-With", rr.Header().Get("Access-Control-Allow-Headers"))
	assert.Contains(t, rr.Header().Values("Vary"), "Origin")
}

func TestCORSPreflightForeignOrigin(t *testing.T) {
	var reached bool
	req := httptest.NewRequest(http.MethodOptions, "/user/data/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	corsHandler(&reached).ServeHTTP(rr, req)

	require.False(t, reached)
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Methods"))
}
