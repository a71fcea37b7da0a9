package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CORSConfig is the process-wide cross-origin policy. It is built once at
// startup and only read afterwards.
type CORSConfig struct {
	AllowedOrigin    string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
}

// NewCORSConfig returns the policy for a single trusted frontend origin.
// An empty origin allows no cross-origin caller.
func NewCORSConfig(frontendURL string) CORSConfig {
	return CORSConfig{
		AllowedOrigin:    frontendURL,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
	}
}

// CORS applies cfg. A mismatching Origin is not rejected: the response just
// lacks Access-Control-Allow-Origin and the browser enforces the rest.
// OPTIONS on any path ends here with 204 and no body. Pre-flight headers
// depend on the origin alone, not on the requested method or headers.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		AllowCredentials: cfg.AllowCredentials,
	})

	methods := strings.Join(cfg.AllowedMethods, ",")
	headers := strings.Join(cfg.AllowedHeaders, ",")
	preflight := func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Add("Vary", "Origin")
		h.Add("Vary", "Access-Control-Request-Method")
		h.Add("Vary", "Access-Control-Request-Headers")
		if origin := r.Header.Get("Origin"); origin != "" && origin == cfg.AllowedOrigin {
			h.Set("Access-Control-Allow-Origin", origin)
			if cfg.AllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)
		}
		w.WriteHeader(http.StatusNoContent)
	}

	return func(next http.Handler) http.Handler {
		actual := c.Handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				preflight(w, r)
				return
			}
			actual.ServeHTTP(w, r)
		})
	}
}
