package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/profilehub/backend/internal/api/handlers"
	mw "github.com/profilehub/backend/internal/api/middleware"
)

// Greeting is the body of GET /.
const Greeting = "Welcome to the backend API!"

type Dependencies struct {
	// Auth and Data are mounted at /user/auth and /user/data.
	Auth http.Handler
	Data http.Handler

	Readiness handlers.Readiness

	SecurityHeaders bool
	CSP             mw.CSPDirectives
	// CORS disables the cross-origin stage when nil.
	CORS *mw.CORSConfig

	BodyLimit   int64
	RateLimiter *mw.RateLimiter
	// Registry enables /metrics and request metrics when set.
	Registry *prometheus.Registry
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	if dep.Registry != nil {
		r.Use(mw.NewMetrics(dep.Registry).Middleware)
	}

	// Headers first so that 429s and compressed bodies carry them too.
	if dep.SecurityHeaders {
		csp := dep.CSP
		if len(csp) == 0 {
			csp = mw.DefaultCSP()
		}
		r.Use(mw.SecurityHeaders(csp))
	}
	if dep.CORS != nil {
		r.Use(mw.CORS(*dep.CORS))
	}
	if dep.RateLimiter != nil {
		r.Use(dep.RateLimiter.Middleware)
	}
	r.Use(chimid.Compress(5))
	r.Use(mw.JSONBody(dep.BodyLimit))
	r.Use(mw.Cookies)

	hh := handlers.NewHealthHandler(dep.Readiness)
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)
	if dep.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(dep.Registry, promhttp.HandlerOpts{}))
	}

	if dep.Auth != nil {
		r.Mount("/user/auth", dep.Auth)
	}
	if dep.Data != nil {
		r.Mount("/user/data", dep.Data)
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(Greeting))
	})

	return r
}
