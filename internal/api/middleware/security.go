package middleware

import (
	"net/http"
	"strings"
)

// Directive is one Content-Security-Policy directive. A directive with no
// sources is emitted bare (e.g. upgrade-insecure-requests).
type Directive struct {
	Name    string
	Sources []string
}

// CSPDirectives is an ordered Content-Security-Policy.
type CSPDirectives []Directive

// String renders the policy in header form.
func (d CSPDirectives) String() string {
	parts := make([]string, 0, len(d))
	for _, dir := range d {
		if len(dir.Sources) == 0 {
			parts = append(parts, dir.Name)
			continue
		}
		parts = append(parts, dir.Name+" "+strings.Join(dir.Sources, " "))
	}
	return strings.Join(parts, "; ")
}

const feedbackOrigin = "https://vercel.live"

// DefaultCSP allows same-origin content plus the Vercel live feedback widget.
func DefaultCSP() CSPDirectives {
	return CSPDirectives{
		{Name: "default-src", Sources: []string{"'self'"}},
		{Name: "script-src", Sources: []string{"'self'", "'unsafe-inline'", "'unsafe-eval'", feedbackOrigin, feedbackOrigin + "/_next-live/feedback/feedback.js"}},
		{Name: "script-src-elem", Sources: []string{"'self'", feedbackOrigin, feedbackOrigin + "/_next-live/feedback/feedback.js"}},
		{Name: "connect-src", Sources: []string{"'self'", feedbackOrigin}},
		{Name: "style-src", Sources: []string{"'self'", "'unsafe-inline'"}},
		{Name: "img-src", Sources: []string{"'self'", "data:"}},
		{Name: "base-uri", Sources: []string{"'self'"}},
		{Name: "font-src", Sources: []string{"'self'", "https:", "data:"}},
		{Name: "form-action", Sources: []string{"'self'"}},
		{Name: "frame-ancestors", Sources: []string{"'self'"}},
		{Name: "object-src", Sources: []string{"'none'"}},
		{Name: "script-src-attr", Sources: []string{"'none'"}},
		{Name: "upgrade-insecure-requests"},
	}
}

// SecurityHeaders sets the CSP and the companion hardening headers on every
// response. The header set is rendered once.
func SecurityHeaders(csp CSPDirectives) func(http.Handler) http.Handler {
	headers := [][2]string{
		{"Content-Security-Policy", csp.String()},
		{"Cross-Origin-Opener-Policy", "same-origin"},
		{"Cross-Origin-Resource-Policy", "same-origin"},
		{"Origin-Agent-Cluster", "?1"},
		{"Referrer-Policy", "no-referrer"},
		{"Strict-Transport-Security", "max-age=31536000; includeSubDomains"},
		{"X-Content-Type-Options", "nosniff"},
		{"X-DNS-Prefetch-Control", "off"},
		{"X-Download-Options", "noopen"},
		{"X-Frame-Options", "SAMEORIGIN"},
		{"X-Permitted-Cross-Domain-Policies", "none"},
		{"X-XSS-Protection", "0"},
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, kv := range headers {
				h.Set(kv[0], kv[1])
			}
			next.ServeHTTP(w, r)
		})
	}
}
