package middleware

import (
	"context"
	"net/http"
	"net/url"
)

type cookiesKey struct{}

// Cookies parses the Cookie header into a name/value map on the context.
// A missing header yields an empty map. The first occurrence of a name
// wins; percent-encoded values are decoded when they are well formed.
func Cookies(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), cookiesKey{}, parseCookies(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func parseCookies(r *http.Request) map[string]string {
	out := make(map[string]string)
	for _, c := range r.Cookies() {
		if _, seen := out[c.Name]; seen {
			continue
		}
		v := c.Value
		if dec, err := url.PathUnescape(v); err == nil {
			v = dec
		}
		out[c.Name] = v
	}
	return out
}

// CookieMap returns the parsed cookies; nil when the stage did not run.
func CookieMap(ctx context.Context) map[string]string {
	m, _ := ctx.Value(cookiesKey{}).(map[string]string)
	return m
}

// Cookie looks name up in the parsed map, falling back to the raw header
// for handlers mounted without the cookie stage.
func Cookie(r *http.Request, name string) (string, bool) {
	if m := CookieMap(r.Context()); m != nil {
		v, ok := m[name]
		return v, ok
	}
	c, err := r.Cookie(name)
	if err != nil {
		return "", false
	}
	return c.Value, true
}
