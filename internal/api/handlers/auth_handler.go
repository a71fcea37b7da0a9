package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/profilehub/backend/internal/api/middleware"
	"github.com/profilehub/backend/internal/api/types"
	"github.com/profilehub/backend/internal/models"
	"github.com/profilehub/backend/internal/services"
)

// CookieOptions controls the token cookie. Cross-site SPAs need
// SameSite=None, which browsers only accept together with Secure.
type CookieOptions struct {
	Secure bool
}

type AuthHandler struct {
	auth    services.AuthService
	cookies CookieOptions
	now     func() time.Time
}

func NewAuthHandler(auth services.AuthService, cookies CookieOptions) *AuthHandler {
	return &AuthHandler{auth: auth, cookies: cookies, now: time.Now}
}

// Routes returns the /user/auth router. requireAuth guards the routes that
// need a signed-in caller.
func (h *AuthHandler) Routes(requireAuth func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/register", middleware.HandleErr(h.Register))
	r.Post("/login", middleware.HandleErr(h.Login))
	r.Post("/logout", h.Logout)
	r.With(requireAuth).Get("/me", middleware.HandleErr(h.Me))
	return r
}

func userView(u *models.User) map[string]any {
	return map[string]any{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) error {
	var req types.RegisterRequest
	if err := bind(r, &req); err != nil {
		return respondErr(w, r, err)
	}

	u, err := h.auth.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return respondErr(w, r, err)
	}

	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: userView(u)})
	return nil
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) error {
	var req types.LoginRequest
	if err := bind(r, &req); err != nil {
		return respondErr(w, r, err)
	}

	token, u, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		return respondErr(w, r, err)
	}

	http.SetCookie(w, h.tokenCookie(token, h.now().Add(services.TokenTTL)))
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data: map[string]any{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_in":   int(services.TokenTTL.Seconds()),
			"user":         userView(u),
		},
	})
	return nil
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	c := h.tokenCookie("", time.Unix(0, 0))
	c.MaxAge = -1
	http.SetCookie(w, c)
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) error {
	u, err := h.auth.Profile(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		return respondErr(w, r, err)
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: userView(u)})
	return nil
}

func (h *AuthHandler) tokenCookie(value string, expires time.Time) *http.Cookie {
	c := &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if h.cookies.Secure {
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}
