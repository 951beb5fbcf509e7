package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/LogM3/Poster/internal/forms"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
)

type UserResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

type LoginFormResponse struct {
	Form []forms.Field `json:"form"`
	Next string        `json:"next"`
}

type SignupFormResponse struct {
	Form []forms.Field `json:"form"`
}

// safeNext keeps only local paths so the login form can't bounce to another host.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return "/"
	}
	return next
}

func (h *Handlers) setAuthCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessCookie,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   int(h.Cfg.AccessTokenDuration / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookie,
		Value:    refreshToken,
		Path:     "/auth/",
		MaxAge:   int(h.Cfg.RefreshTokenDuration / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		writeSuccess(w, SignupFormResponse{Form: forms.SignupFields}, http.StatusOK)
		return
	}

	form, err := h.decodeSignupForm(w, r)
	if err != nil {
		writeDecodeError(w, err, form)
		return
	}

	if _, err := h.AuthService.Register(r.Context(), form); err != nil {
		form.Password = ""
		h.writeServiceError(w, r, err, form)
		return
	}

	redirect(w, r, "/")
}

// Login issues a token pair, stores it in cookies and sends the user on to next.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		writeSuccess(w, LoginFormResponse{
			Form: forms.LoginFields,
			Next: safeNext(r.URL.Query().Get("next")),
		}, http.StatusOK)
		return
	}

	form, err := h.decodeLoginForm(w, r)
	if err != nil {
		writeDecodeError(w, err, form)
		return
	}

	_, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), form)
	if err != nil {
		form.Password = ""
		h.writeServiceError(w, r, err, form)
		return
	}

	h.setAuthCookies(w, accessToken, refreshToken)

	next := r.URL.Query().Get("next")
	if formNext := r.PostFormValue("next"); formNext != "" {
		next = formNext
	}
	redirect(w, r, safeNext(next))
}

// RefreshToken accepts the refresh token from the body or its cookie.
func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req forms.RefreshForm
	if isJSON(r) {
		if err := decodeJSON(r, &req); err != nil {
			WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
			return
		}
	} else {
		req.RefreshToken = r.PostFormValue("refresh_token")
	}

	if req.RefreshToken == "" {
		if cookie, err := r.Cookie(refreshCookie); err == nil {
			req.RefreshToken = cookie.Value
		}
	}

	if req.RefreshToken == "" {
		WriteError(w, "Отсутствует refreshToken", http.StatusBadRequest)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		h.writeServiceError(w, r, err, nil)
		return
	}

	h.setAuthCookies(w, accessToken, refreshToken)
	writeSuccess(w, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserResponse{
			UserID:   user.UserID,
			Username: user.Username,
			Role:     user.Role,
		},
	}, http.StatusOK)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: accessCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	http.SetCookie(w, &http.Cookie{Name: refreshCookie, Value: "", Path: "/auth/", MaxAge: -1, HttpOnly: true})
	redirect(w, r, "/")
}
