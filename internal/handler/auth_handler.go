package handlers

import (
	"net/http"
	"time"

	"socialnet/internal/models"
	"socialnet/internal/service"
)

const tokenCookie = "token"

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required,max=100"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *models.User `json:"user"`
}

func (h *Handlers) setTokenCookie(w http.ResponseWriter, token string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.Cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) writeAuth(w http.ResponseWriter, user *models.User, accessToken, refreshToken string, status int) {
	h.setTokenCookie(w, accessToken, h.Cfg.AccessTokenDuration)
	writeJSON(w, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, status)
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := h.decodeJSON(r, &req); err != nil {
		WriteAppError(w, r, err)
		return
	}

	_, err := h.AuthService.Register(r.Context(), service.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: h.sanitize(req.FullName),
	})
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	h.writeAuth(w, user, accessToken, refreshToken, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := h.decodeJSON(r, &req); err != nil {
		WriteAppError(w, r, err)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	h.writeAuth(w, user, accessToken, refreshToken, http.StatusOK)
}

func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := h.decodeJSON(r, &req); err != nil {
		WriteAppError(w, r, err)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	h.writeAuth(w, user, accessToken, refreshToken, http.StatusOK)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	if err := h.AuthService.Logout(r.Context(), p.UserID); err != nil {
		WriteAppError(w, r, err)
		return
	}

	h.setTokenCookie(w, "", -time.Second)
	writeMessage(w, "Logged out", http.StatusOK)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	user, err := h.AuthService.CurrentUser(r.Context(), p.UserID)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeJSON(w, user, http.StatusOK)
}
