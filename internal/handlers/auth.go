package handlers

import (
	"errors"
	"net/http"

	"github.com/dkotelnikov/contacts/internal/apperrors"
	"github.com/dkotelnikov/contacts/internal/handlers/render"
)

type AuthHandler struct {
	authService authService
}

func NewAuth(auth authService) *AuthHandler {
	return &AuthHandler{authService: auth}
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	type LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	type LoginUser struct {
		Username string `json:"username"`
	}
	type LoginSuccessResponse struct {
		Token string    `json:"token"`
		User  LoginUser `json:"user"`
	}

	data, err := render.BindAndValidate[LoginRequest](w, r)
	if err != nil {
		// Consider to log errors here
		return
	}

	issued, user, err := h.authService.Login(r.Context(), data.Username, data.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			render.Error(w, "Invalid username or password", http.StatusUnauthorized)
		default:
			render.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.JSON(w, LoginSuccessResponse{
		Token: issued.Value,
		User:  LoginUser{Username: user.Username},
	})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	type LogoutSuccessResponse struct {
		Message string `json:"message"`
	}

	tokenValue, err := h.authService.BearerToken(r)
	if err != nil {
		render.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	err = h.authService.Logout(r.Context(), tokenValue)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidToken):
			render.Error(w, "Unauthorized", http.StatusUnauthorized)
		case errors.Is(err, apperrors.ErrAuthUnavailable):
			render.Error(w, "Service unavailable", http.StatusServiceUnavailable)
		default:
			render.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.JSON(w, LogoutSuccessResponse{Message: "User logged out successfully"})
}
