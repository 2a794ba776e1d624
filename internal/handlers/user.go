package handlers

import (
	"errors"
	"net/http"

	"github.com/dkotelnikov/contacts/internal/apperrors"
	"github.com/dkotelnikov/contacts/internal/handlers/render"
)

type UserHandler struct {
	userService userService
}

func NewUser(users userService) *UserHandler {
	return &UserHandler{userService: users}
}

func (h *UserHandler) create(w http.ResponseWriter, r *http.Request) {
	type CreateUserRequest struct {
		Username string `json:"username" validate:"required,min=3,max=50"`
		Password string `json:"password" validate:"required,min=6"`
	}
	type CreateUserSuccessResponse struct {
		Message string `json:"message"`
	}

	data, err := render.BindAndValidate[CreateUserRequest](w, r)
	if err != nil {
		// Consider to log errors here
		return
	}

	_, err = h.userService.CreateUser(r.Context(), data.Username, data.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUserAlreadyExists):
			render.Error(w, "User already exists", http.StatusBadRequest)
		default:
			render.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.JSONWithStatus(w, CreateUserSuccessResponse{Message: "User created successfully"}, http.StatusCreated)
}
