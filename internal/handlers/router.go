package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dkotelnikov/contacts/internal/models"
)

type authService interface {
	// Login user with username and password
	// Has to return apperrors.ErrInvalidCredentials for unknown username
	// and wrong password alike
	Login(ctx context.Context, username string, password string) (models.IssuedToken, models.User, error)

	// Revoke the token until its natural expiry
	// Has to return apperrors.ErrInvalidToken if the token can't be decoded
	Logout(ctx context.Context, tokenValue string) error

	// Extract bearer credential from the request
	// Has to return apperrors.ErrMissingToken if absent or malformed
	BearerToken(r *http.Request) (string, error)
}

type userService interface {
	// Create user with username and password
	// Has to return apperrors.ErrUserAlreadyExists if username is taken
	CreateUser(ctx context.Context, username string, password string) (models.User, error)
}

type contactService interface {
	CreateContact(ctx context.Context, user *models.User, name string, phone string) (models.Contact, error)
	ListContacts(ctx context.Context, user *models.User) ([]models.Contact, error)
	GetContact(ctx context.Context, user *models.User, contactID uuid.UUID) (models.Contact, error)
	UpdateContact(ctx context.Context, user *models.User, contactID uuid.UUID, name string, phone string) (models.Contact, error)
	DeleteContact(ctx context.Context, user *models.User, contactID uuid.UUID) error
}

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	userHandler *UserHandler,
	authHandler *AuthHandler,
	contactHandler *ContactHandler,
	authMiddleware func(http.Handler) http.Handler,
	mds ...func(http.Handler) http.Handler,
) http.Handler {
	withAuth := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(h)
	}

	mux := http.NewServeMux()

	mux.Handle("POST /users", http.HandlerFunc(userHandler.create))
	mux.Handle("POST /users/login", http.HandlerFunc(authHandler.login))

	// Logout is deliberately outside the auth middleware: the middleware
	// rejects revoked tokens, which would make a repeated logout fail
	// instead of being the no-op it is supposed to be
	mux.Handle("POST /users/logout", http.HandlerFunc(authHandler.logout))

	mux.Handle("GET /contacts", withAuth(contactHandler.list))
	mux.Handle("POST /contacts", withAuth(contactHandler.create))
	mux.Handle("GET /contacts/{id}", withAuth(contactHandler.get))
	mux.Handle("PUT /contacts/{id}", withAuth(contactHandler.update))
	mux.Handle("DELETE /contacts/{id}", withAuth(contactHandler.delete))

	return chain(mux, mds...)
}
