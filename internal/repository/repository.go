package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dkotelnikov/contacts/internal/models"
)

// User repository interface
type UserRepo interface {
	// Create user
	// If user with username exists already has to return apperrors.ErrUserAlreadyExists
	CreateUser(ctx context.Context, username string, hashedPassword string) (models.User, error)

	// Get user by it's id or username
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
}

// Contact repository interface
// Every method is scoped by the owning user: a contact of another user
// is indistinguishable from a missing one (apperrors.ErrContactNotFound)
type ContactRepo interface {
	CreateContact(ctx context.Context, userID uuid.UUID, name string, phone string) (models.Contact, error)
	ListContacts(ctx context.Context, userID uuid.UUID) ([]models.Contact, error)
	GetContact(ctx context.Context, userID uuid.UUID, contactID uuid.UUID) (models.Contact, error)
	UpdateContact(ctx context.Context, userID uuid.UUID, contactID uuid.UUID, name string, phone string) (models.Contact, error)
	DeleteContact(ctx context.Context, userID uuid.UUID, contactID uuid.UUID) error
}

// Blocklist of revoked token ids
// Absence of the id means the token is not revoked
type RevocationLedger interface {
	// Mark token id revoked for ttl
	// Idempotent: revoking an already revoked or expired id is not an error.
	// Negative or zero ttl is a no-op (the token expired on its own already)
	Revoke(ctx context.Context, tokenID uuid.UUID, ttl time.Duration) error

	// Check if token id is revoked
	// Has to return apperrors.ErrAuthUnavailable if the underlying store
	// can't be reached, never a silent "not revoked"
	IsRevoked(ctx context.Context, tokenID uuid.UUID) (bool, error)
}

// Storage aggregates long term repositories
type Storage interface {
	User() UserRepo
	Contact() ContactRepo

	// Run fn in database transaction
	InTx(ctx context.Context, fn func(Storage) error) error
}
