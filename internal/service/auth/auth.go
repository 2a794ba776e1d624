package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dkotelnikov/contacts/internal/apperrors"
	"github.com/dkotelnikov/contacts/internal/models"
	"github.com/dkotelnikov/contacts/internal/repository"
	"github.com/dkotelnikov/contacts/internal/service/auth/tokenmanager"
)

const (
	defaultHeaderName = "Authorization"
	defaultAuthScheme = "Bearer"
)

// Compare target for logins with unknown username, so both failure paths
// spend a bcrypt comparison and answer in about the same time
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Interface to create or compare user password hashes
type PasswordHasher interface {
	// Generate Hash from password
	Hash(password string) (string, error)

	// Compare known hashedPassword and user provided password
	// Must be protected against timing attacks
	Compare(hashedPassword string, password string) error
}

type Config struct {
	// Hasher to compare user passwords on login
	// If not set than default bcrypt hasher is used
	Hasher PasswordHasher

	// Clock source, defaults to time.Now
	Now func() time.Time
}

// Auth service
// Issues tokens on login, writes the revocation ledger on logout and
// resolves the identity behind a bearer token for protected requests
type AuthService struct {
	// Manager to issue and parse signed tokens
	token *tokenmanager.TokenManager

	// hasher to compare user passwords
	hasher PasswordHasher

	// Repository to access long term user data
	userRepo repository.UserRepo

	// Blocklist of logged out token ids
	ledger repository.RevocationLedger

	// Clock source
	now func() time.Time
}

func NewService(cfg Config, token *tokenmanager.TokenManager, userRepo repository.UserRepo, ledger repository.RevocationLedger) (*AuthService, error) {
	if token == nil || userRepo == nil || ledger == nil {
		return nil, errors.New("token manager, user repo and revocation ledger must not be nil")
	}

	hasher := cfg.Hasher
	if hasher == nil {
		hasher = DefaultHasher
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &AuthService{
		token:    token,
		hasher:   hasher,
		userRepo: userRepo,
		ledger:   ledger,
		now:      cfg.Now,
	}, nil
}

// Login checks credentials and issues a fresh token
// Unknown username and wrong password both return apperrors.ErrInvalidCredentials:
// the caller must not be able to tell which usernames exist.
// A new login does not touch tokens issued earlier, they stay valid
func (s *AuthService) Login(ctx context.Context, username string, password string) (models.IssuedToken, models.User, error) {
	var issued models.IssuedToken

	user, err := s.userRepo.GetUserByUsername(ctx, username)
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound):
		_ = s.hasher.Compare(dummyPasswordHash, password)
		return issued, user, apperrors.ErrInvalidCredentials
	case err != nil:
		return issued, user, fmt.Errorf("user lookup failed. Err: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return issued, models.User{}, apperrors.ErrInvalidCredentials
	}

	issued, err = s.token.Issue(user)
	if err != nil {
		return issued, models.User{}, fmt.Errorf("token could not be issued. Err: %w", err)
	}

	return issued, user, nil
}

// Logout revokes the token for the rest of its lifetime
// Idempotent: logging out twice with the same token succeeds both times.
// A token that fails to decode (malformed, bad signature, expired) returns
// apperrors.ErrInvalidToken without detail
func (s *AuthService) Logout(ctx context.Context, tokenValue string) error {
	claims, err := s.token.Parse(tokenValue)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	// Ledger entry must outlive the token, not the other way around
	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl < 0 {
		ttl = 0
	}

	if err := s.ledger.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke failed. Err: %w", err)
	}

	return nil
}

// Authenticate resolves the user behind the request's bearer token
// Fails with apperrors.ErrMissingToken if there is no credential,
// apperrors.ErrInvalidToken for a bad, expired or revoked one and
// apperrors.ErrAuthUnavailable if the ledger can't be consulted
func (s *AuthService) Authenticate(ctx context.Context, r *http.Request) (models.User, error) {
	var user models.User

	tokenValue, err := s.BearerToken(r)
	if err != nil {
		return user, err
	}

	claims, err := s.token.Parse(tokenValue)
	if err != nil {
		return user, apperrors.ErrInvalidToken
	}

	revoked, err := s.ledger.IsRevoked(ctx, claims.ID)
	if err != nil {
		// Fail closed: unreachable ledger is an outage, not a pass
		return user, fmt.Errorf("revocation check failed. Err: %w", err)
	}
	if revoked {
		// Same error as a bad token, revoked must not be distinguishable
		return user, apperrors.ErrInvalidToken
	}

	user, err = s.userRepo.GetUserByID(ctx, claims.UserID)
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound):
		return user, apperrors.ErrInvalidToken
	case err != nil:
		return user, fmt.Errorf("user lookup failed. Err: %w", err)
	}

	return user, nil
}

// BearerToken extracts the bearer credential from the Authorization header
func (s *AuthService) BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get(defaultHeaderName)
	if header == "" {
		return "", apperrors.ErrMissingToken
	}

	scheme, value, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, defaultAuthScheme) || value == "" {
		return "", apperrors.ErrMissingToken
	}

	return value, nil
}
