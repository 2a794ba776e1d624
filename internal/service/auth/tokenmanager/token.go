package tokenmanager

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dkotelnikov/contacts/internal/models"
)

const (
	defaultTokenTTL      = time.Hour
	defaultSigningMethod = "HS256"
)

type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"uid"`
}

// Token manager with sensible defaults
type Config struct {
	// Secret key to sign token payload
	// Required to be set
	SecretKey string

	// JWT MAC (Message Authentication Code) algorithm
	// If not set than default is used
	Alg string

	// Token lifetime
	// If not set than default is used
	TokenTTL time.Duration

	// Clock source, defaults to time.Now
	// Injected so tests can control token expiry deterministically
	Now func() time.Time
}

type TokenManager struct {
	// Secret key to sign token payload
	key string

	// JWT MAC (Message Authentication Code) algorithm
	alg jwt.SigningMethod

	// Token lifetime
	tokenTTL time.Duration

	// Clock source
	now func() time.Time
}

func New(cfg Config) (*TokenManager, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("secret key must not be empty")
	}

	if cfg.Alg == "" {
		cfg.Alg = defaultSigningMethod
	}

	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &TokenManager{
		key:      cfg.SecretKey,
		alg:      jwt.GetSigningMethod(cfg.Alg),
		tokenTTL: cfg.TokenTTL,
		now:      cfg.Now,
	}, nil
}

// Issue signed token for the user
// The jti claim is a fresh uuid: it is the id the revocation ledger keys on,
// so two logins of the same user produce independently revocable tokens
func (m *TokenManager) Issue(user models.User) (models.IssuedToken, error) {
	var issued models.IssuedToken

	tokenID := uuid.New()
	now := m.now().Truncate(time.Second)
	expiresAt := now.Add(m.tokenTTL)

	token := jwt.NewWithClaims(
		m.alg,
		Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        tokenID.String(),
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
			UserID: user.ID,
		},
	)
	value, err := token.SignedString([]byte(m.key))
	if err != nil {
		return issued, fmt.Errorf("error while signing token. Err: %w", err)
	}

	return models.IssuedToken{
		ID:        tokenID,
		Value:     value,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}, nil
}

// Parse and validate signed token value
// Malformed payload, wrong signature and expired token all return an error;
// callers collapse them into one user facing error on purpose
func (m *TokenManager) Parse(value string) (models.TokenClaims, error) {
	var parsed models.TokenClaims

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		value,
		claims,
		func(t *jwt.Token) (any, error) { return []byte(m.key), nil },
		jwt.WithValidMethods([]string{m.alg.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return parsed, fmt.Errorf("error while parsing or validating token. Err: %w", err)
	}

	tokenID, err := uuid.Parse(claims.ID)
	if err != nil {
		return parsed, fmt.Errorf("token id is not valid. Err: %w", err)
	}

	return models.TokenClaims{
		ID:        tokenID,
		UserID:    claims.UserID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
