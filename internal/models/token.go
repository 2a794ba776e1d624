package models

import (
	"time"

	"github.com/google/uuid"
)

// Token issued by TokenManager and returned to the user on login.
// ID is the jti claim of the signed value: it is the key the revocation
// ledger is addressed by
type IssuedToken struct {
	ID        uuid.UUID
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Claims recovered from a parsed token value
type TokenClaims struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}
