package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dkotelnikov/contacts/internal/apperrors"
)

// RevocationLedger keeps revoked token ids in redis until the token
// would have expired on its own. Entries are written with EX equal to
// the remaining token lifetime, so redis drops them itself and the
// ledger holds only tokens that are still valid but logged out
type RevocationLedger struct {
	client *redis.Client
	prefix string
}

func NewRevocationLedger(client *redis.Client, prefix string) *RevocationLedger {
	if prefix == "" {
		prefix = "contacts"
	}

	return &RevocationLedger{
		client: client,
		prefix: prefix,
	}
}

func (l *RevocationLedger) key(tokenID uuid.UUID) string {
	return fmt.Sprintf("%s:revoked:%s", l.prefix, tokenID)
}

// Revoke marks token id revoked for ttl
// Idempotent: repeating the call overwrites the same key with the same meaning.
// Zero or negative ttl means the token expired already and there is nothing to do
func (l *RevocationLedger) Revoke(ctx context.Context, tokenID uuid.UUID, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	err := l.client.Set(ctx, l.key(tokenID), time.Now().UTC().Format(time.RFC3339), ttl).Err()
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrAuthUnavailable, err)
	}

	return nil
}

// IsRevoked reports whether token id is present in the ledger
// Absence means "not revoked". A store error is returned as
// apperrors.ErrAuthUnavailable so callers fail closed instead of
// treating an unreachable ledger as an empty one
func (l *RevocationLedger) IsRevoked(ctx context.Context, tokenID uuid.UUID) (bool, error) {
	n, err := l.client.Exists(ctx, l.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %w", apperrors.ErrAuthUnavailable, err)
	}

	return n > 0, nil
}
