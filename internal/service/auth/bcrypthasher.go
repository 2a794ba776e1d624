package auth

import (
	"crypto/sha256"

	"golang.org/x/crypto/bcrypt"
)

// Default hasher used if caller not provided it's own
var DefaultHasher = BcryptHasher{}

// Bcrypt password hasher
// Password is pre-hashed with sha256 to dodge the bcrypt 72 byte input limit
type BcryptHasher struct{}

func (h BcryptHasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	hash, err := bcrypt.GenerateFromPassword(sum[:], bcrypt.DefaultCost)
	return string(hash), err
}

func (h BcryptHasher) Compare(hashedPassword string, password string) error {
	sum := sha256.Sum256([]byte(password))
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), sum[:])
}
