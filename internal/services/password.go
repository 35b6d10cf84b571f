package services

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the fixed bcrypt work factor for application-side hashing.
const PasswordCost = 10

// PasswordHasher is the application-side credential hashing strategy. The
// store-side strategy (pgcrypto crypt) lives entirely inside the relational
// repository and never exposes a digest to compare against.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt at a fixed cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a new BcryptHasher.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: PasswordCost}
}

// Hash produces an irreversible digest of plaintext; a fresh salt is
// generated per call.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the stored digest.
func (h *BcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
