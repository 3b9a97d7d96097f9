package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for stored credentials.
const DefaultCost = 10

// Hasher turns plaintext passwords into one-way hashes and checks candidates.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(hash, candidate string) bool
}

// BcryptHasher is a salted bcrypt Hasher.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost, or DefaultCost when
// cost is outside bcrypt's accepted range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	encoded, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(encoded), nil
}

// Verify reports whether candidate matches hash. A malformed hash never matches.
func (h *BcryptHasher) Verify(hash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}
