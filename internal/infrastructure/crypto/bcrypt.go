package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 10

// maxPasswordBytes is the number of input bytes bcrypt consumes.
const maxPasswordBytes = 72

// BcryptHasher derives and verifies bcrypt password hashes. The salt and cost
// are embedded in the returned string, so nothing else needs storing.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost. Values outside
// bcrypt's accepted range fall back to DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost reports the configured work factor.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash returns a freshly salted hash of plaintext.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(truncate(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare reports whether plaintext matches hash. A malformed hash never
// matches.
func (h *BcryptHasher) Compare(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncate(plaintext)) == nil
}

// truncate limits input to the bytes bcrypt actually uses, so long passwords
// hash the same way other bcrypt implementations do instead of erroring.
func truncate(plaintext string) []byte {
	b := []byte(plaintext)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
