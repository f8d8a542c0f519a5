package ports

import "github.com/99minutos/auth-service/internal/core/domain"

// InputValidator checks an input record against its declared schema and
// returns a *domain.ValidationError on violation.
type InputValidator interface {
	Validate(v any) error
}

// PasswordHasher derives and verifies salted one-way password hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(plaintext, hash string) bool
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(claims domain.TokenClaims) (string, error)
}

// TokenParser verifies a session token and returns its claims.
type TokenParser interface {
	Parse(token string) (*domain.TokenClaims, error)
}
