package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// sessionClaims is the JWT payload: name, id, iat and, when a TTL is
// configured, exp.
type sessionClaims struct {
	Name   string `json:"name"`
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// JWTIssuer signs and verifies HS256 session tokens with a shared secret.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTIssuer returns an issuer for secret. A ttl of zero issues tokens
// without an expiry claim.
func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a new token carrying claims.
func (i *JWTIssuer) Issue(claims domain.TokenClaims) (string, error) {
	if len(i.secret) == 0 {
		return "", errors.New("token: empty signing secret")
	}

	now := i.now()
	sc := sessionClaims{
		Name:   claims.Name,
		UserID: claims.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if i.ttl > 0 {
		sc.ExpiresAt = jwt.NewNumericDate(now.Add(i.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, sc).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies tokenString and returns its claims. Tokens signed with any
// algorithm other than HS256, or already expired, are rejected with
// domain.ErrInvalidToken.
func (i *JWTIssuer) Parse(tokenString string) (*domain.TokenClaims, error) {
	var sc sessionClaims
	tkn, err := jwt.ParseWithClaims(tokenString, &sc, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !tkn.Valid {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	return &domain.TokenClaims{Name: sc.Name, ID: sc.UserID}, nil
}
