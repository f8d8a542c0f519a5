package domain

import "time"

// User models a registered principal. PasswordHash never leaves the service
// boundary in a response body.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// TokenClaims is the set of attributes embedded in a session token.
type TokenClaims struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Claims returns the token claims for u.
func (u *User) Claims() TokenClaims {
	return TokenClaims{Name: u.Name, ID: u.ID}
}
