package ports

import (
	"context"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// RegisterInput is the registration schema. Fields are pointers so that an
// absent key (nil) is told apart from an empty string.
type RegisterInput struct {
	Name     *string `json:"name"     validate:"required,notempty,min=6,max=255"`
	Email    *string `json:"email"    validate:"required,notempty,min=6,max=255,email,emailtld"`
	Password *string `json:"password" validate:"required,notempty,min=6,max=1024"`
}

// LoginInput is the login schema.
type LoginInput struct {
	Email    *string `json:"email"    validate:"required,notempty,min=6,max=255,email,emailtld"`
	Password *string `json:"password" validate:"required,notempty,min=6,max=1024"`
}

// LoginResult carries the issued token and the authenticated user.
type LoginResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
}
