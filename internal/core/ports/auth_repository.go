package ports

import (
	"context"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// UserRepository defines the persistence contract for registered users.
//
// FindByEmail returns domain.ErrUserNotFound when no user matches. Create
// returns domain.ErrEmailTaken when the store rejects a duplicate email and a
// *domain.StoreError for any other write failure.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// RegistrationGuard reserves an email while a registration for it is in
// flight. Reserve reports false when another request already holds it.
type RegistrationGuard interface {
	Reserve(ctx context.Context, email string) (bool, error)
	Release(ctx context.Context, email string) error
}
