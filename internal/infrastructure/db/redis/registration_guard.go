package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultReservationTTL bounds how long an email stays reserved if the
// holder never releases it.
const DefaultReservationTTL = 30 * time.Second

// RegistrationGuard reserves emails for in-flight registrations so that
// concurrent requests for the same address do not both reach the insert.
// Key format: register:email:<email>
type RegistrationGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRegistrationGuard creates a guard backed by client. A non-positive ttl
// uses DefaultReservationTTL.
func NewRegistrationGuard(client *redis.Client, ttl time.Duration) *RegistrationGuard {
	if ttl <= 0 {
		ttl = DefaultReservationTTL
	}
	return &RegistrationGuard{client: client, ttl: ttl}
}

// Reserve claims email. It reports false when another request holds it.
func (g *RegistrationGuard) Reserve(ctx context.Context, email string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(email), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("reserve email: %w", err)
	}
	return ok, nil
}

// Release drops the reservation for email.
func (g *RegistrationGuard) Release(ctx context.Context, email string) error {
	if err := g.client.Del(ctx, g.key(email)).Err(); err != nil {
		return fmt.Errorf("release email: %w", err)
	}
	return nil
}

func (g *RegistrationGuard) key(email string) string {
	return "register:email:" + email
}
