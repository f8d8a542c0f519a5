package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/99minutos/auth-service/internal/core/domain"
)

func newMockRepo(mt *mtest.T) *UserRepository {
	return &UserRepository{col: mt.Coll}
}

func TestUserRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		created, err := newMockRepo(mt).Create(context.Background(), &domain.User{
			Name:         "Alice Doe",
			Email:        "alice@example.com",
			PasswordHash: "$2a$10$hash",
			CreatedAt:    time.Now(),
		})
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if _, err := primitive.ObjectIDFromHex(created.ID); err != nil {
			t.Fatalf("expected hex object id, got %q", created.ID)
		}
		if created.PasswordHash != "$2a$10$hash" || created.Email != "alice@example.com" {
			t.Fatalf("unexpected user: %+v", created)
		}
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: auth_service.users index: email_unique",
		}))

		_, err := newMockRepo(mt).Create(context.Background(), &domain.User{Email: "alice@example.com"})
		if !errors.Is(err, domain.ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})

	mt.Run("other write error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    121,
			Message: "Document failed validation",
		}))

		_, err := newMockRepo(mt).Create(context.Background(), &domain.User{Email: "alice@example.com"})
		var se *domain.StoreError
		if !errors.As(err, &se) {
			t.Fatalf("expected StoreError, got %v", err)
		}
		if se.Op != "insert user" {
			t.Fatalf("unexpected op: %s", se.Op)
		}
	})
}

func TestUserRepository_FindByEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		date := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "auth_service.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Alice Doe"},
			{Key: "email", Value: "alice@example.com"},
			{Key: "password", Value: "$2a$10$hash"},
			{Key: "date", Value: date},
		}))

		u, err := newMockRepo(mt).FindByEmail(context.Background(), "alice@example.com")
		if err != nil {
			t.Fatalf("FindByEmail returned error: %v", err)
		}
		if u.ID != id.Hex() || u.Name != "Alice Doe" || u.PasswordHash != "$2a$10$hash" {
			t.Fatalf("unexpected user: %+v", u)
		}
		if !u.CreatedAt.Equal(date) {
			t.Fatalf("expected created_at %v, got %v", date, u.CreatedAt)
		}
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "auth_service.users", mtest.FirstBatch))

		if _, err := newMockRepo(mt).FindByEmail(context.Background(), "ghost@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	mt.Run("command error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized on auth_service",
		}))

		_, err := newMockRepo(mt).FindByEmail(context.Background(), "alice@example.com")
		var se *domain.StoreError
		if !errors.As(err, &se) {
			t.Fatalf("expected StoreError, got %v", err)
		}
	})
}
