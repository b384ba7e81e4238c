// Package authtest builds an in-memory auth stack for handler tests.
package authtest

import (
	"context"
	"testing"
	"time"

	"spice-catalog-backend/internal/auth"
	"spice-catalog-backend/internal/config"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	Secret   = "test-secret"
	Password = "password123"
)

type Env struct {
	Repo       *auth.MemoryRepository
	Tokens     *auth.TokenService
	Service    *auth.Service
	Middleware *auth.Middleware
}

func New(t testing.TB) *Env {
	t.Helper()

	tokens, err := auth.NewTokenService(Secret, time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	repo := auth.NewMemoryRepository()
	svc := auth.NewService(auth.Params{
		Repo:   repo,
		Tokens: tokens,
		Config: config.Config{AllowPublicSignup: true},
		Log:    zap.NewNop(),
	})
	return &Env{
		Repo:       repo,
		Tokens:     tokens,
		Service:    svc,
		Middleware: auth.NewMiddleware(svc),
	}
}

// CreateAdmin stores an account with Password as its password.
func (e *Env) CreateAdmin(t testing.TB, email string, role auth.Role, active bool) *auth.Admin {
	t.Helper()

	hashed, err := auth.HashPassword(Password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	now := time.Now().UTC()
	admin := &auth.Admin{
		ID:        primitive.NewObjectID(),
		Name:      string(role) + " account",
		Email:     email,
		Password:  hashed,
		Role:      role,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := e.Repo.Create(context.Background(), admin); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	return admin
}

// Bearer returns an Authorization header value for admin.
func (e *Env) Bearer(t testing.TB, admin *auth.Admin) string {
	t.Helper()

	token, err := e.Tokens.Issue(admin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Bearer " + token
}

// StaffBearer creates an active admin-role account and returns its header value.
func (e *Env) StaffBearer(t testing.TB) string {
	t.Helper()
	return e.Bearer(t, e.CreateAdmin(t, primitive.NewObjectID().Hex()+"@staff.test", auth.RoleAdmin, true))
}
