package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"realty-agent/repository"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	return NewAuthService("Admin@Example.com", string(hash), repository.NewMemoryCache(), time.Hour)
}

func TestAuthService_LoginAndAuthenticate(t *testing.T) {
	service := newTestAuthService(t)
	ctx := context.Background()

	session, err := service.Login(ctx, "admin@example.com", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Token == "" {
		t.Fatal("expected a session token")
	}

	email, err := service.Authenticate(ctx, session.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if email != "admin@example.com" {
		t.Errorf("unexpected email %q", email)
	}

	if err := service.Logout(ctx, session.Token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.Authenticate(ctx, session.Token); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized after logout, got %v", err)
	}
}

func TestAuthService_RejectsBadCredentials(t *testing.T) {
	service := newTestAuthService(t)
	ctx := context.Background()

	if _, err := service.Login(ctx, "admin@example.com", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for wrong password, got %v", err)
	}
	if _, err := service.Login(ctx, "other@example.com", "s3cret"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for wrong email, got %v", err)
	}
	if _, err := service.Authenticate(ctx, "unknown-token"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for unknown token, got %v", err)
	}
}

func TestAuthService_DisabledWithoutHash(t *testing.T) {
	service := NewAuthService("admin@example.com", "", repository.NewMemoryCache(), time.Hour)

	if _, err := service.Login(context.Background(), "admin@example.com", ""); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("clave")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("clave")); err != nil {
		t.Errorf("hash does not match: %v", err)
	}
}
