package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"realty-agent/repository"
)

const sessionKeyPrefix = "session:"

// Session is an authenticated admin session.
type Session struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthService checks the admin credentials and keeps session tokens in the
// cache until they expire.
type AuthService struct {
	email        string
	passwordHash []byte
	sessions     repository.CacheRepository
	ttl          time.Duration
	now          func() time.Time
}

func NewAuthService(email, passwordHash string, sessions repository.CacheRepository, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if passwordHash == "" {
		slog.Warn("admin password hash not configured, admin login disabled")
	}
	return &AuthService{
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: []byte(passwordHash),
		sessions:     sessions,
		ttl:          ttl,
		now:          time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	if len(s.passwordHash) == 0 {
		return Session{}, ErrUnauthorized
	}
	if strings.ToLower(strings.TrimSpace(email)) != s.email {
		return Session{}, ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		slog.Info("admin login rejected", "email", email)
		return Session{}, ErrUnauthorized
	}

	session := Session{
		Token:     uuid.NewString(),
		Email:     s.email,
		ExpiresAt: s.now().Add(s.ttl).UTC(),
	}
	if err := s.sessions.Set(ctx, sessionKeyPrefix+session.Token, session.Email, s.ttl); err != nil {
		return Session{}, fmt.Errorf("storing session: %w", err)
	}
	slog.Info("admin logged in", "email", session.Email)
	return session, nil
}

// Authenticate returns the email bound to token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}
	email, ok := s.sessions.Get(ctx, sessionKeyPrefix+token)
	if !ok {
		return "", ErrUnauthorized
	}
	return email, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionKeyPrefix+token)
}

// HashPassword returns the bcrypt hash stored in auth.password_hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
