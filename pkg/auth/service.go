package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"voidxp/gateway/pkg/config"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// Service implements registration, login, and guest sessions.
type Service struct {
	store  UserStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// NewService creates an authentication service backed by the given store.
// A nil store disables registration and login but guest sessions still
// work.
func NewService(cfg config.AuthConfig, store UserStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = config.DefaultTokenTTL
	}
	return &Service{
		store:  store,
		secret: []byte(cfg.TokenSecret),
		ttl:    ttl,
		now:    time.Now,
		logger: logger.With("component", "auth"),
	}
}

// Register creates an account and returns a signed session.
func (s *Service) Register(ctx context.Context, email, password string) (*Session, error) {
	if s.store == nil {
		return nil, fmt.Errorf("registration disabled: no user store configured")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email address")
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		APIKey:       NewAPIKey(),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return s.sessionFor(user)
}

// Login verifies credentials and returns a signed session. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	if s.store == nil {
		return nil, ErrInvalidCredentials
	}

	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			s.logger.Error("user lookup failed", "error", err)
		}
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return s.sessionFor(user)
}

func (s *Service) sessionFor(user *User) (*Session, error) {
	token, expiresAt, err := s.IssueToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &Session{
		UserID:    user.ID,
		Email:     user.Email,
		Token:     token,
		APIKey:    user.APIKey,
		ExpiresAt: expiresAt.UnixMilli(),
	}, nil
}

// NewGuestSession mints an anonymous session. Guest IDs carry the anon-
// prefix so the quota limiter can recognize them. When a token secret is
// configured the session also carries a signed token.
func (s *Service) NewGuestSession() *Session {
	id := fmt.Sprintf("anon-%d-%s", s.now().UnixMilli(), shortID())
	session := &Session{
		UserID:    id,
		Anonymous: true,
	}
	if len(s.secret) > 0 {
		if token, expiresAt, err := s.IssueToken(id, ""); err == nil {
			session.Token = token
			session.ExpiresAt = expiresAt.UnixMilli()
		}
	}
	return session
}

// NewAPIKey generates an opaque API key.
func NewAPIKey() string {
	return "ak_" + uuid.NewString()
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
