package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"voidxp/gateway/pkg/auth"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Config{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(Config{}); err == nil {
		t.Error("Open() with empty path succeeded")
	}
}

func TestUserRoundtrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	user := &auth.User{
		ID:           "u-1",
		Email:        "a@b.com",
		PasswordHash: "$2a$10$fakehash",
		APIKey:       "ak_test",
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	got, err := s.GetUserByEmail(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if got.ID != user.ID || got.PasswordHash != user.PasswordHash || got.APIKey != user.APIKey {
		t.Errorf("got %+v, want %+v", got, user)
	}
	if !got.CreatedAt.Equal(user.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, user.CreatedAt)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := &auth.User{ID: "u-1", Email: "a@b.com", PasswordHash: "h", APIKey: "k"}
	if err := s.CreateUser(ctx, first); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	dup := &auth.User{ID: "u-2", Email: "a@b.com", PasswordHash: "h", APIKey: "k"}
	if err := s.CreateUser(ctx, dup); !errors.Is(err, auth.ErrEmailTaken) {
		t.Errorf("CreateUser(duplicate) error = %v, want ErrEmailTaken", err)
	}
}

func TestGetUserByEmailNotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetUserByEmail(context.Background(), "nobody@b.com"); !errors.Is(err, auth.ErrUserNotFound) {
		t.Errorf("GetUserByEmail() error = %v, want ErrUserNotFound", err)
	}
}

func TestUsageAggregation(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	events := []*Event{
		{UserID: "u-1", Operation: "chat", Tier: "fast", Provider: "openai", Model: "gpt-4o-mini", Status: "success", CreatedAt: now},
		{UserID: "u-1", Operation: "chat", Tier: "smart", Provider: "anthropic", Model: "claude", Status: "success", CreatedAt: now},
		{UserID: "u-1", Operation: "fim", Tier: "fast", Provider: "mistral", Model: "codestral", Status: "error", CreatedAt: now},
		{UserID: "u-2", Operation: "chat", Tier: "fast", Provider: "openai", Model: "gpt-4o-mini", Status: "success", CreatedAt: now},
	}
	for _, e := range events {
		if err := s.RecordEvent(ctx, e); err != nil {
			t.Fatalf("RecordEvent() error = %v", err)
		}
	}

	summary, err := s.Usage(ctx, "u-1", time.Time{})
	if err != nil {
		t.Fatalf("Usage() error = %v", err)
	}
	if summary.TotalRequests != 3 {
		t.Errorf("total = %d, want 3", summary.TotalRequests)
	}
	if summary.ByOperation["chat"] != 2 || summary.ByOperation["fim"] != 1 {
		t.Errorf("by_operation = %v", summary.ByOperation)
	}
	if summary.ByProvider["openai"] != 1 || summary.ByProvider["anthropic"] != 1 {
		t.Errorf("by_provider = %v", summary.ByProvider)
	}
	if summary.ByStatus["error"] != 1 {
		t.Errorf("by_status = %v", summary.ByStatus)
	}
}

func TestUsageSinceFilter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	old := &Event{UserID: "u-1", Operation: "chat", Tier: "fast", Provider: "openai", Model: "m", Status: "success", CreatedAt: now.Add(-48 * time.Hour)}
	recent := &Event{UserID: "u-1", Operation: "chat", Tier: "fast", Provider: "openai", Model: "m", Status: "success", CreatedAt: now}
	for _, e := range []*Event{old, recent} {
		if err := s.RecordEvent(ctx, e); err != nil {
			t.Fatalf("RecordEvent() error = %v", err)
		}
	}

	summary, err := s.Usage(ctx, "u-1", now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Usage() error = %v", err)
	}
	if summary.TotalRequests != 1 {
		t.Errorf("total = %d, want 1 (old event filtered)", summary.TotalRequests)
	}
}
