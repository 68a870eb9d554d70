package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"voidxp/gateway/pkg/auth"
	"voidxp/gateway/pkg/config"
)

type memUserStore struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*auth.User)}
}

func (m *memUserStore) CreateUser(_ context.Context, u *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return auth.ErrEmailTaken
	}
	m.users[u.Email] = u
	return nil
}

func (m *memUserStore) GetUserByEmail(_ context.Context, email string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return u, nil
}

func newAuthHandler() *AuthHandler {
	svc := auth.NewService(config.AuthConfig{
		TokenSecret: "test-secret-not-for-production",
		TokenTTL:    time.Hour,
	}, newMemUserStore(), nil)
	return NewAuthHandler(svc)
}

func post(t *testing.T, fn http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	fn(rec, req)
	return rec
}

func TestRegisterEndpoint(t *testing.T) {
	h := newAuthHandler()
	rec := post(t, h.Register, `{"email":"a@b.com","password":"longenough"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Success bool          `json:"success"`
		Data    *auth.Session `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if envelope.Data.Token == "" || envelope.Data.APIKey == "" {
		t.Errorf("session = %+v", envelope.Data)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	h := newAuthHandler()
	post(t, h.Register, `{"email":"a@b.com","password":"longenough"}`)
	rec := post(t, h.Register, `{"email":"a@b.com","password":"longenough"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLoginEndpoint(t *testing.T) {
	h := newAuthHandler()
	post(t, h.Register, `{"email":"a@b.com","password":"longenough"}`)

	rec := post(t, h.Login, `{"email":"a@b.com","password":"longenough"}`)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}

	rec = post(t, h.Login, `{"email":"a@b.com","password":"wrong password"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: status = %d, want 401", rec.Code)
	}
}

func TestAnonymousEndpoint(t *testing.T) {
	h := newAuthHandler()
	rec := post(t, h.Anonymous, ``)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var envelope struct {
		Data *auth.Session `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if !envelope.Data.Anonymous || !strings.HasPrefix(envelope.Data.UserID, "anon-") {
		t.Errorf("session = %+v", envelope.Data)
	}
	if envelope.Data.Token == "" {
		t.Error("anonymous session missing token")
	}
}

func TestAuthEndpointsRejectGet(t *testing.T) {
	h := newAuthHandler()
	for name, fn := range map[string]http.HandlerFunc{
		"register":  h.Register,
		"login":     h.Login,
		"anonymous": h.Anonymous,
	} {
		rec := httptest.NewRecorder()
		fn(rec, httptest.NewRequest("GET", "/", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s: status = %d, want 405", name, rec.Code)
		}
	}
}
