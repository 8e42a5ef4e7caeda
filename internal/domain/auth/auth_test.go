package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := CheckPassword(hash, "admin123"); err != nil {
		t.Fatalf("expected matching password, got %v", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("expected a mismatch error")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "u1", Name: "Administrador", Role: RoleAdmin}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "u1"}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ParseToken("other", token); err == nil {
		t.Fatal("expected an error for the wrong secret")
	}
}

type memStore struct {
	users []User
}

func (m *memStore) LoadUsers(context.Context) ([]User, error) {
	return m.users, nil
}

func (m *memStore) SaveUsers(_ context.Context, users []User) error {
	m.users = make([]User, len(users))
	copy(m.users, users)
	return nil
}

func newTestAuth(t *testing.T) *Service {
	t.Helper()
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	seed := []User{{ID: "1", Email: "admin@empresa.com", Name: "Administrador", Role: RoleAdmin, PasswordHash: hash}}
	service, err := NewService(context.Background(), &memStore{}, "secret", seed)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return service
}

func TestLogin(t *testing.T) {
	service := newTestAuth(t)

	token, user, err := service.Login("admin@empresa.com", "admin123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if user.PasswordHash != "" {
		t.Fatal("password hash leaked in the login response")
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Role != RoleAdmin {
		t.Fatalf("expected admin role claim, got %q", claims.Role)
	}
}

func TestLoginResponseOmitsPasswordHash(t *testing.T) {
	service := newTestAuth(t)

	_, user, err := service.Login("admin@empresa.com", "admin123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	body, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(string(body), "passwordHash") {
		t.Fatalf("serialized user exposes the hash field: %s", body)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	service := newTestAuth(t)
	if _, _, err := service.Login("admin@empresa.com", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	service := newTestAuth(t)
	if _, _, err := service.Login("ghost@empresa.com", "admin123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
