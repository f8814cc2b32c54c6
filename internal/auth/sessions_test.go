package auth

import (
	"context"
	"testing"
	"time"

	"fleetdock/internal/storage"
)

func openTestSessions(t *testing.T, kv storage.KV) *Sessions {
	t.Helper()
	s, err := OpenSessions(context.Background(), kv, []byte("test-secret"), time.Hour)
	if err != nil {
		t.Fatalf("open sessions: %v", err)
	}
	return s
}

func TestLoginSuccessStripsPassword(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	s := openTestSessions(t, kv)

	user, token, ok, err := s.Login(ctx, "admin@fleetdock.local", "admin123")
	if err != nil || !ok {
		t.Fatalf("expected successful login, got ok=%v err=%v", ok, err)
	}
	if user.Password != "" {
		t.Fatal("expected password stripped from session user")
	}
	if user.Role != RoleAdmin {
		t.Fatalf("expected admin role, got %s", user.Role)
	}
	if token == "" {
		t.Fatal("expected signed token")
	}

	claims, err := ParseJWT(token, []byte("test-secret"))
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Subject != user.ID || claims.Role != string(RoleAdmin) {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	// The persisted session record must not contain the password either.
	data, ok, _ := kv.Get(ctx, "currentUser")
	if !ok {
		t.Fatal("expected currentUser persisted")
	}
	if containsPassword(data) {
		t.Fatalf("session snapshot leaks password: %s", data)
	}
}

func containsPassword(data []byte) bool {
	for i := 0; i+8 <= len(data); i++ {
		if string(data[i:i+8]) == "password" {
			return true
		}
	}
	return false
}

func TestLoginFailureLeavesSessionUntouched(t *testing.T) {
	ctx := context.Background()
	s := openTestSessions(t, storage.NewMemory())

	if _, _, ok, err := s.Login(ctx, "admin@fleetdock.local", "wrong"); ok || err != nil {
		t.Fatalf("expected failed login, got ok=%v err=%v", ok, err)
	}
	if _, _, ok, _ := s.Login(ctx, "nobody@fleetdock.local", "admin123"); ok {
		t.Fatal("expected unknown email rejected")
	}
	if _, active := s.CurrentUser(); active {
		t.Fatal("expected no session after failed logins")
	}

	// A failed login must not evict an established session.
	if _, _, ok, _ := s.Login(ctx, "engineer@fleetdock.local", "engine123"); !ok {
		t.Fatal("expected engineer login to succeed")
	}
	if _, _, ok, _ := s.Login(ctx, "engineer@fleetdock.local", "bad"); ok {
		t.Fatal("expected bad password rejected")
	}
	current, active := s.CurrentUser()
	if !active || current.Role != RoleEngineer {
		t.Fatalf("expected engineer session intact, got %+v active=%v", current, active)
	}
}

func TestSessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	first := openTestSessions(t, kv)
	if _, _, ok, _ := first.Login(ctx, "inspector@fleetdock.local", "inspect123"); !ok {
		t.Fatal("expected login to succeed")
	}

	second := openTestSessions(t, kv)
	current, active := second.CurrentUser()
	if !active || current.Email != "inspector@fleetdock.local" {
		t.Fatalf("expected session restored, got %+v active=%v", current, active)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	s := openTestSessions(t, kv)
	if _, _, ok, _ := s.Login(ctx, "admin@fleetdock.local", "admin123"); !ok {
		t.Fatal("expected login to succeed")
	}
	if err := s.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, active := s.CurrentUser(); active {
		t.Fatal("expected no session after logout")
	}
	if _, ok, _ := kv.Get(ctx, "currentUser"); ok {
		t.Fatal("expected currentUser key removed")
	}
}

func TestUsersAreSanitized(t *testing.T) {
	s := openTestSessions(t, storage.NewMemory())
	users := s.Users()
	if len(users) != 3 {
		t.Fatalf("expected 3 seeded users, got %d", len(users))
	}
	for _, user := range users {
		if user.Password != "" {
			t.Fatalf("expected sanitized user, got password for %s", user.Email)
		}
	}
	if _, ok := s.UserByID("3"); !ok {
		t.Fatal("expected engineer account present")
	}
}
