package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"fleetdock/internal/storage"
)

// Storage keys owned by the sessions service.
const (
	keyUsers       = "users"
	keyCurrentUser = "currentUser"
)

// Clock provides time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SeedUsers returns the fixture accounts written once when no users
// snapshot exists.
func SeedUsers() []User {
	return []User{
		{ID: "1", Role: RoleAdmin, Email: "admin@fleetdock.local", Password: "admin123", Name: "Admin User"},
		{ID: "2", Role: RoleInspector, Email: "inspector@fleetdock.local", Password: "inspect123", Name: "Inspector User"},
		{ID: "3", Role: RoleEngineer, Email: "engineer@fleetdock.local", Password: "engine123", Name: "Engineer User"},
	}
}

// Sessions authenticates users against the persisted users list and tracks
// the single active session under the currentUser key.
type Sessions struct {
	mu      sync.RWMutex
	kv      storage.KV
	secret  []byte
	ttl     time.Duration
	clock   Clock
	users   []User
	current *User
}

// SessionsOption customizes the sessions service.
type SessionsOption func(*Sessions)

// WithSessionClock assigns a clock.
func WithSessionClock(clock Clock) SessionsOption {
	return func(s *Sessions) {
		s.clock = clock
	}
}

// OpenSessions loads (seeding if absent) the users list and any persisted
// session from kv.
func OpenSessions(ctx context.Context, kv storage.KV, secret []byte, ttl time.Duration, opts ...SessionsOption) (*Sessions, error) {
	if kv == nil {
		return nil, errors.New("auth: nil storage")
	}
	if len(secret) == 0 {
		return nil, errors.New("auth: empty secret")
	}
	if ttl <= 0 {
		return nil, errors.New("auth: non-positive token ttl")
	}
	s := &Sessions{kv: kv, secret: secret, ttl: ttl, clock: systemClock{}}
	for _, opt := range opts {
		opt(s)
	}

	data, ok, err := kv.Get(ctx, keyUsers)
	if err != nil {
		return nil, fmt.Errorf("auth: load users: %w", err)
	}
	if !ok {
		s.users = SeedUsers()
		encoded, err := json.Marshal(s.users)
		if err != nil {
			return nil, fmt.Errorf("auth: encode users seed: %w", err)
		}
		if err := kv.Put(ctx, keyUsers, encoded); err != nil {
			return nil, fmt.Errorf("auth: write users seed: %w", err)
		}
	} else if err := json.Unmarshal(data, &s.users); err != nil {
		return nil, fmt.Errorf("auth: decode users: %w", err)
	}

	data, ok, err = kv.Get(ctx, keyCurrentUser)
	if err != nil {
		return nil, fmt.Errorf("auth: load session: %w", err)
	}
	if ok {
		var current User
		if err := json.Unmarshal(data, &current); err != nil {
			return nil, fmt.Errorf("auth: decode session: %w", err)
		}
		s.current = &current
	}
	return s, nil
}

// Login authenticates by exact email and password match. On success it
// persists the sanitized user as the current session and returns it with a
// signed token. On failure it reports ok=false and leaves any prior session
// untouched.
func (s *Sessions) Login(ctx context.Context, email, password string) (User, string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email != email || user.Password != password {
			continue
		}
		session := user.Sanitized()
		encoded, err := json.Marshal(session)
		if err != nil {
			return User{}, "", false, fmt.Errorf("auth: encode session: %w", err)
		}
		if err := s.kv.Put(ctx, keyCurrentUser, encoded); err != nil {
			return User{}, "", false, fmt.Errorf("auth: persist session: %w", err)
		}
		token, err := SignJWT(session, s.secret, s.ttl, s.clock.Now())
		if err != nil {
			return User{}, "", false, err
		}
		s.current = &session
		return session, token, true, nil
	}
	return User{}, "", false, nil
}

// Logout clears the session key and the in-memory user.
func (s *Sessions) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(ctx, keyCurrentUser); err != nil {
		return fmt.Errorf("auth: clear session: %w", err)
	}
	s.current = nil
	return nil
}

// CurrentUser returns the sanitized active session, if any.
func (s *Sessions) CurrentUser() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return User{}, false
	}
	return *s.current, true
}

// Users returns sanitized copies of every account.
func (s *Sessions) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, user.Sanitized())
	}
	return out
}

// UserByID returns the sanitized account with the given id.
func (s *Sessions) UserByID(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.ID == id {
			return user.Sanitized(), true
		}
	}
	return User{}, false
}
