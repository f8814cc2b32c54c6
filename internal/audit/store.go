package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"fleetdock/internal/storage"
)

const keyAudit = "audit"

// Store appends audit entries to the audit snapshot key, newest last.
type Store struct {
	mu sync.Mutex
	kv storage.KV
}

// NewStore constructs a storage-backed audit logger.
func NewStore(kv storage.KV) (*Store, error) {
	if kv == nil {
		return nil, errors.New("audit: nil storage")
	}
	return &Store{kv: kv}, nil
}

// Log appends entry and rewrites the audit snapshot.
func (s *Store) Log(ctx context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	encoded, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("audit: encode: %w", err)
	}
	if err := s.kv.Put(ctx, keyAudit, encoded); err != nil {
		return fmt.Errorf("audit: persist: %w", err)
	}
	return nil
}

// Entries returns the full audit trail, oldest first.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Store) loadLocked(ctx context.Context) ([]Entry, error) {
	data, ok, err := s.kv.Get(ctx, keyAudit)
	if err != nil {
		return nil, fmt.Errorf("audit: load: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("audit: decode: %w", err)
	}
	return entries, nil
}
