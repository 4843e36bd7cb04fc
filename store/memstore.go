// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openballot/openballot/models"
)

// MemStore is an in-memory PollStore for tests. It round-trips documents
// through JSON so tests observe the same copy semantics as SQLStore.
type MemStore struct {
	mu    sync.RWMutex
	polls map[string]memEntry
}

type memEntry struct {
	doc     []byte
	version int64
}

func NewMemStore() *MemStore {
	return &MemStore{polls: make(map[string]memEntry)}
}

func (s *MemStore) FindOne(ctx context.Context, id string) (*models.Poll, error) {
	s.mu.RLock()
	e, ok := s.polls[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	var p models.Poll
	if err := json.Unmarshal(e.doc, &p); err != nil {
		return nil, fmt.Errorf("failed to decode poll %s: %w", id, err)
	}
	p.Version = e.version
	return &p, nil
}

func (s *MemStore) InsertOne(ctx context.Context, p *models.Poll) (string, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.Version = 1

	doc, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode poll: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.polls[p.ID]; exists {
		return "", fmt.Errorf("poll %s already exists", p.ID)
	}
	s.polls[p.ID] = memEntry{doc: doc, version: 1}
	return p.ID, nil
}

func (s *MemStore) UpdateOne(ctx context.Context, p *models.Poll) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode poll: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.polls[p.ID]
	if !ok {
		return ErrNotFound
	}
	if e.version != p.Version {
		return ErrVersionConflict
	}
	s.polls[p.ID] = memEntry{doc: doc, version: p.Version + 1}
	p.Version++
	return nil
}

func (s *MemStore) DeleteOne(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.polls[id]; !ok {
		return ErrNotFound
	}
	delete(s.polls, id)
	return nil
}

func (s *MemStore) Close() error { return nil }
