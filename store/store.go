// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/openballot/openballot/models"
)

var (
	// ErrNotFound is returned when no poll exists under the given id.
	ErrNotFound = errors.New("poll not found")

	// ErrVersionConflict is returned by UpdateOne when the stored version no
	// longer matches the version the caller read. The caller must re-read and
	// retry.
	ErrVersionConflict = errors.New("poll version conflict")
)

// PollStore persists poll documents. Each poll is stored as a single
// document; UpdateOne uses optimistic concurrency on the Version field so
// that concurrent writers cannot silently overwrite each other.
type PollStore interface {
	// FindOne loads the poll with the given id.
	FindOne(ctx context.Context, id string) (*models.Poll, error)

	// InsertOne stores a new poll. If the poll has no id one is assigned.
	// The stored version starts at 1. Returns the poll's id.
	InsertOne(ctx context.Context, p *models.Poll) (string, error)

	// UpdateOne replaces the stored document if and only if the stored
	// version equals p.Version. On success p.Version is incremented to the
	// newly stored version.
	UpdateOne(ctx context.Context, p *models.Poll) error

	// DeleteOne removes the poll with the given id.
	DeleteOne(ctx context.Context, id string) error

	// Close releases the store's resources.
	Close() error
}
