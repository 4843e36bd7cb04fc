// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/openballot/openballot/models"
)

// SQLStore persists polls as JSON documents in a single table. It works
// against both Postgres (lib/pq) and SQLite (modernc.org/sqlite); queries
// are written with ? placeholders and rebound to $1-style for Postgres.
type SQLStore struct {
	db       *sql.DB
	postgres bool
}

// Open connects to the database named by driver ("postgres" or "sqlite")
// and dsn, and ensures the schema exists.
func Open(driver, dsn string) (*SQLStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s := &SQLStore{db: db, postgres: driver == "postgres"}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLStore wraps an existing connection. Used by tests that manage the
// connection themselves.
func NewSQLStore(db *sql.DB, postgres bool) (*SQLStore, error) {
	s := &SQLStore{db: db, postgres: postgres}
	if err := s.createSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Safe to call multiple times - uses IF NOT EXISTS.
func (s *SQLStore) createSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS poll (
			id TEXT PRIMARY KEY,
			doc TEXT NOT NULL,
			version BIGINT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// rebind rewrites ? placeholders to $1, $2, ... for Postgres.
func (s *SQLStore) rebind(query string) string {
	if !s.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStore) FindOne(ctx context.Context, id string) (*models.Poll, error) {
	var doc string
	var version int64
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT doc, version FROM poll WHERE id = ?`), id,
	).Scan(&doc, &version)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load poll %s: %w", id, err)
	}

	var p models.Poll
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("failed to decode poll %s: %w", id, err)
	}
	p.Version = version
	return &p, nil
}

func (s *SQLStore) InsertOne(ctx context.Context, p *models.Poll) (string, error) {
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
	_, err = s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO poll (id, doc, version, created_at) VALUES (?, ?, ?, ?)`),
		p.ID, string(doc), p.Version, p.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert poll: %w", err)
	}
	return p.ID, nil
}

func (s *SQLStore) UpdateOne(ctx context.Context, p *models.Poll) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode poll: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		s.rebind(`UPDATE poll SET doc = ?, version = ? WHERE id = ? AND version = ?`),
		string(doc), p.Version+1, p.ID, p.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update poll %s: %w", p.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update poll %s: %w", p.ID, err)
	}
	if n == 0 {
		var exists int
		err := s.db.QueryRowContext(ctx,
			s.rebind(`SELECT 1 FROM poll WHERE id = ?`), p.ID,
		).Scan(&exists)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to update poll %s: %w", p.ID, err)
		}
		return ErrVersionConflict
	}
	p.Version++
	return nil
}

func (s *SQLStore) DeleteOne(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM poll WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete poll %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete poll %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
