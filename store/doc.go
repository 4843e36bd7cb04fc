// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists poll documents.

Each poll is a single JSON document keyed by id, with a version column for
optimistic concurrency. UpdateOne only writes when the stored version
matches the version the caller read; otherwise it returns
ErrVersionConflict and the caller re-reads and retries.

# Implementations

  - SQLStore: database/sql over Postgres (lib/pq) or SQLite
    (modernc.org/sqlite). Queries use ? placeholders and are rebound to
    $1-style for Postgres.
  - MemStore: in-memory map for tests, with the same JSON round-trip and
    version semantics.

# Usage

	s, err := store.Open("sqlite", "file:polls.db")
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	id, err := s.InsertOne(ctx, poll)
*/
package store
