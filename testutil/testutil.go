// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package testutil provides shared helpers for the HTTP handler tests: an
// in-memory manager, a fully wired router, and JSON request plumbing.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/openballot/openballot/cliparse"
	"github.com/openballot/openballot/mailer"
	"github.com/openballot/openballot/polls"
	"github.com/openballot/openballot/router"
	"github.com/openballot/openballot/store"
)

// TestConfig returns a config suitable for handler tests. Emails are
// logged, not sent.
func TestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              3333,
		DatabaseURL:       "mem",
		DatabaseType:      "sqlite",
		SiteURL:           "http://localhost:3333",
		TallyTimeout:      2 * time.Second,
		IPHashSalt:        "test-salt",
		MultiVotePassword: "letmevoteagain",
		SkipEmails:        true,
	}
}

// NewServer builds a manager on an in-memory store and the full route mux
// around it.
func NewServer(t *testing.T) (*polls.Manager, *store.MemStore, *http.ServeMux) {
	t.Helper()
	st := store.NewMemStore()
	cfg := TestConfig()
	mgr := polls.NewManager(st, &mailer.LogMailer{}, cfg)
	return mgr, st, router.NewRouter(mgr, cfg)
}

// DoJSON performs a request against the mux with an optional JSON body and
// returns the recorder. A nil body sends no payload.
func DoJSON(t *testing.T, mux http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

// Decode unmarshals the recorded JSON body into v.
func Decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
