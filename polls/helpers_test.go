// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"testing"
	"time"

	"github.com/openballot/openballot/cliparse"
	"github.com/openballot/openballot/mailer"
	"github.com/openballot/openballot/models"
	"github.com/openballot/openballot/store"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestManager(t *testing.T) (*Manager, *store.MemStore) {
	t.Helper()
	st := store.NewMemStore()
	cfg := cliparse.Config{
		Port:              3333,
		DatabaseURL:       "mem",
		DatabaseType:      "sqlite",
		SiteURL:           "http://localhost:3333",
		TallyTimeout:      2 * time.Second,
		IPHashSalt:        "test-salt",
		MultiVotePassword: "letmevoteagain",
		SkipEmails:        true,
	}
	m := NewManager(st, &mailer.LogMailer{}, cfg)
	m.SetClock(func() time.Time { return testNow })
	return m, st
}

func createTestPoll(t *testing.T, m *Manager, req *models.CreatePollRequest) (pollID, ownerID string) {
	t.Helper()
	if req.Title == "" {
		req.Title = "Test Poll"
	}
	if req.Candidates == nil {
		req.Candidates = []string{"A", "B", "C"}
	}
	resp, err := m.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return resp.ID, resp.OwnerID
}

func getPoll(t *testing.T, st *store.MemStore, id string) *models.Poll {
	t.Helper()
	p, err := st.FindOne(context.Background(), id)
	if err != nil {
		t.Fatalf("FindOne(%s) error = %v", id, err)
	}
	return p
}

// checkVoterInvariant verifies voter_ids and the email map key set agree.
func checkVoterInvariant(t *testing.T, p *models.Poll) {
	t.Helper()
	if len(p.VoterIDs) != len(p.VoterEmailMap) {
		t.Fatalf("voter_ids has %d entries, email map has %d", len(p.VoterIDs), len(p.VoterEmailMap))
	}
	for _, vid := range p.VoterIDs {
		if _, ok := p.VoterEmailMap[vid]; !ok {
			t.Fatalf("voter id %s missing from email map", vid)
		}
	}
}
