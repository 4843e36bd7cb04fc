// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/openballot/openballot/models"
	"github.com/openballot/openballot/store"
)

func newPrivatePoll(t *testing.T) (*Manager, *storeAndIDs) {
	t.Helper()
	m, st := newTestManager(t)
	id, ownerID := createTestPoll(t, m, &models.CreatePollRequest{
		IsPrivate:   true,
		VoterEmails: []string{"a@example.com", "b@example.com"},
	})
	return m, &storeAndIDs{st: st, pollID: id, ownerID: ownerID}
}

type storeAndIDs struct {
	st      *store.MemStore
	pollID  string
	ownerID string
}

func (s *storeAndIDs) poll(t *testing.T) *models.Poll {
	t.Helper()
	p, err := s.st.FindOne(context.Background(), s.pollID)
	if err != nil {
		t.Fatalf("FindOne() error = %v", err)
	}
	return p
}

func TestRotatePreservesBallotAndInvalidatesOldToken(t *testing.T) {
	m, f := newPrivatePoll(t)
	ctx := context.Background()

	oldToken := f.poll(t).VoterIDs[0]
	ranking := map[string]int{"A": 1, "C": 2}
	if err := m.SubmitBallot(ctx, f.pollID, oldToken, "", "", &models.SubmitBallotRequest{Ranking: ranking}); err != nil {
		t.Fatalf("SubmitBallot() error = %v", err)
	}

	resp, err := m.RotateVoter(ctx, f.pollID, oldToken, f.ownerID)
	if err != nil {
		t.Fatalf("RotateVoter() error = %v", err)
	}
	if resp.NewVoterID == "" || resp.NewVoterID == oldToken {
		t.Fatalf("new voter id = %q", resp.NewVoterID)
	}
	if !strings.Contains(resp.VoteURL, resp.NewVoterID) {
		t.Errorf("vote url %q does not carry the new token", resp.VoteURL)
	}

	p := f.poll(t)
	checkVoterInvariant(t, p)
	if p.HasVoter(oldToken) {
		t.Error("old token still enrolled")
	}

	// The ballot survived with only its voter_id changed
	i := p.BallotFor(resp.NewVoterID)
	if i < 0 {
		t.Fatal("ballot lost during rotation")
	}
	if p.Ballots[i].Ranking["A"] != 1 || p.Ballots[i].Ranking["C"] != 2 {
		t.Errorf("ballot content changed: %v", p.Ballots[i].Ranking)
	}

	// The old token is permanently rejected
	err = m.SubmitBallot(ctx, f.pollID, oldToken, "", "", &models.SubmitBallotRequest{Ranking: ranking})
	if !errors.Is(err, ErrNotEligible) {
		t.Errorf("SubmitBallot() with old token error = %v, want ErrNotEligible", err)
	}
	if err := m.DeleteBallot(ctx, f.pollID, oldToken); !errors.Is(err, ErrVoterNotFound) {
		t.Errorf("DeleteBallot() with old token error = %v, want ErrVoterNotFound", err)
	}
}

func TestRotateGates(t *testing.T) {
	m, f := newPrivatePoll(t)
	ctx := context.Background()
	vid := f.poll(t).VoterIDs[0]

	if _, err := m.RotateVoter(ctx, f.pollID, vid, "wrong"); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("RotateVoter() wrong owner error = %v, want ErrNotAuthorized", err)
	}
	if _, err := m.RotateVoter(ctx, f.pollID, "unknown", f.ownerID); !errors.Is(err, ErrVoterNotFound) {
		t.Errorf("RotateVoter() unknown voter error = %v, want ErrVoterNotFound", err)
	}

	// Public polls have no voters to manage
	mPub, _ := newTestManager(t)
	idPub, ownerPub := createTestPoll(t, mPub, &models.CreatePollRequest{})
	if _, err := mPub.RotateVoter(ctx, idPub, "anything", ownerPub); !errors.Is(err, ErrInvalidState) {
		t.Errorf("RotateVoter() on public poll error = %v, want ErrInvalidState", err)
	}
}

func TestResendInviteIncrementsSendCount(t *testing.T) {
	m, f := newPrivatePoll(t)
	ctx := context.Background()

	msg, err := m.ResendInvite(ctx, f.pollID, "a@example.com", f.ownerID)
	if err != nil {
		t.Fatalf("ResendInvite() error = %v", err)
	}
	// never-tracked voters start at 1, so the first resend reports 2
	if !strings.Contains(msg, "Total emails sent: 2") {
		t.Errorf("message = %q", msg)
	}

	p := f.poll(t)
	checkVoterInvariant(t, p)
	if p.EmailSendCounts["a@example.com"] != 2 {
		t.Errorf("send count = %d, want 2", p.EmailSendCounts["a@example.com"])
	}

	info, err := m.Info(ctx, f.pollID, f.ownerID)
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	for _, d := range info.VoterDetails {
		want := 1
		if d.Email == "a@example.com" {
			want = 2
		}
		if d.EmailsSent != want {
			t.Errorf("emails sent for %s = %d, want %d", d.Email, d.EmailsSent, want)
		}
	}

	if _, err := m.ResendInvite(ctx, f.pollID, "nobody@example.com", f.ownerID); !errors.Is(err, ErrVoterNotFound) {
		t.Errorf("ResendInvite() unknown email error = %v, want ErrVoterNotFound", err)
	}
}

func TestRemoveVoterDeletesBallot(t *testing.T) {
	m, f := newPrivatePoll(t)
	ctx := context.Background()

	p := f.poll(t)
	vid, keep := p.VoterIDs[0], p.VoterIDs[1]
	for _, v := range []string{vid, keep} {
		if err := m.SubmitBallot(ctx, f.pollID, v, "", "", &models.SubmitBallotRequest{
			Ranking: map[string]int{"A": 1},
		}); err != nil {
			t.Fatalf("SubmitBallot() error = %v", err)
		}
	}

	if err := m.RemoveVoter(ctx, f.pollID, vid, f.ownerID); err != nil {
		t.Fatalf("RemoveVoter() error = %v", err)
	}

	p = f.poll(t)
	checkVoterInvariant(t, p)
	if p.HasVoter(vid) {
		t.Error("removed voter still enrolled")
	}
	if len(p.Ballots) != 1 || p.Ballots[0].VoterID != keep {
		t.Errorf("ballots after removal = %+v", p.Ballots)
	}

	if err := m.RemoveVoter(ctx, f.pollID, vid, f.ownerID); !errors.Is(err, ErrVoterNotFound) {
		t.Errorf("RemoveVoter() twice error = %v, want ErrVoterNotFound", err)
	}
}
