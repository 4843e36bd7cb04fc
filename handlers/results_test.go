// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openballot/openballot/models"
)

func TestGetOutcome(t *testing.T) {
	mgr, _ := setupManager(t)
	cfg := getTestConfig()
	handler := NewResultsHandler(mgr, cfg)
	votingHandler := NewVotingHandler(mgr, cfg)
	pollID, ownerID := createPoll(t, mgr, &models.CreatePollRequest{})

	vote(t, votingHandler, pollID, "", "10.0.0.1:1", map[string]int{"A": 1, "B": 2, "C": 3})
	vote(t, votingHandler, pollID, "", "10.0.0.2:1", map[string]int{"A": 1, "C": 2, "B": 3})

	req := httptest.NewRequest("POST", "/polls/outcome/"+pollID+"?oid="+ownerID, nil)
	req.SetPathValue("id", pollID)
	w := httptest.NewRecorder()
	handler.GetOutcome(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	var info models.OutcomeInfo
	if err := json.NewDecoder(w.Body).Decode(&info); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !info.CanView {
		t.Error("Expected can_view true for owner")
	}
	if info.Result == nil {
		t.Fatal("Expected a result")
	}
	if info.Result.CondorcetWinner != "A" {
		t.Errorf("Expected Condorcet winner A, got '%s'", info.Result.CondorcetWinner)
	}
	if len(info.Result.SVWinners) != 1 || info.Result.SVWinners[0] != "A" {
		t.Errorf("Expected SV winners [A], got %v", info.Result.SVWinners)
	}
}

func TestGetOutcomeRestricted(t *testing.T) {
	mgr, _ := setupManager(t)
	handler := NewResultsHandler(mgr, getTestConfig())
	pollID, _ := createPoll(t, mgr, &models.CreatePollRequest{
		IsPrivate:   true,
		VoterEmails: []string{"a@example.com"},
	})

	req := httptest.NewRequest("POST", "/polls/outcome/"+pollID+"?vid=stranger", nil)
	req.SetPathValue("id", pollID)
	w := httptest.NewRecorder()
	handler.GetOutcome(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var info models.OutcomeInfo
	if err := json.NewDecoder(w.Body).Decode(&info); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if info.CanView {
		t.Error("Expected can_view false for a stranger on a private poll")
	}
	if info.Result != nil {
		t.Error("Result leaked to a restricted caller")
	}
}

func TestGetOutcomeNotFound(t *testing.T) {
	mgr, _ := setupManager(t)
	handler := NewResultsHandler(mgr, getTestConfig())

	req := httptest.NewRequest("POST", "/polls/outcome/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()
	handler.GetOutcome(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestGetSubmittedRankings(t *testing.T) {
	mgr, _ := setupManager(t)
	cfg := getTestConfig()
	handler := NewResultsHandler(mgr, cfg)
	votingHandler := NewVotingHandler(mgr, cfg)
	pollID, ownerID := createPoll(t, mgr, &models.CreatePollRequest{})

	vote(t, votingHandler, pollID, "", "10.0.0.1:1", map[string]int{"A": 1, "B": 2})
	vote(t, votingHandler, pollID, "", "10.0.0.2:1", map[string]int{})

	t.Run("owner", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/polls/submitted_rankings/"+pollID+"?oid="+ownerID, nil)
		req.SetPathValue("id", pollID)
		w := httptest.NewRecorder()
		handler.GetSubmittedRankings(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
		}

		var resp models.SubmittedRankings
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.NumVoters != 2 {
			t.Errorf("Expected 2 voters, got %d", resp.NumVoters)
		}
		if resp.NumEmptyBallots != 1 {
			t.Errorf("Expected 1 empty ballot, got %d", resp.NumEmptyBallots)
		}
	})

	t.Run("not owner", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/polls/submitted_rankings/"+pollID+"?oid=bogus", nil)
		req.SetPathValue("id", pollID)
		w := httptest.NewRecorder()
		handler.GetSubmittedRankings(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("Expected status 403, got %d", w.Code)
		}
	})
}
