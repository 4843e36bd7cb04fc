// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/openballot/openballot/cliparse"
	"github.com/openballot/openballot/handlers"
	"github.com/openballot/openballot/middleware"
	"github.com/openballot/openballot/polls"
)

func NewRouter(mgr *polls.Manager, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(mgr, cfg)
	votingHandler := handlers.NewVotingHandler(mgr, cfg)
	resultsHandler := handlers.NewResultsHandler(mgr, cfg)
	voterHandler := handlers.NewVoterHandler(mgr, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll lifecycle (owner operations)
	mux.HandleFunc("POST /polls/create", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("POST /polls/update/{id}", middleware.WithLogging(pollHandler.UpdatePoll))
	mux.HandleFunc("DELETE /polls/delete/{id}", middleware.WithLogging(pollHandler.DeletePoll))
	mux.HandleFunc("GET /polls/data/{id}", middleware.WithLogging(pollHandler.GetPollData))
	mux.HandleFunc("GET /polls/ranking_information/{id}", middleware.WithLogging(pollHandler.GetRankingInformation))

	// Voting operations
	mux.HandleFunc("POST /polls/vote/{id}", middleware.WithLogging(votingHandler.SubmitBallot))
	mux.HandleFunc("DELETE /polls/delete_ballot/{id}", middleware.WithLogging(votingHandler.DeleteBallot))
	mux.HandleFunc("DELETE /polls/ballots/{id}/all", middleware.WithLogging(votingHandler.DeleteAllBallots))
	mux.HandleFunc("POST /polls/bulk_vote/{id}", middleware.WithLogging(votingHandler.BulkVote))

	// Outcome retrieval
	mux.HandleFunc("POST /polls/outcome/{id}", middleware.WithLogging(resultsHandler.GetOutcome))
	mux.HandleFunc("GET /polls/submitted_rankings/{id}", middleware.WithLogging(resultsHandler.GetSubmittedRankings))

	// Voter administration (private polls)
	mux.HandleFunc("DELETE /polls/voters/{id}/{vid}", middleware.WithLogging(voterHandler.RemoveVoter))
	mux.HandleFunc("POST /polls/voters/{id}/{vid}/regenerate", middleware.WithLogging(voterHandler.RegenerateLink))
	mux.HandleFunc("POST /polls/voters/{id}/resend", middleware.WithLogging(voterHandler.ResendInvite))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("openballot API v1"))
	})

	return mux
}
