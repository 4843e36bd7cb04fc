// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/openballot/openballot/cliparse"
	"github.com/openballot/openballot/middleware"
	"github.com/openballot/openballot/polls"
)

type ResultsHandler struct {
	mgr *polls.Manager
	cfg cliparse.Config
}

func NewResultsHandler(mgr *polls.Manager, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{mgr: mgr, cfg: cfg}
}

// GetOutcome handles POST /polls/outcome/{id}. POST because the call can
// have a side effect: on a poll past its closing datetime it finalizes the
// result. The response always carries the poll metadata; the result itself
// only when the caller may view it.
func (h *ResultsHandler) GetOutcome(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	q := r.URL.Query()
	ownerID := q.Get("oid")
	vid := q.Get("vid")

	info, err := h.mgr.Outcome(r.Context(), pollID, ownerID, vid)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, info)
}

// GetSubmittedRankings handles GET /polls/submitted_rankings/{id}. Owner
// only; returns the anonymized ballot table and its CSV form.
func (h *ResultsHandler) GetSubmittedRankings(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	ownerID := r.URL.Query().Get("oid")

	resp, err := h.mgr.SubmittedRankings(r.Context(), pollID, ownerID)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
