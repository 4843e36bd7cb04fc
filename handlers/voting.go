// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/openballot/openballot/auth"
	"github.com/openballot/openballot/cliparse"
	"github.com/openballot/openballot/middleware"
	"github.com/openballot/openballot/models"
	"github.com/openballot/openballot/polls"
)

type VotingHandler struct {
	mgr *polls.Manager
	cfg cliparse.Config
}

func NewVotingHandler(mgr *polls.Manager, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{mgr: mgr, cfg: cfg}
}

// SubmitBallot handles POST /polls/vote/{id}. On private polls the voter
// token in vid identifies the ballot; on public polls the hashed client IP
// is the duplicate marker. The raw IP is never stored.
func (h *VotingHandler) SubmitBallot(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	vid := r.URL.Query().Get("vid")
	multiVotePwd := r.URL.Query().Get("allowmultiplevote")

	var req models.SubmitBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	source := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)
	err := h.mgr.SubmitBallot(r.Context(), pollID, vid, source, multiVotePwd, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmitBallotResponse{
		Success: "Ballot submitted.",
	})
}

// DeleteBallot handles DELETE /polls/delete_ballot/{id}. Private polls
// only; removes the ballot owned by the vid token.
func (h *VotingHandler) DeleteBallot(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	vid := r.URL.Query().Get("vid")

	if err := h.mgr.DeleteBallot(r.Context(), pollID, vid); err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"success": "Ballot deleted.",
	})
}

// DeleteAllBallots handles DELETE /polls/ballots/{id}/all. Owner only.
func (h *VotingHandler) DeleteAllBallots(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	ownerID := r.URL.Query().Get("oid")

	deleted, err := h.mgr.DeleteAllBallots(r.Context(), pollID, ownerID)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]any{
		"success":     "All ballots deleted.",
		"num_deleted": deleted,
	})
}

// BulkVote handles POST /polls/bulk_vote/{id}. Accepts a multipart upload
// with a csv_file field; overwrite=true replaces the existing ballots and
// strict=true turns header mismatches into errors instead of warnings.
func (h *VotingHandler) BulkVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	q := r.URL.Query()
	ownerID := q.Get("oid")
	overwrite := q.Get("overwrite") == "true"
	strict := q.Get("strict") == "true"

	file, header, err := r.FormFile("csv_file")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "csv_file is required")
		return
	}
	defer file.Close()

	resp, err := h.mgr.BulkImport(r.Context(), pollID, ownerID, file, header.Filename, overwrite, strict)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
