// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/openballot/openballot/cliparse"
	"github.com/openballot/openballot/middleware"
	"github.com/openballot/openballot/models"
	"github.com/openballot/openballot/polls"
)

type VoterHandler struct {
	mgr *polls.Manager
	cfg cliparse.Config
}

func NewVoterHandler(mgr *polls.Manager, cfg cliparse.Config) *VoterHandler {
	return &VoterHandler{mgr: mgr, cfg: cfg}
}

// RemoveVoter handles DELETE /polls/voters/{id}/{vid}. Owner only; removes
// the voter from the roll along with any ballot they submitted.
func (h *VoterHandler) RemoveVoter(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	vid := r.PathValue("vid")
	ownerID := r.URL.Query().Get("oid")

	if err := h.mgr.RemoveVoter(r.Context(), pollID, vid, ownerID); err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"success": "Voter removed.",
	})
}

// RegenerateLink handles POST /polls/voters/{id}/{vid}/regenerate. Owner
// only; rotates the voter's token, moves their ballot to the new token, and
// emails them the fresh link.
func (h *VoterHandler) RegenerateLink(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	vid := r.PathValue("vid")
	ownerID := r.URL.Query().Get("oid")

	resp, err := h.mgr.RotateVoter(r.Context(), pollID, vid, ownerID)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// ResendInvite handles POST /polls/voters/{id}/resend. Owner only; resends
// the invitation to the given email address and bumps its send count.
func (h *VoterHandler) ResendInvite(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	ownerID := r.URL.Query().Get("oid")

	var req models.ResendInviteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	msg, err := h.mgr.ResendInvite(r.Context(), pollID, req.Email, ownerID)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"success": msg,
	})
}
