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

type PollHandler struct {
	mgr *polls.Manager
	cfg cliparse.Config
}

func NewPollHandler(mgr *polls.Manager, cfg cliparse.Config) *PollHandler {
	return &PollHandler{mgr: mgr, cfg: cfg}
}

// CreatePoll handles POST /polls/create
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := h.mgr.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// UpdatePoll handles POST /polls/update/{id}. The owner token comes in the
// oid query parameter.
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	ownerID := r.URL.Query().Get("oid")

	var req models.UpdatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := h.mgr.Update(r.Context(), pollID, ownerID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// DeletePoll handles DELETE /polls/delete/{id}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	ownerID := r.URL.Query().Get("oid")

	if err := h.mgr.Delete(r.Context(), pollID, ownerID); err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"success": "Poll deleted.",
	})
}

// GetPollData handles GET /polls/data/{id}. Owner only; returns the admin
// view including per-voter email counts on private polls.
func (h *PollHandler) GetPollData(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	ownerID := r.URL.Query().Get("oid")

	info, err := h.mgr.Info(r.Context(), pollID, ownerID)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, info)
}

// GetRankingInformation handles GET /polls/ranking_information/{id}. This
// is the vote-page view: candidates, the caller's existing ranking if any,
// and whether voting is currently possible. The voter token comes in vid
// and the multiple-vote password, if presented, in allowmultiplevote.
func (h *PollHandler) GetRankingInformation(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	vid := r.URL.Query().Get("vid")
	multiVotePwd := r.URL.Query().Get("allowmultiplevote")

	info, err := h.mgr.RankingInfo(r.Context(), pollID, vid, multiVotePwd)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, info)
}
