// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/openballot/openballot/middleware"
	"github.com/openballot/openballot/polls"
)

// writeError maps a domain error to an HTTP status. Anything outside the
// known taxonomy is a 500 and gets logged; domain errors are the caller's
// fault and are not.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, polls.ErrPollNotFound),
		errors.Is(err, polls.ErrVoterNotFound),
		errors.Is(err, polls.ErrBallotNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, polls.ErrNotAuthorized),
		errors.Is(err, polls.ErrNotEligible),
		errors.Is(err, polls.ErrDuplicateVote):
		middleware.ErrorResponse(w, http.StatusForbidden, err.Error())
	case errors.Is(err, polls.ErrInvalidState):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, polls.ErrValidation):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
