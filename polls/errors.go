// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import "errors"

// Sentinel errors returned by Manager operations. Handlers map these onto
// HTTP status codes; wrap with fmt.Errorf("%w: ...") to add detail.
var (
	ErrPollNotFound   = errors.New("poll not found")
	ErrVoterNotFound  = errors.New("voter not found")
	ErrBallotNotFound = errors.New("ballot not found")
	ErrNotAuthorized  = errors.New("not authorized")
	ErrNotEligible    = errors.New("not eligible to vote in this poll")
	ErrDuplicateVote  = errors.New("already submitted a ballot")
	ErrInvalidState   = errors.New("not allowed in the poll's current state")
	ErrValidation     = errors.New("invalid request")
)
