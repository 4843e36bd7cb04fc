// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: title, candidates, privacy and visibility settings,
    voter emails for private polls
  - UpdatePollRequest: partial update with nil-means-keep semantics and an
    explicit Apply merge
  - SubmitBallotRequest: ranking (map[string]int, ties via equal ranks)
  - ResendInviteRequest: email

# Response Types

Types for JSON responses:

  - CreatePollResponse: id, owner_id
  - UpdatePollResponse, SubmitBallotResponse, BulkImportResponse,
    RotateVoterResponse
  - PollInfo: admin/data view, voter details for private-poll owners
  - RankingInfo: vote-page view with can_vote / can_view_outcome
  - SubmittedRankings: raw ballot layout for the owner
  - OutcomeInfo: result plus poll metadata
  - ErrorResponse: error, message

# Domain Types

Internal data structures, stored as one JSON document per poll:

  - Poll: the aggregate root (identity lists, ballots, cached result)
  - Ballot: one ranking with optional voter id and a source marker
  - Result: margins, defeat relation, winner sets, explanations; frozen
    once the poll is completed
  - Explanation: one step of the stable-winner trace
*/
package models
