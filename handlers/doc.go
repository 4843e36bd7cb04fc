// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the OpenBallot API.

# Handler Types

Each handler is a struct wrapping the poll manager and config:

	pollHandler := handlers.NewPollHandler(mgr, cfg)

  - PollHandler: poll lifecycle (create, update, delete, data, vote page)
  - VotingHandler: ballot submission, deletion, and bulk CSV import
  - ResultsHandler: outcome computation and raw ranking retrieval
  - VoterHandler: private-poll voter administration

# Authorization

There are no accounts. Capability tokens ride in query parameters:

  - oid: the owner token, returned once at poll creation
  - vid: a voter token, issued per email on private polls
  - allowmultiplevote: the shared password that bypasses the one-vote rule

# Poll Lifecycle

	POST   /polls/create
	POST   /polls/update/{id}?oid=...
	DELETE /polls/delete/{id}?oid=...
	GET    /polls/data/{id}?oid=...
	GET    /polls/ranking_information/{id}?vid=...

# Voting

	POST   /polls/vote/{id}?vid=...
	DELETE /polls/delete_ballot/{id}?vid=...
	DELETE /polls/ballots/{id}/all?oid=...
	POST   /polls/bulk_vote/{id}?oid=...   (multipart, csv_file field)

# Outcomes

	POST /polls/outcome/{id}?oid=...&vid=...
	GET  /polls/submitted_rankings/{id}?oid=...

The outcome route is a POST because calling it on a poll past its closing
datetime finalizes the result permanently.

# Error Mapping

Domain errors map to statuses in writeError: not-found errors to 404,
authorization and eligibility errors to 403, state conflicts to 409,
validation failures to 400. Everything else is a logged 500.
*/
package handlers
