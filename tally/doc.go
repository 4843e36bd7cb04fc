// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally implements the ranked-choice algorithms over a ballot
profile.

A Profile groups ballots (candidate-to-rank maps, ties and partial rankings
allowed) into distinct types with counts and precomputes the pairwise
margin matrix. On top of that:

  - SplitCycleDefeat / SplitCycleWinners: the Split Cycle defeat relation,
    keeping an edge only when its margin exceeds the strength of every
    cycle through it (widest-path computation).
  - StableVoting / StableVotingWithExplanations: the Stable Voting
    recursion, optionally tracing the matches that made each winner.
  - CondorcetWinner, IsLinear, SplittingNumbers: supplementary statistics
    for the results page.
  - Columns, CSVData: display and export layouts of the grouped profile.

All functions are pure and deterministic for a given profile; callers that
need a time bound wrap the invocation themselves.
*/
package tally
