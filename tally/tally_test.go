// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"reflect"
	"sort"
	"testing"
)

// repeat builds n identical ballots.
func repeat(n int, r Ranking) []Ranking {
	out := make([]Ranking, n)
	for i := range out {
		out[i] = r
	}
	return out
}

func sorted(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	sort.Strings(out)
	return out
}

func TestProfileGrouping(t *testing.T) {
	ballots := append(
		repeat(3, Ranking{"A": 1, "B": 2}),
		Ranking{"B": 1, "A": 2},
	)
	p := NewProfile([]string{"A", "B"}, ballots)

	if len(p.Rankings) != 2 {
		t.Fatalf("distinct ballot types = %d, want 2", len(p.Rankings))
	}
	if p.NumVoters() != 4 {
		t.Errorf("NumVoters() = %d, want 4", p.NumVoters())
	}
	if got := p.Margin("A", "B"); got != 2 {
		t.Errorf("Margin(A, B) = %d, want 2", got)
	}
	if got := p.Margin("B", "A"); got != -2 {
		t.Errorf("Margin(B, A) = %d, want -2", got)
	}
}

func TestMarginUnrankedCandidates(t *testing.T) {
	// A ranked candidate beats an unranked one; two one-sided ballots cancel.
	p := NewProfile([]string{"A", "B"}, []Ranking{
		{"A": 1},
		{"B": 1},
	})
	if got := p.Margin("A", "B"); got != 0 {
		t.Errorf("Margin(A, B) = %d, want 0", got)
	}

	p = NewProfile([]string{"A", "B"}, []Ranking{{"A": 1}})
	if got := p.Margin("A", "B"); got != 1 {
		t.Errorf("Margin(A, B) with B unranked = %d, want 1", got)
	}
}

func TestProfileDropsUnknownCandidates(t *testing.T) {
	p := NewProfile([]string{"A"}, []Ranking{{"A": 1, "Ghost": 2}})
	if len(p.Rankings[0]) != 1 {
		t.Errorf("ranking = %v, want only A", p.Rankings[0])
	}
}

func TestCondorcetWinner(t *testing.T) {
	ballots := append(
		repeat(2, Ranking{"A": 1, "B": 2, "C": 3}),
		Ranking{"B": 1, "C": 2, "A": 3},
	)
	p := NewProfile([]string{"A", "B", "C"}, ballots)

	w, ok := p.CondorcetWinner()
	if !ok || w != "A" {
		t.Errorf("CondorcetWinner() = %q, %v, want A, true", w, ok)
	}

	linear, order := p.IsLinear()
	if !linear || !reflect.DeepEqual(order, []string{"A", "B", "C"}) {
		t.Errorf("IsLinear() = %v, %v", linear, order)
	}

	if got := SplitCycleWinners(p, nil); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("SplitCycleWinners() = %v, want [A]", got)
	}
	if got := StableVoting(p); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("StableVoting() = %v, want [A]", got)
	}
}

func TestSymmetricCycle(t *testing.T) {
	p := NewProfile([]string{"A", "B", "C"}, []Ranking{
		{"A": 1, "B": 2, "C": 3},
		{"B": 1, "C": 2, "A": 3},
		{"C": 1, "A": 2, "B": 3},
	})

	if _, ok := p.CondorcetWinner(); ok {
		t.Fatal("CondorcetWinner() found a winner in a perfect cycle")
	}
	if linear, _ := p.IsLinear(); linear {
		t.Error("IsLinear() = true for a cycle")
	}

	// All margins tie at 1, so no edge survives Split Cycle.
	d := SplitCycleDefeat(p, nil)
	for _, a := range p.Candidates {
		for _, b := range p.Candidates {
			if a != b && d.HasEdge(a, b) {
				t.Errorf("HasEdge(%s, %s) = true, want false", a, b)
			}
		}
	}
	if got := sorted(SplitCycleWinners(p, nil)); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("SplitCycleWinners() = %v, want all three", got)
	}
	if got := sorted(StableVoting(p)); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("StableVoting() = %v, want all three", got)
	}

	sn := SplittingNumbers(p)
	if got := sn["A -> B -> C -> A"]; got != 1 {
		t.Errorf("SplittingNumbers() = %v, want cycle A -> B -> C -> A with 1", sn)
	}
}

func TestAsymmetricCycle(t *testing.T) {
	// Margins: A>B by 3, B>C by 5, C>A by 1. The weakest edge is discarded.
	ballots := repeat(4, Ranking{"A": 1, "B": 2, "C": 3})
	ballots = append(ballots, repeat(3, Ranking{"B": 1, "C": 2, "A": 3})...)
	ballots = append(ballots, repeat(2, Ranking{"C": 1, "A": 2, "B": 3})...)
	p := NewProfile([]string{"A", "B", "C"}, ballots)

	if got := p.Margin("A", "B"); got != 3 {
		t.Fatalf("Margin(A, B) = %d, want 3", got)
	}
	if got := p.Margin("B", "C"); got != 5 {
		t.Fatalf("Margin(B, C) = %d, want 5", got)
	}
	if got := p.Margin("C", "A"); got != 1 {
		t.Fatalf("Margin(C, A) = %d, want 1", got)
	}

	d := SplitCycleDefeat(p, nil)
	if !d.HasEdge("A", "B") || !d.HasEdge("B", "C") {
		t.Error("strong edges should survive Split Cycle")
	}
	if d.HasEdge("C", "A") {
		t.Error("the weakest cycle edge should be discarded")
	}

	if got := SplitCycleWinners(p, nil); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("SplitCycleWinners() = %v, want [A]", got)
	}

	winners, explanations := StableVotingWithExplanations(p)
	if !reflect.DeepEqual(winners, []string{"A"}) {
		t.Fatalf("StableVoting() = %v, want [A]", winners)
	}
	if len(explanations["A"]) == 0 {
		t.Fatal("no explanation recorded for the winner")
	}
	ex := explanations["A"][0]
	if ex.Winner != "A" || ex.RunnerUp != "C" {
		t.Errorf("explanation = %+v", ex)
	}

	sn := SplittingNumbers(p)
	if got := sn["A -> B -> C -> A"]; got != 1 {
		t.Errorf("SplittingNumbers() = %v", sn)
	}
}

func TestStableVotingDeterministic(t *testing.T) {
	p := NewProfile([]string{"A", "B", "C"}, []Ranking{
		{"A": 1, "B": 2, "C": 3},
		{"B": 1, "C": 2, "A": 3},
		{"C": 1, "A": 2, "B": 3},
	})
	first := StableVoting(p)
	for i := 0; i < 10; i++ {
		if got := StableVoting(p); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: StableVoting() = %v, want %v", i, got, first)
		}
	}
}

func TestColumns(t *testing.T) {
	ballots := append(
		repeat(2, Ranking{"A": 1, "B": 1, "C": 2}),
		Ranking{"C": 1},
	)
	p := NewProfile([]string{"A", "B", "C"}, ballots)

	columns, numRows := Columns(p)
	if len(columns) != 2 {
		t.Fatalf("columns = %v", columns)
	}
	if numRows != 3 {
		t.Errorf("numRows = %d, want 3", numRows)
	}
	if !reflect.DeepEqual(columns[0], []string{"2", "A, B", "C"}) {
		t.Errorf("columns[0] = %v", columns[0])
	}
	if !reflect.DeepEqual(columns[1], []string{"1", "C"}) {
		t.Errorf("columns[1] = %v", columns[1])
	}
}

func TestCSVData(t *testing.T) {
	ballots := append(
		repeat(2, Ranking{"A": 1, "B": 2}),
		Ranking{"B": 1},
	)
	p := NewProfile([]string{"A", "B"}, ballots)

	rows := CSVData(p)
	want := [][]string{
		{"A", "B", "count"},
		{"1", "2", "2"},
		{"", "1", "1"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("CSVData() = %v, want %v", rows, want)
	}
}

func TestCandidateMap(t *testing.T) {
	cmap := CandidateMap([]string{"X", "Y"})
	if cmap["0"] != "X" || cmap["1"] != "Y" {
		t.Errorf("CandidateMap() = %v", cmap)
	}
}
