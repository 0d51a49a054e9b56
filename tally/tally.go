// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"maps"
	"math"
	"slices"
)

type Choice string

const (
	Unset Choice = ""
	Yes   Choice = "yes"
	No    Choice = "no"
)

// ParseChoice accepts "yes" or "no"
func ParseChoice(s string) (Choice, bool) {
	switch Choice(s) {
	case Yes, No:
		return Choice(s), true
	}
	return Unset, false
}

// Tally holds the vote counters for one item
type Tally struct {
	ItemID int
	Yes    int
	No     int
}

func (t Tally) Total() int {
	return t.Yes + t.No
}

// Percentages returns the rounded yes share and its complement. Both are
// zero when nobody has voted.
func (t Tally) Percentages() (yes, no int) {
	total := t.Total()
	if total == 0 {
		return 0, 0
	}
	// yes is rounded half away from zero; no is its complement, not
	// rounded on its own, so the pair always sums to 100 (1/7 → 13/87)
	yes = int(math.Round(float64(t.Yes) / float64(total) * 100))
	return yes, 100 - yes
}

// Ledger records this session's vote per item. A Ledger is never
// modified after construction.
type Ledger struct {
	votes map[int]Choice
}

// Choice returns the recorded vote or Unset
func (l Ledger) Choice(itemID int) Choice {
	return l.votes[itemID]
}

func (l Ledger) Len() int {
	return len(l.votes)
}

func (l Ledger) with(itemID int, c Choice) Ledger {
	next := make(map[int]Choice, len(l.votes)+1)
	maps.Copy(next, l.votes)
	next[itemID] = c
	return Ledger{votes: next}
}

// Board is an immutable snapshot of every tally plus the session ledger.
// CastVote returns a new Board and leaves the receiver untouched.
type Board struct {
	order   []int
	tallies map[int]Tally
	ledger  Ledger
}

// NewBoard seeds a board. Later duplicates of an item id are dropped and
// negative seeds are clamped to zero.
func NewBoard(seed []Tally) Board {
	b := Board{tallies: make(map[int]Tally, len(seed))}
	for _, t := range seed {
		if _, dup := b.tallies[t.ItemID]; dup {
			continue
		}
		t.Yes = max(t.Yes, 0)
		t.No = max(t.No, 0)
		b.order = append(b.order, t.ItemID)
		b.tallies[t.ItemID] = t
	}
	return b
}

// CastVote records choice for itemID. It reports false and returns the
// receiver unchanged when the session already voted on the item, the
// item is unknown, or the choice is not yes/no.
func (b Board) CastVote(itemID int, choice Choice) (Board, bool) {
	if choice != Yes && choice != No {
		return b, false
	}
	if b.ledger.Choice(itemID) != Unset {
		return b, false
	}
	t, ok := b.tallies[itemID]
	if !ok {
		return b, false
	}

	if choice == Yes {
		t.Yes++
	} else {
		t.No++
	}

	next := Board{
		order:   b.order,
		tallies: maps.Clone(b.tallies),
		ledger:  b.ledger.with(itemID, choice),
	}
	next.tallies[itemID] = t
	return next, true
}

func (b Board) Tally(itemID int) (Tally, bool) {
	t, ok := b.tallies[itemID]
	return t, ok
}

// Percentages for an unknown item are both zero
func (b Board) Percentages(itemID int) (yes, no int) {
	return b.tallies[itemID].Percentages()
}

func (b Board) Ledger() Ledger {
	return b.ledger
}

// Tallies returns every tally in seed order
func (b Board) Tallies() []Tally {
	out := make([]Tally, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.tallies[id])
	}
	return out
}

// Items returns the item ids in seed order
func (b Board) Items() []int {
	return slices.Clone(b.order)
}
