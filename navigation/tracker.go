// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package navigation

import "slices"

// DefaultThreshold matches the fixed header height
const DefaultThreshold = 100

// scrolledAfter is the offset past which the header is drawn compact
const scrolledAfter = 10

// Anchor is a navigable section and its top offset in the document
type Anchor struct {
	ID    string
	Label string
	Top   float64
}

// ActiveSection returns the last anchor, in document order, whose top is
// at or above scrollY+threshold. ok is false when no anchor qualifies.
func ActiveSection(anchors []Anchor, scrollY, threshold float64) (id string, ok bool) {
	for i := len(anchors) - 1; i >= 0; i-- {
		if anchors[i].Top <= scrollY+threshold {
			return anchors[i].ID, true
		}
	}
	return "", false
}

// Tracker follows the visitor's scroll position. It is not safe for
// concurrent use; the owning session serializes access.
type Tracker struct {
	anchors   []Anchor
	threshold float64
	active    string
	scrolled  bool
}

func NewTracker(anchors []Anchor, threshold float64) *Tracker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	t := &Tracker{
		anchors:   slices.Clone(anchors),
		threshold: threshold,
	}
	if len(anchors) > 0 {
		t.active = anchors[0].ID
	}
	return t
}

// Update recomputes the active section for a scroll event. When no
// section qualifies the previous one stays active.
func (t *Tracker) Update(scrollY float64) string {
	t.scrolled = scrollY > scrolledAfter
	if id, ok := ActiveSection(t.anchors, scrollY, t.threshold); ok {
		t.active = id
	}
	return t.active
}

// Navigate marks id active right away and returns its anchor so the
// client can scroll to it. Unknown ids change nothing.
func (t *Tracker) Navigate(id string) (Anchor, bool) {
	for _, a := range t.anchors {
		if a.ID == id {
			t.active = id
			return a, true
		}
	}
	return Anchor{}, false
}

// Layout updates the top offsets of known anchors in place. Anchors keep
// document order even when the reported offsets are not increasing.
func (t *Tracker) Layout(tops map[string]float64) {
	for i := range t.anchors {
		if top, ok := tops[t.anchors[i].ID]; ok {
			t.anchors[i].Top = top
		}
	}
}

func (t *Tracker) Active() string {
	return t.active
}

func (t *Tracker) Scrolled() bool {
	return t.scrolled
}

func (t *Tracker) Anchors() []Anchor {
	return slices.Clone(t.anchors)
}
