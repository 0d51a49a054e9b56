// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package query

import (
	"cmp"
	"slices"
	"strings"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection maps "desc" to Descending and anything else to Ascending
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Descending)) {
		return Descending
	}
	return Ascending
}

type SortState struct {
	Field     string
	Direction Direction
}

// Toggle flips the direction when field is already selected and
// otherwise selects field in ascending order
func (s SortState) Toggle(field string) SortState {
	if s.Field == field {
		if s.Direction == Descending {
			return SortState{Field: field, Direction: Ascending}
		}
		return SortState{Field: field, Direction: Descending}
	}
	return SortState{Field: field, Direction: Ascending}
}

// Key extracts a sortable value. Exactly one of Number or Text is set.
type Key[T any] struct {
	Number func(T) float64
	Text   func(T) string
}

// Keys maps a field name to its extractor
type Keys[T any] map[string]Key[T]

// Has reports whether field is sortable
func (k Keys[T]) Has(field string) bool {
	_, ok := k[field]
	return ok
}

// Normalize replaces an unknown field with fallback and an unknown
// direction with Ascending
func (k Keys[T]) Normalize(s SortState, fallback string) SortState {
	if !k.Has(s.Field) {
		s.Field = fallback
	}
	if s.Direction != Descending {
		s.Direction = Ascending
	}
	return s
}

// Sort returns a sorted copy of records. Records with equal keys keep
// their input order in both directions. An unknown field yields an
// unsorted copy.
func Sort[T any](records []T, state SortState, keys Keys[T]) []T {
	out := slices.Clone(records)
	if out == nil {
		out = []T{}
	}

	key, ok := keys[state.Field]
	if !ok {
		return out
	}

	compare := func(a, b T) int {
		if key.Number != nil {
			return cmp.Compare(key.Number(a), key.Number(b))
		}
		return strings.Compare(key.Text(a), key.Text(b))
	}
	if state.Direction == Descending {
		asc := compare
		compare = func(a, b T) int { return asc(b, a) }
	}

	slices.SortStableFunc(out, compare)
	return out
}
