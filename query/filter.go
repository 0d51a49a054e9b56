// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package query

import "strings"

// FilterState holds the predicates a widget is currently filtering by.
// An empty SearchText or a nil Category/Impact matches everything.
type FilterState struct {
	SearchText string
	Category   *string
	Impact     *string
}

// Active reports whether any predicate is set
func (s FilterState) Active() bool {
	return s.SearchText != "" || s.Category != nil || s.Impact != nil
}

// Fields tells Filter which parts of a record the predicates apply to.
// A nil extractor means the record kind has no such field and the
// matching predicate is ignored.
type Fields[T any] struct {
	Text     func(T) []string
	Category func(T) []string
	Impact   func(T) string
}

// Filter returns the records matching every active predicate, in input
// order. The result is never nil, so an empty match is distinguishable
// from an unfiltered nil slice.
func Filter[T any](records []T, state FilterState, f Fields[T]) []T {
	needle := strings.ToLower(state.SearchText)

	out := make([]T, 0, len(records))
	for _, rec := range records {
		if needle != "" && f.Text != nil && !containsText(f.Text(rec), needle) {
			continue
		}
		if state.Category != nil && f.Category != nil && !containsExact(f.Category(rec), *state.Category) {
			continue
		}
		if state.Impact != nil && f.Impact != nil && f.Impact(rec) != *state.Impact {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func containsText(values []string, needle string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

func containsExact(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

// Distinct returns the values produced by key in first-seen order
func Distinct[T any](records []T, key func(T) []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, rec := range records {
		for _, v := range key(rec) {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// Optional turns an empty string into a nil predicate
func Optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
