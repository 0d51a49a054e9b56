// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rumor struct {
	ID       int
	Text     string
	Targets  []string
	Category string
	Impact   string
	Score    float64
}

var rumorFields = Fields[rumor]{
	Text:     func(r rumor) []string { return append([]string{r.Text}, r.Targets...) },
	Category: func(r rumor) []string { return []string{r.Category} },
	Impact:   func(r rumor) string { return r.Impact },
}

var rumorKeys = Keys[rumor]{
	"id":       {Number: func(r rumor) float64 { return float64(r.ID) }},
	"score":    {Number: func(r rumor) float64 { return r.Score }},
	"category": {Text: func(r rumor) string { return r.Category }},
}

func sampleRumors() []rumor {
	return []rumor{
		{ID: 1, Text: "Liberation Day tariffs", Targets: []string{"EU", "India"}, Category: "Various", Impact: "High", Score: 9.2},
		{ID: 2, Text: "Retaliation on tech exports", Targets: []string{"European Union"}, Category: "Tech", Impact: "Low", Score: 8.5},
		{ID: 3, Text: "Russian oil tariff", Targets: []string{"Russia"}, Category: "Oil & Gas", Impact: "High", Score: 8.5},
		{ID: 4, Text: "UK goods", Targets: []string{"United Kingdom"}, Category: "Tech", Impact: "Medium", Score: 6.0},
	}
}

func ids(rs []rumor) []int {
	out := make([]int, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		state FilterState
		want  []int
	}{
		{"no predicates", FilterState{}, []int{1, 2, 3, 4}},
		{"impact high", FilterState{Impact: Optional("High")}, []int{1, 3}},
		{"category", FilterState{Category: Optional("Tech")}, []int{2, 4}},
		{"search is case insensitive", FilterState{SearchText: "RUSSIA"}, []int{3}},
		{"search matches targets", FilterState{SearchText: "europe"}, []int{2}},
		{"predicates are ANDed", FilterState{Category: Optional("Tech"), Impact: Optional("Medium")}, []int{4}},
		{"no match", FilterState{SearchText: "mars"}, []int{}},
		{"category is exact", FilterState{Category: Optional("tech")}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sampleRumors(), tt.state, rumorFields)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_SubsetOrderAndIdempotence(t *testing.T) {
	records := sampleRumors()
	states := []FilterState{
		{},
		{SearchText: "t"},
		{Impact: Optional("High")},
		{Category: Optional("Tech"), SearchText: "uk"},
		{Category: Optional("nope")},
	}

	for _, s := range states {
		once := Filter(records, s, rumorFields)
		twice := Filter(once, s, rumorFields)
		assert.Equal(t, once, twice, "filter must be idempotent")

		// order-preserving subset: ids strictly increase as in the input
		prev := 0
		for _, r := range once {
			assert.Greater(t, r.ID, prev)
			prev = r.ID
		}
	}
}

func TestFilter_IgnoresUndeclaredFields(t *testing.T) {
	textOnly := Fields[rumor]{Text: rumorFields.Text}
	got := Filter(sampleRumors(), FilterState{Impact: Optional("High")}, textOnly)
	assert.Len(t, got, 4)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := sampleRumors()
	Filter(records, FilterState{Impact: Optional("Low")}, rumorFields)
	assert.Equal(t, sampleRumors(), records)
}

func TestDistinct(t *testing.T) {
	got := Distinct(sampleRumors(), func(r rumor) []string { return []string{r.Impact} })
	assert.Equal(t, []string{"High", "Low", "Medium"}, got)
}

func TestFilterState_Active(t *testing.T) {
	assert.False(t, FilterState{}.Active())
	assert.True(t, FilterState{SearchText: "x"}.Active())
	assert.True(t, FilterState{Impact: Optional("High")}.Active())
	assert.Nil(t, Optional(""))
}

func TestSort(t *testing.T) {
	tests := []struct {
		name  string
		state SortState
		want  []int
	}{
		{"numeric ascending", SortState{Field: "score", Direction: Ascending}, []int{4, 2, 3, 1}},
		{"numeric descending keeps tie order", SortState{Field: "score", Direction: Descending}, []int{1, 2, 3, 4}},
		{"string ascending keeps tie order", SortState{Field: "category", Direction: Ascending}, []int{3, 2, 4, 1}},
		{"unknown field leaves order", SortState{Field: "bogus"}, []int{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sort(sampleRumors(), tt.state, rumorKeys)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSort_IsPermutation(t *testing.T) {
	records := sampleRumors()
	for field := range rumorKeys {
		for _, dir := range []Direction{Ascending, Descending} {
			got := Sort(records, SortState{Field: field, Direction: dir}, rumorKeys)
			assert.ElementsMatch(t, records, got)
		}
	}
	assert.Equal(t, sampleRumors(), records, "input must not be reordered")
}

func TestSort_Empty(t *testing.T) {
	got := Sort[rumor](nil, SortState{Field: "id"}, rumorKeys)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSortState_Toggle(t *testing.T) {
	s := SortState{Field: "rank", Direction: Ascending}

	s = s.Toggle("rank")
	assert.Equal(t, SortState{Field: "rank", Direction: Descending}, s)

	s = s.Toggle("rank")
	assert.Equal(t, SortState{Field: "rank", Direction: Ascending}, s)

	s = s.Toggle("rank").Toggle("streak")
	assert.Equal(t, SortState{Field: "streak", Direction: Ascending}, s)
}

func TestKeys_Normalize(t *testing.T) {
	got := rumorKeys.Normalize(SortState{Field: "nope", Direction: "sideways"}, "id")
	assert.Equal(t, SortState{Field: "id", Direction: Ascending}, got)

	got = rumorKeys.Normalize(SortState{Field: "score", Direction: Descending}, "id")
	assert.Equal(t, SortState{Field: "score", Direction: Descending}, got)

	assert.Equal(t, Descending, ParseDirection("DESC"))
	assert.Equal(t, Ascending, ParseDirection(""))
}
