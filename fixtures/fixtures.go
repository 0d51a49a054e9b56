// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fixtures

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/tariff-watch/models"
)

//go:embed data.yaml
var defaultData []byte

var ErrDuplicateID = errors.New("duplicate fixture id")

// Set is the raw content of a fixture file
type Set struct {
	Sections       []models.Section          `yaml:"sections"`
	Timeline       []models.TimelineEntry    `yaml:"timeline"`
	MarketEvents   []models.MarketEvent      `yaml:"market_events"`
	UpcomingRumors []models.UpcomingRumor    `yaml:"upcoming_rumors"`
	RumoredTariffs []models.RumoredTariff    `yaml:"rumored_tariffs"`
	VoteRumors     []models.VoteRumor        `yaml:"vote_rumors"`
	Leaderboard    []models.LeaderboardEntry `yaml:"leaderboard"`
}

// Validate checks that ids are unique within each record kind
func (s *Set) Validate() error {
	checks := []struct {
		kind string
		ids  []int
	}{
		{"timeline", idsOf(s.Timeline, func(e models.TimelineEntry) int { return e.ID })},
		{"market_events", idsOf(s.MarketEvents, func(e models.MarketEvent) int { return e.ID })},
		{"upcoming_rumors", idsOf(s.UpcomingRumors, func(e models.UpcomingRumor) int { return e.ID })},
		{"rumored_tariffs", idsOf(s.RumoredTariffs, func(e models.RumoredTariff) int { return e.ID })},
		{"vote_rumors", idsOf(s.VoteRumors, func(e models.VoteRumor) int { return e.ID })},
		{"leaderboard", idsOf(s.Leaderboard, func(e models.LeaderboardEntry) int { return e.ID })},
	}
	for _, c := range checks {
		seen := make(map[int]bool, len(c.ids))
		for _, id := range c.ids {
			if seen[id] {
				return fmt.Errorf("%w: %s %d", ErrDuplicateID, c.kind, id)
			}
			seen[id] = true
		}
	}

	sections := make(map[string]bool, len(s.Sections))
	for _, sec := range s.Sections {
		if sections[sec.ID] {
			return fmt.Errorf("%w: section %q", ErrDuplicateID, sec.ID)
		}
		sections[sec.ID] = true
	}
	return nil
}

func idsOf[T any](records []T, id func(T) int) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = id(r)
	}
	return out
}

// Decode reads a YAML fixture set
func Decode(r io.Reader) (*Set, error) {
	var set Set
	if err := yaml.NewDecoder(r).Decode(&set); err != nil {
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &set, nil
}

// DefaultSet returns the fixtures bundled with the binary
func DefaultSet() (*Set, error) {
	return Decode(bytes.NewReader(defaultData))
}

// LoadFile reads fixtures from a YAML file
func LoadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixtures: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Store is the read-only fixture source. Every accessor returns a copy,
// so callers may reorder results without touching the store.
type Store struct {
	set Set
}

func NewStore(set *Set) *Store {
	return &Store{set: *set}
}

func (s *Store) Sections() []models.Section {
	return slices.Clone(s.set.Sections)
}

func (s *Store) Timeline() []models.TimelineEntry {
	return slices.Clone(s.set.Timeline)
}

func (s *Store) MarketEvents() []models.MarketEvent {
	return slices.Clone(s.set.MarketEvents)
}

func (s *Store) UpcomingRumors() []models.UpcomingRumor {
	return slices.Clone(s.set.UpcomingRumors)
}

func (s *Store) RumoredTariffs() []models.RumoredTariff {
	return slices.Clone(s.set.RumoredTariffs)
}

func (s *Store) VoteRumors() []models.VoteRumor {
	return slices.Clone(s.set.VoteRumors)
}

func (s *Store) Leaderboard() []models.LeaderboardEntry {
	return slices.Clone(s.set.Leaderboard)
}

// TimelineEntry looks up a timeline record by id
func (s *Store) TimelineEntry(id int) (models.TimelineEntry, bool) {
	return find(s.set.Timeline, func(e models.TimelineEntry) bool { return e.ID == id })
}

func (s *Store) UpcomingRumor(id int) (models.UpcomingRumor, bool) {
	return find(s.set.UpcomingRumors, func(e models.UpcomingRumor) bool { return e.ID == id })
}

func (s *Store) VoteRumor(id int) (models.VoteRumor, bool) {
	return find(s.set.VoteRumors, func(e models.VoteRumor) bool { return e.ID == id })
}

func find[T any](records []T, match func(T) bool) (T, bool) {
	i := slices.IndexFunc(records, match)
	if i < 0 {
		var zero T
		return zero, false
	}
	return records[i], true
}
