// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/danielhkuo/tariff-watch/models"
	"github.com/danielhkuo/tariff-watch/query"
	"github.com/danielhkuo/tariff-watch/tally"
)

var (
	ErrEmptyEmail        = errors.New("email is required")
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrAlreadySubscribed = errors.New("already subscribed")
)

// PageStep is how far the market tracker pager moves per click
const PageStep = 400

// TimelineState is the tariff timeline widget: a country chip filter and
// at most one expanded card
type TimelineState struct {
	Country  *string
	Expanded *int
}

// Toggle expands card id, or collapses it when it is already expanded
func (t *TimelineState) Toggle(id int) {
	if t.Expanded != nil && *t.Expanded == id {
		t.Expanded = nil
		return
	}
	t.Expanded = &id
}

// MarketState is the market impact tracker: which impact column is shown,
// an optional category filter, the sort, and the horizontal pager offset
type MarketState struct {
	View     string
	Category *string
	Sort     query.SortState
	Offset   int
}

// Page moves the pager left or right; it never goes below zero
func (m *MarketState) Page(direction string) {
	switch direction {
	case "left":
		m.Offset = max(0, m.Offset-PageStep)
	case "right":
		m.Offset += PageStep
	}
}

// LeaderboardState is the leaderboard search box, column sort and tab
type LeaderboardState struct {
	Search string
	Sort   query.SortState
	Period string
}

// PeriodDescription is the caption shown under the leaderboard tabs
func PeriodDescription(period string) string {
	switch period {
	case models.PeriodWeekly:
		return "This week's top performers"
	case models.PeriodMonthly:
		return "This month's prediction champions"
	default:
		return "All-time leaderboard based on prediction accuracy"
	}
}

// ValidPeriod reports whether p is one of the leaderboard tabs
func ValidPeriod(p string) bool {
	switch p {
	case models.PeriodAllTime, models.PeriodWeekly, models.PeriodMonthly:
		return true
	}
	return false
}

// VotingState is the voting zone: the tally board snapshot and which
// rumor tab is open
type VotingState struct {
	Board     tally.Board
	ActiveTab int
}

// NewsletterState is the footer signup form. Nothing is sent anywhere;
// the subscription lives as long as the session.
type NewsletterState struct {
	Email      string
	Subscribed bool
}

// Subscribe records email and marks the form subscribed. A rejected
// address leaves the state unchanged.
func (n *NewsletterState) Subscribe(email string) error {
	if n.Subscribed {
		return ErrAlreadySubscribed
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmptyEmail
	}
	// bare addresses only, no display names
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	n.Email = email
	n.Subscribed = true
	return nil
}
