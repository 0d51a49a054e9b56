// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/danielhkuo/tariff-watch/fixtures"
	"github.com/danielhkuo/tariff-watch/models"
)

const dateLayout = "2006-01-02"

// Seed inserts a fixture set. Rows whose id already exists are left
// alone, so seeding an already populated database is a no-op.
func Seed(ctx context.Context, conn *sql.DB, d Dialect, set *fixtures.Set) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed: %w", err)
	}
	defer tx.Rollback()

	exec := func(query string, args ...any) error {
		_, err := tx.ExecContext(ctx, d.rebind(query), args...)
		return err
	}

	for i, s := range set.Sections {
		if err := exec(`
			INSERT INTO nav_section (id, position, label, top_offset)
			VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING
		`, s.ID, i, s.Label, s.Top); err != nil {
			return fmt.Errorf("failed to seed section %q: %w", s.ID, err)
		}
	}

	for i, e := range set.Timeline {
		countries, err := json.Marshal(e.Countries)
		if err != nil {
			return err
		}
		if err := exec(`
			INSERT INTO timeline_entry (id, position, event_date, countries, details, impact, source, negative, additional_info)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) ON CONFLICT (id) DO NOTHING
		`, e.ID, i, e.Date.Format(dateLayout), string(countries), e.Details, e.Impact, e.Source, e.Negative, e.AdditionalInfo); err != nil {
			return fmt.Errorf("failed to seed timeline entry %d: %w", e.ID, err)
		}
	}

	for i, e := range set.MarketEvents {
		chart, err := json.Marshal(e.ChartData)
		if err != nil {
			return err
		}
		if err := exec(`
			INSERT INTO market_event (id, position, event_date, country, category, description, crypto_impact, stock_impact, news_source, chart_data)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) ON CONFLICT (id) DO NOTHING
		`, e.ID, i, e.Date.Format(dateLayout), e.Country, e.Category, e.Description, e.CryptoImpact, e.StockImpact, e.NewsSource, string(chart)); err != nil {
			return fmt.Errorf("failed to seed market event %d: %w", e.ID, err)
		}
	}

	for i, r := range set.UpcomingRumors {
		targets, err := json.Marshal(r.Targets)
		if err != nil {
			return err
		}
		if err := exec(`
			INSERT INTO upcoming_rumor (id, position, display_date, targets, rumor, source, confidence, category, impact)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) ON CONFLICT (id) DO NOTHING
		`, r.ID, i, r.Date, string(targets), r.Rumor, r.Source, r.Confidence, r.Category, r.Impact); err != nil {
			return fmt.Errorf("failed to seed upcoming rumor %d: %w", r.ID, err)
		}
	}

	for i, r := range set.RumoredTariffs {
		if err := exec(`
			INSERT INTO rumored_tariff (id, position, expected_date, country, sector, confidence, trend_score, news_origin, impact, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) ON CONFLICT (id) DO NOTHING
		`, r.ID, i, r.ExpectedDate, r.Country, r.Sector, r.Confidence, r.TrendScore, r.NewsOrigin, r.Impact, r.Description); err != nil {
			return fmt.Errorf("failed to seed rumored tariff %d: %w", r.ID, err)
		}
	}

	for i, r := range set.VoteRumors {
		if err := exec(`
			INSERT INTO vote_rumor (id, position, title, description, expected_date, yes_votes, no_votes, source, category)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) ON CONFLICT (id) DO NOTHING
		`, r.ID, i, r.Title, r.Description, r.ExpectedDate, r.YesVotes, r.NoVotes, r.Source, r.Category); err != nil {
			return fmt.Errorf("failed to seed vote rumor %d: %w", r.ID, err)
		}
	}

	for i, e := range set.Leaderboard {
		if err := exec(`
			INSERT INTO leaderboard_entry (id, position, address, correct_predictions, total_predictions, accuracy, board_rank, last_prediction, streak, is_team_member)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) ON CONFLICT (id) DO NOTHING
		`, e.ID, i, e.Address, e.CorrectPredictions, e.TotalPredictions, e.Accuracy, e.Rank, e.LastPrediction, e.Streak, e.IsTeamMember); err != nil {
			return fmt.Errorf("failed to seed leaderboard entry %d: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

// LoadFixtures reads every fixture table in seed order
func LoadFixtures(ctx context.Context, conn *sql.DB) (*fixtures.Set, error) {
	var set fixtures.Set
	var err error

	if set.Sections, err = loadSections(ctx, conn); err != nil {
		return nil, err
	}
	if set.Timeline, err = loadTimeline(ctx, conn); err != nil {
		return nil, err
	}
	if set.MarketEvents, err = loadMarketEvents(ctx, conn); err != nil {
		return nil, err
	}
	if set.UpcomingRumors, err = loadUpcomingRumors(ctx, conn); err != nil {
		return nil, err
	}
	if set.RumoredTariffs, err = loadRumoredTariffs(ctx, conn); err != nil {
		return nil, err
	}
	if set.VoteRumors, err = loadVoteRumors(ctx, conn); err != nil {
		return nil, err
	}
	if set.Leaderboard, err = loadLeaderboard(ctx, conn); err != nil {
		return nil, err
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &set, nil
}

// queryAll runs query and scans each row with scan
func queryAll[T any](ctx context.Context, conn *sql.DB, table, query string, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}
	return out, nil
}

func loadSections(ctx context.Context, conn *sql.DB) ([]models.Section, error) {
	return queryAll(ctx, conn, "nav_section", `
		SELECT id, label, top_offset FROM nav_section ORDER BY position
	`, func(rows *sql.Rows) (models.Section, error) {
		var s models.Section
		err := rows.Scan(&s.ID, &s.Label, &s.Top)
		return s, err
	})
}

func loadTimeline(ctx context.Context, conn *sql.DB) ([]models.TimelineEntry, error) {
	return queryAll(ctx, conn, "timeline_entry", `
		SELECT id, event_date, countries, details, impact, source, negative, additional_info
		FROM timeline_entry ORDER BY position
	`, func(rows *sql.Rows) (models.TimelineEntry, error) {
		var e models.TimelineEntry
		var date, countries string
		if err := rows.Scan(&e.ID, &date, &countries, &e.Details, &e.Impact, &e.Source, &e.Negative, &e.AdditionalInfo); err != nil {
			return e, err
		}
		var err error
		if e.Date, err = time.Parse(dateLayout, date); err != nil {
			return e, err
		}
		return e, json.Unmarshal([]byte(countries), &e.Countries)
	})
}

func loadMarketEvents(ctx context.Context, conn *sql.DB) ([]models.MarketEvent, error) {
	return queryAll(ctx, conn, "market_event", `
		SELECT id, event_date, country, category, description, crypto_impact, stock_impact, news_source, chart_data
		FROM market_event ORDER BY position
	`, func(rows *sql.Rows) (models.MarketEvent, error) {
		var e models.MarketEvent
		var date, chart string
		if err := rows.Scan(&e.ID, &date, &e.Country, &e.Category, &e.Description, &e.CryptoImpact, &e.StockImpact, &e.NewsSource, &chart); err != nil {
			return e, err
		}
		var err error
		if e.Date, err = time.Parse(dateLayout, date); err != nil {
			return e, err
		}
		return e, json.Unmarshal([]byte(chart), &e.ChartData)
	})
}

func loadUpcomingRumors(ctx context.Context, conn *sql.DB) ([]models.UpcomingRumor, error) {
	return queryAll(ctx, conn, "upcoming_rumor", `
		SELECT id, display_date, targets, rumor, source, confidence, category, impact
		FROM upcoming_rumor ORDER BY position
	`, func(rows *sql.Rows) (models.UpcomingRumor, error) {
		var r models.UpcomingRumor
		var targets string
		if err := rows.Scan(&r.ID, &r.Date, &targets, &r.Rumor, &r.Source, &r.Confidence, &r.Category, &r.Impact); err != nil {
			return r, err
		}
		return r, json.Unmarshal([]byte(targets), &r.Targets)
	})
}

func loadRumoredTariffs(ctx context.Context, conn *sql.DB) ([]models.RumoredTariff, error) {
	return queryAll(ctx, conn, "rumored_tariff", `
		SELECT id, expected_date, country, sector, confidence, trend_score, news_origin, impact, description
		FROM rumored_tariff ORDER BY position
	`, func(rows *sql.Rows) (models.RumoredTariff, error) {
		var r models.RumoredTariff
		err := rows.Scan(&r.ID, &r.ExpectedDate, &r.Country, &r.Sector, &r.Confidence, &r.TrendScore, &r.NewsOrigin, &r.Impact, &r.Description)
		return r, err
	})
}

func loadVoteRumors(ctx context.Context, conn *sql.DB) ([]models.VoteRumor, error) {
	return queryAll(ctx, conn, "vote_rumor", `
		SELECT id, title, description, expected_date, yes_votes, no_votes, source, category
		FROM vote_rumor ORDER BY position
	`, func(rows *sql.Rows) (models.VoteRumor, error) {
		var r models.VoteRumor
		err := rows.Scan(&r.ID, &r.Title, &r.Description, &r.ExpectedDate, &r.YesVotes, &r.NoVotes, &r.Source, &r.Category)
		return r, err
	})
}

func loadLeaderboard(ctx context.Context, conn *sql.DB) ([]models.LeaderboardEntry, error) {
	return queryAll(ctx, conn, "leaderboard_entry", `
		SELECT id, address, correct_predictions, total_predictions, accuracy, board_rank, last_prediction, streak, is_team_member
		FROM leaderboard_entry ORDER BY position
	`, func(rows *sql.Rows) (models.LeaderboardEntry, error) {
		var e models.LeaderboardEntry
		err := rows.Scan(&e.ID, &e.Address, &e.CorrectPredictions, &e.TotalPredictions, &e.Accuracy, &e.Rank, &e.LastPrediction, &e.Streak, &e.IsTeamMember)
		return e, err
	})
}
