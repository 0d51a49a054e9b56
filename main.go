package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/tariff-watch/cliparse"
	"github.com/danielhkuo/tariff-watch/db"
	"github.com/danielhkuo/tariff-watch/fixtures"
	"github.com/danielhkuo/tariff-watch/metrics"
	"github.com/danielhkuo/tariff-watch/middleware"
	"github.com/danielhkuo/tariff-watch/router"
	"github.com/danielhkuo/tariff-watch/session"
	"github.com/danielhkuo/tariff-watch/submission"
)

func main() {
	if err := cliparse.LoadEnvFile(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	set, err := loadFixtures(ctx, cfg)
	if err != nil {
		slog.Error("fixture loading failed", "error", err)
		os.Exit(1)
	}
	data := fixtures.NewStore(set)
	slog.Info("Fixtures ready",
		"timeline", len(set.Timeline),
		"market_events", len(set.MarketEvents),
		"rumors", len(set.UpcomingRumors),
		"vote_rumors", len(set.VoteRumors),
	)

	reg := metrics.New()

	seed := session.SeedFromFixtures(data)
	seed.ScrollThreshold = cfg.ScrollThreshold
	seed.SubmitDelay = cfg.SubmitDelay
	seed.OnSubmitted = func(sessionID string, r submission.Receipt) {
		reg.PredictionsCompleted.Inc()
		slog.Info("prediction submitted", "session", sessionID, "prediction_id", r.ID, "points", r.PotentialPoints)
	}
	store := session.NewStore(seed, cfg.SessionTTL, reg)
	limiter := middleware.NewRateLimiter(cfg.VoteRate, cfg.VoteBurst, cfg.SessionSalt, reg)

	// Create router
	mux := router.NewRouter(router.Deps{
		Config:   cfg,
		Fixtures: data,
		Sessions: store,
		Limiter:  limiter,
		Metrics:  reg,
	})

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return store.Run(gctx, time.Minute)
	})
	g.Go(func() error {
		return limiter.Run(gctx, 5*time.Minute)
	})
	g.Go(func() error {
		// Wait for Ctrl-C or a failed sibling
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server closed")
}

// loadFixtures picks the fixture source: a database when -d is set, a
// YAML file when -f is set, the embedded defaults otherwise. A database is
// seeded from the defaults on first use.
func loadFixtures(ctx context.Context, cfg cliparse.Config) (*fixtures.Set, error) {
	if cfg.DatabaseURL == "" {
		if cfg.FixturesPath != "" {
			return fixtures.LoadFile(cfg.FixturesPath)
		}
		return fixtures.DefaultSet()
	}

	dialect, err := db.ParseDialect(cfg.DatabaseType)
	if err != nil {
		return nil, err
	}
	conn, err := db.Open(ctx, dialect, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := db.CreateSchema(ctx, conn); err != nil {
		return nil, err
	}
	slog.Info("Database schema ready", "dialect", dialect)

	seed, err := fixtures.DefaultSet()
	if cfg.FixturesPath != "" {
		seed, err = fixtures.LoadFile(cfg.FixturesPath)
	}
	if err != nil {
		return nil, err
	}
	if err := db.Seed(ctx, conn, dialect, seed); err != nil {
		return nil, err
	}

	set, err := db.LoadFixtures(ctx, conn)
	if err != nil {
		return nil, err
	}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("database fixtures: %w", err)
	}
	return set, nil
}
