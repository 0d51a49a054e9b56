package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	FixturesPath    string
	SessionSalt     string
	SiteURL         string
	SubmitDelay     time.Duration
	SessionTTL      time.Duration
	ScrollThreshold float64
	VoteRate        float64
	VoteBurst       int
}

// LoadEnvFile loads KEY=value pairs from path into the environment.
// Variables already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("tariff-watch", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.SiteURL, "site", "", "Public site URL used in share text")

	// Fixture source: embedded by default, a YAML file, or a database
	fs.StringVar(&cfg.FixturesPath, "f", "", "Fixture YAML file")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL holding fixtures")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSalt, "session-salt", "", "Session cookie salt (prefer env)")

	// Widget behaviour
	fs.DurationVar(&cfg.SubmitDelay, "submit-delay", 0, "Simulated prediction round-trip")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Idle time before a session is discarded")
	fs.Float64Var(&cfg.ScrollThreshold, "scroll-threshold", 0, "Header height used for active section")
	fs.Float64Var(&cfg.VoteRate, "vote-rate", 0, "Votes and submissions per second per client")
	fs.IntVar(&cfg.VoteBurst, "vote-burst", 0, "Burst size for vote-rate")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.SiteURL == "" {
		cfg.SiteURL = os.Getenv("SITE_URL")
	}
	if cfg.FixturesPath == "" {
		cfg.FixturesPath = os.Getenv("FIXTURES_PATH")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}

	if err := durationEnv(&cfg.SubmitDelay, "SUBMIT_DELAY", 1500*time.Millisecond); err != nil {
		return Config{}, err
	}
	if err := durationEnv(&cfg.SessionTTL, "SESSION_TTL", 30*time.Minute); err != nil {
		return Config{}, err
	}
	if err := floatEnv(&cfg.ScrollThreshold, "SCROLL_THRESHOLD", 100); err != nil {
		return Config{}, err
	}
	if err := floatEnv(&cfg.VoteRate, "VOTE_RATE", 2); err != nil {
		return Config{}, err
	}
	if cfg.VoteBurst == 0 {
		if s := os.Getenv("VOTE_BURST"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid VOTE_BURST env variable")
			}
			cfg.VoteBurst = n
		} else {
			cfg.VoteBurst = 5
		}
	}

	// Secrets - MUST be provided
	if cfg.SessionSalt == "" {
		cfg.SessionSalt = os.Getenv("SESSION_SALT")
	}
	if cfg.SessionSalt == "" {
		return Config{}, errors.New("SESSION_SALT required")
	}

	return cfg, nil
}

func durationEnv(dst *time.Duration, key string, def time.Duration) error {
	if *dst != 0 {
		return nil
	}
	s := os.Getenv(key)
	if s == "" {
		*dst = def
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid %s env variable: %w", key, err)
	}
	*dst = d
	return nil
}

func floatEnv(dst *float64, key string, def float64) error {
	if *dst != 0 {
		return nil
	}
	s := os.Getenv(key)
	if s == "" {
		*dst = def
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid %s env variable: %w", key, err)
	}
	*dst = f
	return nil
}
