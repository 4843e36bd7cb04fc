package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	SiteURL      string
	TallyTimeout time.Duration

	// Secrets
	IPHashSalt        string
	MultiVotePassword string

	// Email delivery
	SkipEmails    bool
	PostmarkToken string
	FromEmail     string
	FromName      string

	// Optional address notified of every new poll
	AdminEmail string
}

// ParseFlags validates flags, falling back to environment variables.
// A .env file in the working directory is loaded first if present.
func ParseFlags(args []string) (Config, error) {
	godotenv.Load()

	var cfg Config
	var tallyTimeout string

	fs := flag.NewFlagSet("openballot", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.SiteURL, "site-url", "", "Public base URL used in voting links")
	fs.StringVar(&tallyTimeout, "tally-timeout", "", "Time budget per tally algorithm (e.g. 2s)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "IP hashing salt (prefer env)")
	fs.StringVar(&cfg.MultiVotePassword, "multi-vote-pwd", "", "Password unlocking repeat public votes (prefer env)")

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
			cfg.Port = 3333 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.SiteURL == "" {
		cfg.SiteURL = os.Getenv("SITE_URL")
	}
	if cfg.SiteURL == "" {
		cfg.SiteURL = "http://localhost:" + strconv.Itoa(cfg.Port)
	}

	if tallyTimeout == "" {
		tallyTimeout = os.Getenv("TALLY_TIMEOUT")
	}
	if tallyTimeout == "" {
		cfg.TallyTimeout = 2 * time.Second
	} else {
		d, err := time.ParseDuration(tallyTimeout)
		if err != nil || d <= 0 {
			return Config{}, errors.New("invalid tally timeout")
		}
		cfg.TallyTimeout = d
	}

	// Secrets - MUST be provided
	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}
	if cfg.IPHashSalt == "" {
		return Config{}, errors.New("IP_HASH_SALT required")
	}

	if cfg.MultiVotePassword == "" {
		cfg.MultiVotePassword = os.Getenv("ALLOW_MULTIPLE_VOTE_PWD")
	}

	// Email delivery; emails are skipped unless explicitly enabled
	cfg.SkipEmails = os.Getenv("SKIP_EMAILS") != "false"
	cfg.PostmarkToken = os.Getenv("POSTMARK_SERVER_TOKEN")
	cfg.FromEmail = os.Getenv("FROM_EMAIL")
	if cfg.FromEmail == "" {
		cfg.FromEmail = "noreply@openballot.local"
	}
	cfg.FromName = os.Getenv("FROM_NAME")
	if cfg.FromName == "" {
		cfg.FromName = "OpenBallot"
	}
	cfg.AdminEmail = os.Getenv("ADMIN_EMAIL")
	if !cfg.SkipEmails && cfg.PostmarkToken == "" {
		return Config{}, errors.New("POSTMARK_SERVER_TOKEN required unless SKIP_EMAILS=true")
	}

	return cfg, nil
}
