package frontdesk

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds frontdesk command configuration. Flags override the environment.
type Config struct {
	APIURL          string        `env:"FRONTDESK_API_URL"          envDefault:"http://localhost:8080"`
	HousekeepingURL string        `env:"FRONTDESK_HOUSEKEEPING_URL" envDefault:"http://localhost:8081"`
	Username        string        `env:"OPERATOR_USERNAME"`
	Password        string        `env:"OPERATOR_PASSWORD"`
	Timeout         time.Duration `env:"FRONTDESK_TIMEOUT"          envDefault:"10s"`
}

// ParseConfig parses environment and flags into Config and returns the
// remaining command arguments.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, []string, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, nil, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.APIURL, "api", cfg.APIURL, "reservations service base URL")
	fs.StringVar(&cfg.HousekeepingURL, "housekeeping", cfg.HousekeepingURL, "housekeeping service base URL")
	fs.StringVar(&cfg.Username, "user", cfg.Username, "operator username")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "request timeout")
	if err := fs.Parse(args); err != nil {
		return Config{}, nil, err
	}

	if cfg.Timeout <= 0 {
		return Config{}, nil, fmt.Errorf("timeout must be positive, got %v", cfg.Timeout)
	}
	return cfg, fs.Args(), nil
}
