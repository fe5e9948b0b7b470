package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Target site
	BaseURL string

	// Browser
	Headless   bool
	ChromePath string
	NavTimeout time.Duration

	// Pacing
	Dwell          time.Duration
	CalendarDwell  time.Duration
	RateLimitRPS   float64
	RateLimitBurst int

	// Output
	OutputDir   string
	ArtifactDir string

	// Store
	StoreDSN string
}

// Load builds a Config by combining defaults, a .env file if present,
// environment variables, and CLI flags. Caller should pass the command so
// flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:       DefaultLogLevel,
		JSONLog:        DefaultJSONLog,
		BaseURL:        DefaultBaseURL,
		Headless:       DefaultHeadless,
		NavTimeout:     DefaultNavTimeout,
		Dwell:          DefaultDwell,
		CalendarDwell:  DefaultCalendarDwell,
		RateLimitRPS:   DefaultRateLimitRPS,
		RateLimitBurst: DefaultRateLimitBurst,
		OutputDir:      DefaultOutputDir,
		ArtifactDir:    DefaultArtifactDir,
	}

	// Override from environment variables
	if v := os.Getenv(EnvStoreDSN); v != "" {
		cfg.StoreDSN = v
	}
	if v := os.Getenv(EnvChromePath); v != "" {
		cfg.ChromePath = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}

	// Read CLI flags if provided
	if cmd != nil {
		if f := cmd.Flags().Lookup("chrome-path"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.ChromePath = s
			}
		}
		if f := cmd.Flags().Lookup("output"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.OutputDir = s
			}
		}
		if f := cmd.Flags().Lookup("db-url"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.StoreDSN = s
			}
		}
		if f := cmd.Flags().Lookup("timeout"); f != nil {
			if s := f.Value.String(); s != "" {
				if d, err := time.ParseDuration(s); err == nil {
					cfg.NavTimeout = d
				}
			}
		}
		if f := cmd.Flags().Lookup("dwell"); f != nil {
			if s := f.Value.String(); s != "" {
				if d, err := time.ParseDuration(s); err == nil {
					cfg.Dwell = d
				}
			}
		}
		if f := cmd.Flags().Lookup("headed"); f != nil {
			if f.Value.String() == "true" {
				cfg.Headless = false
			}
		}
		if f := cmd.Flags().Lookup("json"); f != nil {
			if f.Value.String() == "true" {
				cfg.JSONLog = true
			}
		}
		if f := cmd.Flags().Lookup("quiet"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "error"
			}
		}
		// Verbose wins when both are set.
		if f := cmd.Flags().Lookup("verbose"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "debug"
			}
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
