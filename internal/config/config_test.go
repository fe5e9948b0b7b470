package config

import (
	"os"
	"testing"

	"github.com/spf13/cobra"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv(EnvStoreDSN)
	os.Unsetenv(EnvOutputDir)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if !cfg.Headless {
		t.Error("expected headless by default")
	}
	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, DefaultOutputDir)
	}
	if cfg.RateLimitRPS != DefaultRateLimitRPS {
		t.Errorf("RateLimitRPS = %v, want %v", cfg.RateLimitRPS, DefaultRateLimitRPS)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvStoreDSN, "libsql://example.turso.io")
	t.Setenv(EnvOutputDir, "scraped")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StoreDSN != "libsql://example.turso.io" {
		t.Errorf("StoreDSN = %q", cfg.StoreDSN)
	}
	if cfg.OutputDir != "scraped" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
}

func TestLoad_FlagLogLevels(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"quiet", []string{"--quiet"}, "error"},
		{"verbose", []string{"--verbose"}, "debug"},
		{"verbose wins over quiet", []string{"--quiet", "--verbose"}, "debug"},
	}
	for _, tc := range cases {
		cmd := &cobra.Command{Use: "test"}
		RegisterFlags(cmd)
		if err := cmd.ParseFlags(tc.args); err != nil {
			t.Fatalf("%s: parse flags: %v", tc.name, err)
		}
		cfg, err := Load(cmd)
		if err != nil {
			t.Fatalf("%s: Load: %v", tc.name, err)
		}
		if cfg.LogLevel != tc.want {
			t.Errorf("%s: LogLevel = %q, want %q", tc.name, cfg.LogLevel, tc.want)
		}
	}
}

func TestValidate_Rejects(t *testing.T) {
	good := func() *Config {
		return &Config{
			NavTimeout:     DefaultNavTimeout,
			Dwell:          DefaultDwell,
			CalendarDwell:  DefaultCalendarDwell,
			RateLimitRPS:   DefaultRateLimitRPS,
			RateLimitBurst: DefaultRateLimitBurst,
			OutputDir:      DefaultOutputDir,
		}
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero timeout", func(c *Config) { c.NavTimeout = 0 }},
		{"negative dwell", func(c *Config) { c.Dwell = -1 }},
		{"zero rps", func(c *Config) { c.RateLimitRPS = 0 }},
		{"zero burst", func(c *Config) { c.RateLimitBurst = 0 }},
		{"empty output", func(c *Config) { c.OutputDir = "" }},
	}
	for _, tc := range cases {
		c := good()
		tc.mutate(c)
		if err := validate(c); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}
