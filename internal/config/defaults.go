package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel       = "info"
	DefaultJSONLog        = false
	DefaultBaseURL        = "https://bwfbadminton.com"
	DefaultOutputDir      = "output"
	DefaultArtifactDir    = "artifacts"
	DefaultNavTimeout     = 60 * time.Second
	DefaultDwell          = 10 * time.Second
	DefaultCalendarDwell  = 45 * time.Second
	DefaultRateLimitRPS   = 0.2
	DefaultRateLimitBurst = 1
	DefaultHeadless       = true
	DefaultPerPage        = "100"
)

// Environment variable names read by Load. A .env file in the working
// directory is folded in first.
const (
	EnvStoreDSN   = "COURTSCRAPE_DB_URL"
	EnvChromePath = "COURTSCRAPE_CHROME_PATH"
	EnvOutputDir  = "COURTSCRAPE_OUTPUT_DIR"
	EnvBaseURL    = "COURTSCRAPE_BASE_URL"
)
