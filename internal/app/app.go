// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shuttlestats/courtscrape/internal/browser"
	"github.com/shuttlestats/courtscrape/internal/config"
	"github.com/shuttlestats/courtscrape/internal/ratelimit"
	"github.com/shuttlestats/courtscrape/internal/secrets"
	"github.com/shuttlestats/courtscrape/internal/sink"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config      *config.Config
	Logger      *zerolog.Logger
	RateLimiter ratelimit.RateLimiter

	sessMu  sync.Mutex
	session *browser.Session

	storeMu sync.Mutex
	store   *sink.Store

	startTime time.Time
}

// New creates and initializes a new Application.
//
// The browser session and the store connection are both created lazily:
// commands that only persist never launch Chrome, and commands that only
// scrape never dial the database.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	// Initialize logger based on config
	logLevel := zerolog.InfoLevel
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		logWriter = os.Stderr
	} else {
		logWriter = zerolog.NewConsoleWriter()
	}

	logger := log.Output(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	rateLimiter := ratelimit.NewDomainLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	logger.Debug().
		Float64("rps", cfg.RateLimitRPS).
		Int("burst", cfg.RateLimitBurst).
		Msg("Rate limiter initialized")

	app := &Application{
		Config:      cfg,
		Logger:      &logger,
		RateLimiter: rateLimiter,
		startTime:   time.Now(),
	}

	logger.Debug().Msg("Application initialized")
	return app, nil
}

// EnsureSession lazily launches the browser session on first use. Commands
// reuse the same tab for every page so cookies and fingerprint persist
// across navigations.
func (a *Application) EnsureSession(ctx context.Context) (*browser.Session, error) {
	if a == nil {
		return nil, fmt.Errorf("application is nil")
	}

	a.sessMu.Lock()
	defer a.sessMu.Unlock()

	if a.session != nil {
		return a.session, nil
	}

	a.Logger.Debug().Msg("Launching browser session on demand")
	sess, err := browser.NewSession(ctx, browser.Options{
		ChromePath:  a.Config.ChromePath,
		Headless:    a.Config.Headless,
		ArtifactDir: a.Config.ArtifactDir,
		Limiter:     a.RateLimiter,
		NavTimeout:  a.Config.NavTimeout,
	})
	if err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to launch browser session")
		return nil, err
	}

	a.session = sess
	a.Logger.Info().Str("user_agent", sess.Fingerprint().UserAgent).Msg("Browser session ready")
	return sess, nil
}

// EnsureStore lazily opens the store connection on first use, resolving
// the auth token from the environment, the OS keyring, or the token file.
func (a *Application) EnsureStore(ctx context.Context) (*sink.Store, error) {
	if a == nil {
		return nil, fmt.Errorf("application is nil")
	}

	a.storeMu.Lock()
	defer a.storeMu.Unlock()

	if a.store != nil {
		return a.store, nil
	}

	dsn := a.Config.StoreDSN
	if dsn == "" {
		return nil, fmt.Errorf("no store DSN configured (set %s or --db-url)", config.EnvStoreDSN)
	}

	token, err := secrets.Token()
	if err != nil {
		a.Logger.Debug().Err(err).Msg("No store token available, connecting without auth")
		token = ""
	}

	store, err := sink.Open(ctx, dsn, token)
	if err != nil {
		return nil, err
	}

	a.store = store
	return store, nil
}

// Close gracefully shuts down the application and all its resources.
//
// Shutdown order is browser first, then store, so a hung Chrome cannot
// keep a database handle open past process exit. Errors during shutdown
// are logged but do not prevent other shutdown steps.
func (a *Application) Close(ctx context.Context) error {
	a.Logger.Debug().Msg("Shutting down application")

	a.sessMu.Lock()
	if a.session != nil {
		a.session.Close()
		a.session = nil
	}
	a.sessMu.Unlock()

	a.storeMu.Lock()
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Error closing store")
		}
		a.store = nil
	}
	a.storeMu.Unlock()

	uptime := time.Since(a.startTime)
	a.Logger.Debug().Dur("uptime", uptime).Msg("Shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
