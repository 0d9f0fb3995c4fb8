package landing

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/docker/go-units"

	"github.com/dmitrymomot/landing/core/cookie"
	"github.com/dmitrymomot/landing/core/logger"
	"github.com/dmitrymomot/landing/core/server"
)

// Checkpoints of the route table. Each one adds routes on top of the previous.
const (
	CheckpointBasics = iota + 1
	CheckpointCookies
	CheckpointBodies
	CheckpointQuery
)

// Error body formats.
const (
	ErrorFormatText = "text"
	ErrorFormatJSON = "json"
)

var (
	ErrInvalidErrorFormat = errors.New("error format must be text or json")
	ErrInvalidCheckpoint = errors.New("checkpoint must be between 1 and 4")
	ErrInvalidBodyLimit  = errors.New("invalid body limit")
	ErrMissingSecret     = errors.New("COOKIE_SECRETS is required in production")
)

// Config is the application configuration, loaded from the environment.
type Config struct {
	Cookie cookie.Config
	Server server.Config

	AppName    string `env:"APP_NAME" envDefault:"landing"`
	Env        string `env:"APP_ENV" envDefault:"development"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	StaticDir  string `env:"STATIC_DIR" envDefault:"static"`
	Checkpoint int    `env:"CHECKPOINT" envDefault:"4"`
	BodyLimit  string `env:"BODY_LIMIT" envDefault:"1MB"`

	// StaticMaxAge is the Cache-Control max-age of files under /secured and the form page.
	StaticMaxAge time.Duration `env:"STATIC_MAX_AGE" envDefault:"1h"`
	ErrorFormat  string        `env:"ERROR_FORMAT" envDefault:"text"`
}

// DefaultConfig mirrors the envDefault tags.
func DefaultConfig() Config {
	return Config{
		Cookie:     cookie.DefaultConfig(),
		Server:     server.DefaultConfig(),
		AppName:    "landing",
		Env:        "development",
		LogLevel:   "info",
		StaticDir:  "static",
		Checkpoint: CheckpointQuery,
		BodyLimit:  "1MB",

		StaticMaxAge: time.Hour,
		ErrorFormat:  ErrorFormatText,
	}
}

// IsProduction reports whether the app runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks values the environment parser cannot.
func (c Config) Validate() error {
	if c.Checkpoint < CheckpointBasics || c.Checkpoint > CheckpointQuery {
		return fmt.Errorf("%w: %d", ErrInvalidCheckpoint, c.Checkpoint)
	}
	if _, err := c.BodyLimitBytes(); err != nil {
		return err
	}
	if c.ErrorFormat != ErrorFormatText && c.ErrorFormat != ErrorFormatJSON {
		return fmt.Errorf("%w: %q", ErrInvalidErrorFormat, c.ErrorFormat)
	}
	if c.IsProduction() && len(c.Cookie.SecretList()) == 0 {
		return ErrMissingSecret
	}
	return nil
}

// BodyLimitBytes parses BodyLimit ("512KB", "1MB", ...) with binary multiples.
func (c Config) BodyLimitBytes() (int64, error) {
	n, err := units.RAMInBytes(c.BodyLimit)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidBodyLimit, c.BodyLimit)
	}
	return n, nil
}

// NewLogger builds the process logger: text at debug level in development,
// JSON in production. LOG_LEVEL overrides the level.
func NewLogger(cfg Config) (*slog.Logger, error) {
	opts := []logger.Option{logger.WithDevelopment(cfg.AppName)}
	if cfg.IsProduction() {
		opts = []logger.Option{logger.WithProduction(cfg.AppName)}
	}

	if cfg.LogLevel != "" {
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithLevel(level))
	}

	return logger.New(opts...), nil
}
