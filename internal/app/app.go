package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/skeletongen/internal/config"
	"github.com/specialistvlad/skeletongen/internal/ctxlog"
	"github.com/specialistvlad/skeletongen/internal/store"
	"github.com/specialistvlad/skeletongen/internal/store/memory"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	logger *slog.Logger
	model  *config.Model
	store  store.Store
}

// Option customizes an App.
type Option func(*App)

// WithStore replaces the default in-memory project store.
func WithStore(s store.Store) Option {
	return func(a *App) { a.store = s }
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// NewApp builds an App. Logs go to logW. Configuration files named in cfg
// are loaded through loader; without any, the defaults apply.
func NewApp(logW io.Writer, cfg *Config, loader config.Loader, opts ...Option) (*App, error) {
	a := &App{
		logger: NewLogger(cfg.LogLevel, cfg.LogFormat, logW),
		store:  memory.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	ctx := a.Context(context.Background())
	a.logger.Debug("Logger configured successfully.")

	a.model = config.Default()
	if len(cfg.ConfigPaths) > 0 {
		m, err := loader.Load(ctx, cfg.ConfigPaths...)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		a.model = m
		a.logger.Debug("Configuration loaded.", "sources", m.Sources)
	}
	if cfg.ClassName != "" {
		a.model.Class.Name = cfg.ClassName
	}
	if err := a.model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return a, nil
}

// Context returns ctx carrying the app's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Logger returns the app's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Model returns the effective configuration.
func (a *App) Model() *config.Model {
	return a.model
}

// Store returns the project store.
func (a *App) Store() store.Store {
	return a.store
}
