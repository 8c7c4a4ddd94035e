package app

import (
	"context"
	"os"
	"path/filepath"

	"calcquest/internal/catalog"
	"calcquest/internal/grading"
	"calcquest/internal/state"
	"calcquest/internal/telemetry"

	"github.com/google/uuid"
)

type App struct {
	cfg Config

	logger  *telemetry.Logger
	closeKV func() error

	Catalog *catalog.Catalog
	Store   *state.ProgressStore
	Session *Session
}

// New opens storage, loads the catalog and the saved record (if any).
func New(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}

	logger, err := telemetry.NewLogger(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	kv, closeKV, err := openStorage(cfg)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	sessionID := uuid.NewString()
	logger = logger.With(map[string]any{"session": sessionID})
	store := state.NewProgressStore(kv, state.SystemClock{}, logger)
	loaded := store.LoadOrInit()
	logger.Info("app.start", map[string]any{"storage": cfg.Storage, "resumed": loaded})

	return &App{
		cfg:     cfg,
		logger:  logger,
		closeKV: closeKV,
		Catalog: cat,
		Store:   store,
		Session: NewSession(sessionID, store, grading.NewChecker(cfg.AnswerTolerance), cat, logger),
	}, nil
}

// Close releases storage and the log file. It does not write progress.
func (a *App) Close() error {
	var err error
	if a.closeKV != nil {
		err = a.closeKV()
	}
	if lerr := a.logger.Close(); err == nil {
		err = lerr
	}
	return err
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Load()
	}
	return catalog.LoadFile(path)
}

func openStorage(cfg Config) (state.KV, func() error, error) {
	if cfg.Storage == "memory" {
		return state.NewMemoryKV(), nil, nil
	}
	kv, err := state.NewSQLite(filepath.Join(cfg.DataDir, "progress.db"))
	if err != nil {
		return nil, nil, err
	}
	if err := kv.EnsureSchema(context.Background()); err != nil {
		_ = kv.Close()
		return nil, nil, err
	}
	return kv, kv.Close, nil
}

func (a *App) Config() Config { return a.cfg }
