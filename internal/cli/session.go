package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/roach88/creal/internal/config"
	"github.com/roach88/creal/internal/engine"
	"github.com/roach88/creal/internal/store"
)

// engineOptions translates the config into engine options.
func engineOptions(cfg *config.Config) []engine.Option {
	return []engine.Option{
		engine.WithDigits(cfg.Digits),
		engine.WithRadix(cfg.Radix),
		engine.WithTimeout(cfg.Timeout),
	}
}

// openEngine returns an engine for cfg and a function releasing its
// resources. With history enabled the database is created if missing.
func openEngine(ctx context.Context, cfg *config.Config) (*engine.Engine, func(), error) {
	opts := engineOptions(cfg)
	if !cfg.History.Enabled {
		return engine.New(opts...), func() {}, nil
	}

	st, err := openHistory(cfg.History.Path)
	if err != nil {
		return nil, nil, err
	}
	rec, err := store.NewRecorder(ctx, st, nil)
	if err != nil {
		st.Close()
		return nil, nil, &engine.HistoryError{Err: err}
	}

	closer := func() {
		if err := st.Close(); err != nil {
			slog.Error("error closing history database", "error", err)
		}
	}
	return engine.New(append(opts, engine.WithRecorder(rec))...), closer, nil
}

// openHistory opens (creating if needed) the database at path.
func openHistory(path string) (*store.Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &engine.HistoryError{Err: fmt.Errorf("create history directory: %w", err)}
		}
	}
	slog.Debug("opening history", "path", path)
	st, err := store.Open(path)
	if err != nil {
		return nil, &engine.HistoryError{Err: err}
	}
	return st, nil
}
