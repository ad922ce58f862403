// Package app holds saucectl's process-wide state: the loaded config,
// the open catalog store, and the default logger, wired together by
// Boot the same way the teacher's own boot sequence does.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/textmode-tools/gosauce/internal/catalog"
	"github.com/textmode-tools/gosauce/internal/config"
	"github.com/textmode-tools/gosauce/internal/logger"
)

var (
	Config  *config.Config
	Catalog *catalog.Store
	Logger  *slog.Logger
)

// Boot loads configPath, sets up logging, and opens the catalog store,
// swapping the package globals only once every step succeeds.
func Boot(configPath string, quiet bool) error {
	if configPath == "" {
		configPath = "config.yml"
	}

	newConfig, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	newLogger := logger.Setup(newConfig, quiet)

	dir := newConfig.Paths.Data
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data path: %w", err)
	}

	newCatalog, err := catalog.New(filepath.Clean(filepath.Join(dir, "catalog.sqlite3")), quiet)
	if err != nil {
		return fmt.Errorf("failed to open catalog store: %w", err)
	}

	Config = newConfig
	Logger = newLogger

	if Catalog != nil {
		if err := Catalog.Close(); err != nil {
			Logger.Error("failed to close existing catalog store", "err", err)
		}
	}
	Catalog = newCatalog

	if !quiet {
		Logger.Info("loaded configuration", "file", configPath)
	}

	return nil
}
