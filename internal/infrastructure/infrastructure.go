// Package infrastructure assembles the systems every module depends on:
// lifecycle coordination, logging, the database pool, and blob storage.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/vendor-products/internal/config"
	"github.com/JaimeStill/vendor-products/migrations"
	"github.com/JaimeStill/vendor-products/pkg/database"
	"github.com/JaimeStill/vendor-products/pkg/lifecycle"
	"github.com/JaimeStill/vendor-products/pkg/logging"
	"github.com/JaimeStill/vendor-products/pkg/storage"
)

// Infrastructure holds the core systems shared by all modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
}

// New creates the infrastructure from configuration without starting it.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	db, err := database.New(&cfg.Database, migrations.FS, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
	}, nil
}

// Start registers every system with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
