package main

import (
	"context"
	"fmt"

	"github.com/chk2chk/chk2chk/internal/config"
	"github.com/chk2chk/chk2chk/internal/service"
	"github.com/chk2chk/chk2chk/internal/storage"
	"github.com/spf13/viper"
)

// initStorage opens the local database with proper path expansion and runs
// pending migrations.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}
