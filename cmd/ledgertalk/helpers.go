package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ledgertalk/ledgertalk/internal/common"
	"github.com/ledgertalk/ledgertalk/internal/interpreter"
	"github.com/ledgertalk/ledgertalk/internal/service"
	"github.com/ledgertalk/ledgertalk/internal/storage"
)

// initStorage opens the database and brings the schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "ledgertalk", "ledgertalk.db")
	}
	dbPath = expandPath(dbPath)

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

// initInterpreter builds the LLM-backed interpreter from configuration.
func initInterpreter(store service.Storage) (service.Interpreter, error) {
	cfg := interpreter.Config{
		Provider:    viper.GetString("interpreter.provider"),
		APIKey:      viper.GetString("interpreter.api_key"),
		Model:       viper.GetString("interpreter.model"),
		Temperature: viper.GetFloat64("interpreter.temperature"),
		MaxTokens:   viper.GetInt("interpreter.max_tokens"),
	}
	if cfg.Provider == "" {
		cfg.Provider = "anthropic"
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: interpreter.api_key is not set (or LEDGERTALK_INTERPRETER_API_KEY)", common.ErrMissingConfig)
	}

	client, err := interpreter.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return interpreter.New(client, store), nil
}

// expandPath resolves ~ and environment variables in a filesystem path.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}
