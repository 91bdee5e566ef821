// Package config reads the settings shared by the terminal client and the
// server from the environment and an optional .env file.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"tetrimino/store"
	"tetrimino/tetris"
)

const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

type Config struct {
	Store      string        // TETRIS_STORE: file, sqlite or memory.
	SaveFile   string        // TETRIS_SAVE_FILE
	SQLitePath string        // TETRIS_SQLITE_PATH
	Slot       string        // TETRIS_SLOT
	Tick       time.Duration // TETRIS_TICK
	LogLevel   slog.Level    // TETRIS_LOG_LEVEL
	LogFile    string        // TETRIS_LOG_FILE
	Addr       string        // TETRIS_ADDR: server to play on, empty plays locally.
	Listen     string        // TETRIS_LISTEN
}

// Load reads the given env files, or .env when none is given, and then the
// environment. Variables already set in the environment win over the files.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(files...); err != nil {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}

	c := &Config{
		Store:      getEnv("TETRIS_STORE", StoreFile),
		SaveFile:   getEnv("TETRIS_SAVE_FILE", store.DefaultSaveFile),
		SQLitePath: getEnv("TETRIS_SQLITE_PATH", "tetris.db"),
		Slot:       getEnv("TETRIS_SLOT", store.DefaultSlot),
		LogFile:    getEnv("TETRIS_LOG_FILE", "tetris.log"),
		Addr:       getEnv("TETRIS_ADDR", ""),
		Listen:     getEnv("TETRIS_LISTEN", ":9000"),
	}

	tick, err := time.ParseDuration(getEnv("TETRIS_TICK", tetris.DefaultInterval.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid TETRIS_TICK: %w", err)
	}
	if tick <= 0 {
		return nil, fmt.Errorf("invalid TETRIS_TICK: %s must be positive", tick)
	}
	c.Tick = tick

	if err := c.LogLevel.UnmarshalText([]byte(getEnv("TETRIS_LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid TETRIS_LOG_LEVEL: %w", err)
	}

	switch c.Store {
	case StoreFile, StoreSQLite, StoreMemory:
	default:
		return nil, fmt.Errorf("invalid TETRIS_STORE %q: want %s, %s or %s", c.Store, StoreFile, StoreSQLite, StoreMemory)
	}
	return c, nil
}

// OpenStore builds the configured store. The returned func releases it.
func OpenStore(ctx context.Context, c *Config) (tetris.Store, func() error, error) {
	noop := func() error { return nil }
	switch c.Store {
	case StoreSQLite:
		s, err := store.OpenSQLite(ctx, c.SQLitePath, c.Slot)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case StoreMemory:
		return store.NewMemory(), noop, nil
	default:
		return store.NewFileStore(c.SaveFile), noop, nil
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
