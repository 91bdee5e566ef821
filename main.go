package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"tetrimino/client"
	"tetrimino/config"
	"tetrimino/tetris"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[28;0H\n\r\033[?25h"

	minWidth, minHeight = 24, 28
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("tetris must run in a terminal")
	}
	if w, h, err := term.GetSize(fd); err == nil && (w < minWidth || h < minHeight) {
		return fmt.Errorf("terminal is %dx%d, tetris needs at least %dx%d", w, h, minWidth, minHeight)
	}

	// stdout is the game screen so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: cfg.LogLevel}))

	game, closeGame, err := newGame(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeGame(); err != nil {
			logger.Error("unable to close store", slog.String("error", err.Error()))
		}
	}()

	c, err := client.New(logger, game)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Error("unable to close keyboard", slog.String("error", err.Error()))
		}
	}()

	fmt.Print(hideCursor)
	defer fmt.Print(showCursor)
	c.Start()
	return nil
}

// newGame plays on the configured server, or in process with the configured
// store when there's none.
func newGame(ctx context.Context, cfg *config.Config, logger *slog.Logger) (client.Game, func() error, error) {
	if cfg.Addr != "" {
		logger.Info("playing remote game", slog.String("addr", cfg.Addr))
		g, err := client.NewRemoteGame(cfg.Addr, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create gRPC client: %w", err)
		}
		return g, func() error { return nil }, nil
	}

	st, closeStore, err := config.OpenStore(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	logger.Info("playing local game", slog.String("store", cfg.Store))
	return tetris.NewGame(&tetris.Options{
		Store:    st,
		Logger:   logger,
		Interval: cfg.Tick,
	}), closeStore, nil
}
