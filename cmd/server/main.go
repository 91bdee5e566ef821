package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"tetrimino/config"
	"tetrimino/rpc"
	"tetrimino/server"
	"tetrimino/tetris"
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
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := config.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("unable to close store", slog.String("error", err.Error()))
		}
	}()

	game := tetris.NewGame(&tetris.Options{
		Store:    st,
		Logger:   logger,
		Interval: cfg.Tick,
	})
	srv := server.New(game, logger)
	go srv.Run(ctx)
	game.Start()
	defer game.Stop()

	lis, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	defer lis.Close()
	s := grpc.NewServer()
	rpc.RegisterTetrisServiceServer(s, srv)

	// watch streams never end on their own so don't wait for them.
	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		s.Stop()
	}()

	logger.Info("starting server", slog.String("addr", lis.Addr().String()), slog.String("store", cfg.Store))
	if err := s.Serve(lis); err != nil {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}
