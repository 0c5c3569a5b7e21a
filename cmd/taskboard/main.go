// Package main is the entry point for the taskboard CLI.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"taskboard/internal/api"
	"taskboard/internal/backend/boardapi"
	"taskboard/internal/cli"
	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/credstore"
	"taskboard/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create service factory: credential store feeding the request gateway,
	// board REST client on top.
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		level := slog.LevelWarn
		if cfg.Debug {
			level = slog.LevelDebug
		}
		log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		gw, err := api.New(cfg.ServerURL, credstore.New(cfg.TokenPath()), log)
		if err != nil {
			return nil, err
		}
		return boardapi.New(gw), nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
