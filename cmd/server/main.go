// Copyright (C) 2026 Agentmodes
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agentmodes/agentmodes/internal/config"
	"github.com/agentmodes/agentmodes/internal/logger"
	"github.com/agentmodes/agentmodes/internal/server"
	"github.com/agentmodes/agentmodes/internal/storage"
)

func main() {
	cfg, err := config.NewConfig("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.CloseGlobal()

	mainLog := logger.GetLogger("main")
	mainLog.Info().Msg("Starting agentmodes API server")

	store, err := storage.NewStore(&cfg.Database)
	if err != nil {
		mainLog.Error().Err(err).Msg("Error connecting to database")
		fmt.Fprintf(os.Stderr, "Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.AutoMigrate(); err != nil {
		mainLog.Error().Err(err).Msg("Error running migrations")
		fmt.Fprintf(os.Stderr, "Error running migrations: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Database.Seed {
		if err := store.Seed(ctx); err != nil {
			mainLog.Error().Err(err).Msg("Error seeding builtin templates")
			fmt.Fprintf(os.Stderr, "Error seeding builtin templates: %v\n", err)
			os.Exit(1)
		}
	}

	srv := server.New(cfg, store)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- srv.Run(ctx)
	}()

	// Wait for signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		mainLog.Info().Msgf("Received signal %v, shutting down...", sig)
	case err := <-serverErrChan:
		if err != nil {
			mainLog.Error().Err(err).Msg("Server error")
		}
	}

	// Graceful shutdown: fresh context with timeout.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		mainLog.Error().Err(err).Msg("Error shutting down server")
	}

	mainLog.Info().Msg("API server shut down")
}
