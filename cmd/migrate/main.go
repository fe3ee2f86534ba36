// Copyright (C) 2026 Agentmodes
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/agentmodes/agentmodes/internal/config"
	"github.com/agentmodes/agentmodes/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.NewConfig("config.yaml")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Create database connection
	store, err := storage.NewStore(&cfg.Database)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fmt.Println("🚀 Starting database migration...")
	fmt.Printf("Database: %s\n", cfg.Database.GetDSN())

	// Run migrations
	if err := store.AutoMigrate(); err != nil {
		fmt.Printf("❌ Migration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Database migration completed successfully!")

	// Seed builtin templates
	if err := store.Seed(context.Background()); err != nil {
		fmt.Printf("❌ Seeding builtin templates failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Builtin templates seeded - database is ready to use!")
}
