package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/m04kA/SMC-CarRentalService/internal/config"
	"github.com/m04kA/SMC-CarRentalService/pkg/migrator"
)

// Управление схемой postgres без запуска сервиса:
//
//	migrate -command up
//	migrate -command down -steps 1
//	migrate -command version
func main() {
	configPath := flag.String("config", "config.toml", "Path to configuration file")
	command := flag.String("command", "up", "Migration command: up, down, version")
	steps := flag.Int("steps", 1, "Number of migrations to roll back (down only)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	source := cfg.Database.MigrationsPath
	dbURL := cfg.Database.URL()

	switch *command {
	case "up":
		if err := migrator.Up(source, dbURL); err != nil {
			fmt.Printf("Migration up failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Migrations applied")
	case "down":
		if *steps < 1 {
			fmt.Println("steps must be positive")
			os.Exit(1)
		}
		if err := migrator.Down(source, dbURL, *steps); err != nil {
			fmt.Printf("Migration down failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Rolled back %d migration(s)\n", *steps)
	case "version":
		version, dirty, err := migrator.Version(source, dbURL)
		if err != nil {
			fmt.Printf("Failed to read schema version: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Schema version: %d (dirty=%t)\n", version, dirty)
	default:
		fmt.Printf("Unknown command %q, expected up, down or version\n", *command)
		os.Exit(1)
	}
}
