// Package main provides the schema migration CLI.
// Usage: migrate up
//        migrate down
//        migrate status
package main

import (
	"fmt"
	"os"
	"os/exec"

	"stockadmin/internal/core/config"
)

const migrationsDir = "db/migrations"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "up", "down", "status", "redo":
		if err := runGoose(os.Args[1]); err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			os.Exit(1)
		}
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Stock admin schema migrations

Usage:
  migrate <command>

Commands:
  up      Apply all pending migrations
  down    Roll back the latest migration
  redo    Roll back and re-apply the latest migration
  status  Show migration status
  help    Show this help

Environment:
  DATABASE_URL   PostgreSQL connection string (required)

Requires the goose binary on PATH.`)
}

func runGoose(command string) error {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	cmd := exec.Command("goose", "-dir", migrationsDir, "postgres", cfg.DatabaseURL, command)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
