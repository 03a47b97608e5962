package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/config"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/database"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	steps := flag.Int("steps", 1, "number of migrations to roll back when direction=down")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	switch *direction {
	case "up":
		err = database.RunMigrations(db.SQLDB())
	case "down":
		err = database.RollbackMigrations(db.SQLDB(), *steps)
	default:
		err = fmt.Errorf("unknown direction %q", *direction)
	}
	if err != nil {
		slog.Error("Migration failed", "error", err)
		os.Exit(1)
	}
}
