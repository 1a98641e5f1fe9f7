package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/wrobbinz/newspoint/db"
	"github.com/wrobbinz/newspoint/internal/config"
	"github.com/wrobbinz/newspoint/internal/repository"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Default()
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	cfg.Database.URL = os.Getenv("DATABASE_URL")

	err := db.Connect(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	newsRepo := repository.NewNewsRepository(db.DB, cfg.Database.Driver, 1)
	if err := newsRepo.Migrate(ctx); err != nil {
		log.Fatalf("error migrating DB: %v", err)
	}

	slog.Info("migration complete", "driver", cfg.Database.Driver)
}
