package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/wrobbinz/newspoint/db"
	"github.com/wrobbinz/newspoint/internal/aggregator"
	"github.com/wrobbinz/newspoint/internal/config"
	"github.com/wrobbinz/newspoint/internal/repository"
)

func main() {

	godotenv.Load()

	configPath := flag.String("config", config.PathFromEnv(), "path to the YAML config file")
	dryRun := flag.Bool("dry-run", false, "print the cloud instead of storing it")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clients, err := aggregator.BuildClients(cfg)
	if err != nil {
		log.Fatalf("error building news clients: %v", err)
	}

	opts := aggregator.Options{
		FetchTimeout: cfg.FetchTimeout,
		ArticleLimit: cfg.ArticleLimit,
	}

	if *dryRun {
		runner := aggregator.NewRunner(clients, aggregator.NewPipeline(cfg), nil, opts)
		entries, report := runner.Build(ctx)
		fmt.Print(formatCloud(entries))
		slog.Info("dry run complete", "run_id", report.ID, "sources_ok", report.SourcesOK, "sources_failed", report.SourcesFailed, "entries", report.Entries)
		return
	}

	err = db.Connect(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	if cfg.Redis.URL != "" {
		err = db.ConnectRedis(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}
		defer db.CloseRedis()
		opts.Lock = db.NewRunLock(db.Redis, cfg.Redis.LockKey, cfg.Redis.LockTTL)
	}

	newsRepo := repository.NewNewsRepository(db.DB, cfg.Database.Driver, cfg.Database.WriteConcurrency)
	if err := newsRepo.Migrate(ctx); err != nil {
		slog.Error("error migrating DB", "error", err)
		return
	}

	runner := aggregator.NewRunner(clients, aggregator.NewPipeline(cfg), newsRepo, opts)
	if _, err := runner.Run(ctx); err != nil {
		slog.Error("fetch run failed", "error", err)
	}
}
