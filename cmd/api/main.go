package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/wrobbinz/newspoint/db"
	"github.com/wrobbinz/newspoint/internal/aggregator"
	"github.com/wrobbinz/newspoint/internal/config"
	"github.com/wrobbinz/newspoint/internal/handler"
	"github.com/wrobbinz/newspoint/internal/repository"
	"github.com/wrobbinz/newspoint/internal/scheduler"
)

func main() {

	godotenv.Load()

	cfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = db.Connect(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	newsRepo := repository.NewNewsRepository(db.DB, cfg.Database.Driver, cfg.Database.WriteConcurrency)
	if err := newsRepo.Migrate(ctx); err != nil {
		log.Fatalf("error migrating DB: %v", err)
	}

	opts := aggregator.Options{
		FetchTimeout: cfg.FetchTimeout,
		ArticleLimit: cfg.ArticleLimit,
	}

	if cfg.Redis.URL != "" {
		err = db.ConnectRedis(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}
		defer db.CloseRedis()
		opts.Lock = db.NewRunLock(db.Redis, cfg.Redis.LockKey, cfg.Redis.LockTTL)
	}

	clients, err := aggregator.BuildClients(cfg)
	if err != nil {
		log.Fatalf("error building news clients: %v", err)
	}

	runner := aggregator.NewRunner(clients, aggregator.NewPipeline(cfg), newsRepo, opts)
	newsHandler := handler.NewNewsHandler(newsRepo, runner)

	sched := scheduler.New(cfg.Interval, cfg.RunOnStart, runner.Tick)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("error starting scheduler: %v", err)
	}

	r := gin.Default()

	slog.Info("AllowOrigins URL:", "urls", cfg.HTTP.AllowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/", newsHandler.GetAllNews)
	r.POST("/", newsHandler.UpdateAllNews)
	r.GET("/health", newsHandler.GetHealth)

	srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: r}

	go func() {
		slog.Info("listening", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("error starting server: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("error shutting down server", "error", err)
	}

	sched.Stop()
	runner.Wait()
}
