package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/terminplaner/internal/auth"
	"github.com/iudanet/terminplaner/internal/config"
	"github.com/iudanet/terminplaner/internal/metrics"
	"github.com/iudanet/terminplaner/internal/server"
	"github.com/iudanet/terminplaner/internal/server/middleware"
	"github.com/iudanet/terminplaner/internal/server/storage/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "terminplaner: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Отсутствие JWT_SECRET фатально на старте
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, logger)
	defer rateLimiter.Stop()

	router := server.NewRouter(&server.RouterDeps{
		Logger:       logger,
		Config:       cfg,
		UserStorage:  store,
		EventStorage: store,
		Hasher:       auth.NewBcryptHasher(auth.BcryptCost),
		Metrics:      metrics.NewCollector(),
		RateLimiter:  rateLimiter,
		Version:      Version,
	})

	logger.Info("starting terminplaner server",
		"version", Version,
		"port", cfg.ServerPort,
		"db_path", cfg.DBPath,
		"env", cfg.AppEnv,
	)

	return server.New(logger, cfg.ServerPort, router).Run(ctx)
}

func printVersion() {
	fmt.Printf("Terminplaner Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
