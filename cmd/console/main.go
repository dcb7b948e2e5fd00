package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/tendant/chi-demo/app"
	"github.com/tendant/idm-console/pkg/config"
	"github.com/tendant/idm-console/pkg/ratelimit"
	"github.com/tendant/idm-console/pkg/router"
)

type Config struct {
	DatabaseConfig   config.DatabaseConfig
	PaginationConfig config.PaginationConfig
	JWTConfig        config.JWTConfig
	StoreConfig      config.StoreConfig
	PrefixConfig     config.PrefixConfig
	RateLimitConfig  config.RateLimitConfig
	BasePath         string `env:"API_BASE_PATH" env-default:"/api"`
	AppConfig        app.AppConfig
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
	}))
	slog.SetDefault(logger)

	loadEnvFile()

	cfg := Config{}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		slog.Error("Failed to read configuration", "error", err)
		os.Exit(1)
	}
	if err := config.Validate(
		cfg.DatabaseConfig.Validate,
		cfg.PaginationConfig.Validate,
		cfg.JWTConfig.Validate,
		cfg.StoreConfig.Validate,
		cfg.RateLimitConfig.Validate,
	); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	prefixes := cfg.PrefixConfig.WithDefaults(cfg.BasePath)
	if err := prefixes.Validate(); err != nil {
		slog.Error("Invalid route prefixes", "error", err)
		os.Exit(1)
	}

	var repos router.Repositories
	switch cfg.StoreConfig.Kind {
	case config.StoreMemory:
		slog.Warn("Using in-memory store, data is lost on restart")
		repos = router.NewMemoryRepositories()
	default:
		dbConfig := cfg.DatabaseConfig
		pool, err := dbConfig.NewPool(context.Background())
		if err != nil {
			slog.Error("Failed creating dbpool", "db", dbConfig.Database, "host", dbConfig.Host, "port", dbConfig.Port, "user", dbConfig.User, "schema", dbConfig.Schema, "err", err)
			os.Exit(1)
		}
		defer pool.Close()
		slog.Info("Database connected", "database", dbConfig.Database, "schema", dbConfig.Schema)
		repos = router.NewPostgresRepositories(pool)
	}

	server := app.DefaultApp()
	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	routes := router.NewConfig(repos, router.Options{
		PrefixConfig: prefixes,
		Pagination:   cfg.PaginationConfig,
		JWTConfig:    cfg.JWTConfig,
		RateLimit:    cfg.RateLimitConfig,
	})
	router.SetupRoutes(server.R, routes)
	if limiter := routes.RateLimit.Limiter(); limiter != nil {
		go pruneLimiter(limiter)
	}

	slog.Info("Console API ready", "applications", prefixes.Applications, "store", cfg.StoreConfig.Kind)
	server.Run()
}

func pruneLimiter(limiter *ratelimit.RateLimiter) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		if n := limiter.Prune(time.Hour); n > 0 {
			slog.Debug("Pruned idle rate limit buckets", "count", n)
		}
	}
}

func loadEnvFile() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		slog.Debug("No .env file found (using environment variables or defaults)")
		return
	}

	slog.Info("Loading configuration from .env file", "path", envFile)
	if err := godotenv.Load(envFile); err != nil {
		slog.Warn("Failed to load .env file", "error", err)
	}
}
