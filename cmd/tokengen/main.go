package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/tendant/idm-console/pkg/config"
	"github.com/tendant/idm-console/pkg/tokengenerator"
)

type Config struct {
	JWTConfig config.JWTConfig
}

func main() {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		slog.Error("Failed to read config", "err", err)
		os.Exit(1)
	}

	subject := flag.String("subject", "console-admin", "User id the token is issued to")
	roles := flag.String("roles", strings.Join(cfg.JWTConfig.AdminRoleNames()[:1], ","), "Comma-separated role names")
	expiry := flag.Duration("expiry", cfg.JWTConfig.AccessTokenExpiry, "Token expiry duration (e.g., 30m, 1h, 24h)")
	outputFormat := flag.String("format", "compact", "Output format: compact, full, or debug")
	flag.Parse()

	tokenGen := tokengenerator.NewFromConfig(cfg.JWTConfig)
	tokenStr, expiryTime, err := tokenGen.GenerateToken(*subject, config.ParseAdminRoleNames(*roles), *expiry)
	if err != nil {
		slog.Error("Failed to generate token", "err", err)
		fmt.Fprintf(os.Stderr, "Error: Failed to generate token: %v\n", err)
		os.Exit(1)
	}

	switch *outputFormat {
	case "compact":
		fmt.Println(tokenStr)
	case "full":
		fmt.Printf("Token: %s\nExpires: %s\n", tokenStr, expiryTime.Format(time.RFC3339))
	case "debug":
		claims, err := tokenGen.ParseToken(tokenStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to parse generated token: %v\n", err)
			os.Exit(1)
		}
		claimsJSON, _ := json.MarshalIndent(claims, "", "  ")
		fmt.Printf("=== Token ===\n%s\n\n=== Claims ===\n%s\n\nExpires: %s\n", tokenStr, claimsJSON, expiryTime.Format(time.RFC3339))
	default:
		fmt.Fprintf(os.Stderr, "Error: Unknown output format: %s\n", *outputFormat)
		os.Exit(1)
	}
}
