package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5"
	dbutils "github.com/tendant/db-utils/db"
	"github.com/tendant/idm-console/pkg/config"
	"github.com/tendant/idm-console/pkg/database"
	"github.com/tendant/idm-console/pkg/role"
	"github.com/tendant/idm-console/pkg/schema"
	"github.com/tendant/idm-console/pkg/tokengenerator"
	"github.com/tendant/idm-console/pkg/user"
)

type Config struct {
	DatabaseConfig config.DatabaseConfig
	JWTConfig      config.JWTConfig
}

func main() {
	// Parse command line arguments
	username := flag.String("username", "", "Username for the new user (required)")
	email := flag.String("email", "", "Email for the new user (required)")
	roleName := flag.String("role", "admin", "Role to assign to the user, created when missing")
	flag.Parse()

	if *username == "" || *email == "" {
		fmt.Println("Error: username and email are required")
		flag.Usage()
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
	}))
	slog.SetDefault(logger)

	cfg := Config{}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		slog.Error("Failed to read configuration", "error", err)
		os.Exit(1)
	}

	dbConfig := cfg.DatabaseConfig.ToDbConfig()
	pool, err := dbutils.NewDbPool(context.Background(), dbConfig)
	if err != nil {
		slog.Error("Failed creating dbpool", "db", dbConfig.Database, "host", dbConfig.Host, "port", dbConfig.Port, "user", dbConfig.User)
		os.Exit(1)
	}
	defer pool.Close()

	ctx := context.Background()
	var created schema.User
	err = database.WithTx(ctx, pool, func(tx pgx.Tx) error {
		if err := database.SetLocalSearchPath(ctx, tx, cfg.DatabaseConfig.Schema); err != nil {
			return err
		}
		roles := role.NewQueries(tx)
		users := user.NewQueries(tx)

		found, ok, err := roles.FindRoleByRoleName(ctx, *roleName, "")
		if err != nil {
			return fmt.Errorf("find role: %w", err)
		}
		if !ok {
			slog.Info("Role not found, creating new role", "role", *roleName)
			found, err = roles.InsertRole(ctx, schema.CreateRole{
				ID:          uuid.NewString(),
				Name:        *roleName,
				Description: "Console administrator",
				Type:        schema.RoleTypeUser,
			})
			if err != nil {
				return fmt.Errorf("create role: %w", err)
			}
		} else {
			slog.Info("Using existing role", "role", *roleName, "id", found.ID)
		}

		created, err = users.InsertUser(ctx, schema.CreateUser{
			ID:           uuid.NewString(),
			Username:     username,
			PrimaryEmail: email,
			Name:         username,
		})
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		return roles.InsertUsersRoles(ctx, []schema.UsersRole{
			{ID: uuid.NewString(), UserID: created.ID, RoleID: found.ID},
		})
	})
	if err != nil {
		slog.Error("Failed to initialize user", "error", err)
		os.Exit(1)
	}

	token, _, err := tokengenerator.NewFromConfig(cfg.JWTConfig).
		GenerateToken(created.ID, []string{*roleName}, cfg.JWTConfig.AccessTokenExpiry)
	if err != nil {
		slog.Error("Failed to generate token", "error", err)
		os.Exit(1)
	}

	slog.Info("User created successfully", "id", created.ID, "username", *username, "role", *roleName)
	fmt.Println(token)
}
