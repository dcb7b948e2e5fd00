// Package main runs the console API without a database, on in-memory
// repositories seeded with a few scopes, roles, users, an application and a
// connector. It prints an admin token on startup.
//
// All data is lost when the server stops. For production, use cmd/console
// with PostgreSQL.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tendant/chi-demo/app"
	"github.com/tendant/idm-console/pkg/config"
	"github.com/tendant/idm-console/pkg/router"
	"github.com/tendant/idm-console/pkg/schema"
	"github.com/tendant/idm-console/pkg/tokengenerator"
	"github.com/tendant/idm-console/pkg/utils"
)

type Config struct {
	PaginationConfig config.PaginationConfig
	JWTConfig        config.JWTConfig
	AppConfig        app.AppConfig
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Starting in-memory console (no database required)")
	slog.Info(strings.Repeat("=", 60))

	cfg := Config{}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		slog.Error("Failed to read configuration", "error", err)
		os.Exit(1)
	}

	repos := router.NewMemoryRepositories()
	adminID, err := seedInitialData(context.Background(), repos)
	if err != nil {
		slog.Error("Failed to seed data", "error", err)
		os.Exit(1)
	}

	token, expires, err := tokengenerator.NewFromConfig(cfg.JWTConfig).
		GenerateToken(adminID, cfg.JWTConfig.AdminRoleNames()[:1], 24*time.Hour)
	if err != nil {
		slog.Error("Failed to generate admin token", "error", err)
		os.Exit(1)
	}

	prefixes := config.DefaultPrefixes()
	server := app.DefaultApp()
	server.R.Use(middleware.Recoverer)
	app.RoutesHealthz(server.R)
	router.SetupRoutes(server.R, router.NewConfig(repos, router.Options{
		PrefixConfig: prefixes,
		Pagination:   cfg.PaginationConfig,
		JWTConfig:    cfg.JWTConfig,
	}))

	slog.Info(strings.Repeat("=", 60))
	slog.Info("In-memory console ready")
	slog.Info("Admin token", "token", token, "expires", expires.Format(time.RFC3339))
	slog.Info("API endpoints:")
	for _, prefix := range []string{prefixes.Applications, prefixes.Roles, prefixes.Connectors, prefixes.Users, prefixes.Scopes} {
		slog.Info("  " + prefix)
	}
	slog.Info(strings.Repeat("=", 60))

	server.Run()
}

// seedInitialData fills repos and returns the id of the admin user.
func seedInitialData(ctx context.Context, repos router.Repositories) (string, error) {
	apiScope, err := repos.Scopes.InsertScope(ctx, schema.CreateScope{
		ID: uuid.NewString(), ResourceID: "management-api", Name: "all",
		Description: utils.StringPtr("Full access to the management API"),
	})
	if err != nil {
		return "", fmt.Errorf("seed scope: %w", err)
	}

	adminRole, err := repos.Roles.InsertRole(ctx, schema.CreateRole{
		ID: uuid.NewString(), Name: "admin", Description: "Console administrator", Type: schema.RoleTypeUser,
	})
	if err != nil {
		return "", fmt.Errorf("seed admin role: %w", err)
	}
	m2mRole, err := repos.Roles.InsertRole(ctx, schema.CreateRole{
		ID: uuid.NewString(), Name: "management-api", Description: "Machine access to the management API",
		Type: schema.RoleTypeMachineToMachine,
	})
	if err != nil {
		return "", fmt.Errorf("seed m2m role: %w", err)
	}
	err = repos.Roles.InsertRolesScopes(ctx, []schema.RolesScope{
		{ID: uuid.NewString(), RoleID: adminRole.ID, ScopeID: apiScope.ID},
		{ID: uuid.NewString(), RoleID: m2mRole.ID, ScopeID: apiScope.ID},
	})
	if err != nil {
		return "", fmt.Errorf("seed role scopes: %w", err)
	}

	admin, err := repos.Users.InsertUser(ctx, schema.CreateUser{
		ID: uuid.NewString(), Username: utils.StringPtr("admin"),
		PrimaryEmail: utils.StringPtr("admin@example.com"), Name: utils.StringPtr("Admin"),
	})
	if err != nil {
		return "", fmt.Errorf("seed admin user: %w", err)
	}
	err = repos.Roles.InsertUsersRoles(ctx, []schema.UsersRole{
		{ID: uuid.NewString(), UserID: admin.ID, RoleID: adminRole.ID},
	})
	if err != nil {
		return "", fmt.Errorf("seed admin user role: %w", err)
	}

	secret, err := utils.GenerateSecret(32)
	if err != nil {
		return "", err
	}
	m2mApp, err := repos.Applications.InsertApplication(ctx, schema.CreateApplication{
		ID: uuid.NewString(), Name: "Backend service", Secret: secret,
		Type: schema.ApplicationTypeMachineToMachine,
	})
	if err != nil {
		return "", fmt.Errorf("seed application: %w", err)
	}
	err = repos.Roles.InsertApplicationsRoles(ctx, []schema.ApplicationsRole{
		{ID: uuid.NewString(), ApplicationID: m2mApp.ID, RoleID: m2mRole.ID},
	})
	if err != nil {
		return "", fmt.Errorf("seed application role: %w", err)
	}

	_, err = repos.Connectors.InsertConnector(ctx, schema.CreateConnector{
		ID: "smtp", Type: schema.ConnectorTypeEmail,
		Config: map[string]any{"host": "localhost", "port": 1025},
	})
	if err != nil {
		return "", fmt.Errorf("seed connector: %w", err)
	}

	slog.Info("Seeded initial data", "admin", admin.ID, "application", m2mApp.ID)
	return admin.ID, nil
}
