package config

import (
	"testing"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	DatabaseConfig   DatabaseConfig
	PaginationConfig PaginationConfig
	JWTConfig        JWTConfig
	StoreConfig      StoreConfig
	PrefixConfig     PrefixConfig
}

func TestReadEnvDefaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, cleanenv.ReadEnv(&cfg))

	assert.Equal(t, "console_db", cfg.DatabaseConfig.Database)
	assert.Equal(t, uint16(5432), cfg.DatabaseConfig.Port)
	assert.Equal(t, 20, cfg.PaginationConfig.DefaultPageSize)
	assert.Equal(t, 30*time.Minute, cfg.JWTConfig.AccessTokenExpiry)
	assert.Equal(t, StorePostgres, cfg.StoreConfig.Kind)
	assert.Equal(t, "/api/roles", cfg.PrefixConfig.WithDefaults("/api").Roles)

	assert.NoError(t, Validate(
		cfg.DatabaseConfig.Validate,
		cfg.PaginationConfig.Validate,
		cfg.JWTConfig.Validate,
		cfg.StoreConfig.Validate,
	))
}

func TestReadEnvOverrides(t *testing.T) {
	t.Setenv("IDM_PG_PORT", "6543")
	t.Setenv("PAGE_SIZE_DEFAULT", "500")
	t.Setenv("CONSOLE_STORE", "sqlite")
	t.Setenv("API_PREFIX_CONNECTORS", "/admin/connectors")

	var cfg testConfig
	require.NoError(t, cleanenv.ReadEnv(&cfg))
	assert.Equal(t, uint16(6543), cfg.DatabaseConfig.Port)
	assert.Equal(t, "/admin/connectors", cfg.PrefixConfig.WithDefaults("/api").Connectors)
	assert.Equal(t, "/api/users", cfg.PrefixConfig.WithDefaults("/api").Users)

	err := Validate(cfg.PaginationConfig.Validate, cfg.StoreConfig.Validate)
	require.Error(t, err)
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 2)
	assert.Contains(t, err.Error(), "PAGE_SIZE_DEFAULT")
	assert.Contains(t, err.Error(), "CONSOLE_STORE")
}

func TestPrefixConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultPrefixes().Validate())
	assert.Equal(t, "/api/v1/applications", BuildPrefixesFromBase("/api/v1/").Applications)

	p := DefaultPrefixes()
	p.Users = "users"
	assert.Error(t, p.Validate())
}

func TestParseAdminRoleNames(t *testing.T) {
	assert.Equal(t, []string{"admin", "superadmin"}, ParseAdminRoleNames(""))
	assert.Equal(t, []string{"admin", "superadmin"}, ParseAdminRoleNames(" , "))
	assert.Equal(t, []string{"ops", "root"}, ParseAdminRoleNames("ops, root"))
	assert.True(t, HasAnyAdminRole([]string{"viewer", "ADMIN"}, []string{"admin"}))
	assert.False(t, HasAnyAdminRole([]string{"viewer"}, []string{"admin"}))
}

func TestRateLimitConfigValidate(t *testing.T) {
	assert.Empty(t, RateLimitConfig{Enabled: false}.Validate())
	assert.Empty(t, RateLimitConfig{Enabled: true, Burst: 10, PerSecond: 1}.Validate())

	errs := RateLimitConfig{Enabled: true, Burst: 0, PerSecond: 0}.Validate()
	assert.Len(t, errs, 2)
}

func TestDatabasePoolConfigAppliesSchema(t *testing.T) {
	d := DatabaseConfig{Host: "db.internal", Port: 6543, Database: "console_db", User: "console", Password: "p@ss word", Schema: "tenant"}

	cfg, err := d.PoolConfig()
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.ConnConfig.Host)
	assert.Equal(t, uint16(6543), cfg.ConnConfig.Port)
	assert.Equal(t, "console_db", cfg.ConnConfig.Database)
	assert.Equal(t, "console", cfg.ConnConfig.User)
	assert.Equal(t, "p@ss word", cfg.ConnConfig.Password)
	assert.Equal(t, `"tenant", public`, cfg.ConnConfig.RuntimeParams["search_path"])

	d.Schema = ""
	cfg, err = d.PoolConfig()
	require.NoError(t, err)
	assert.NotContains(t, cfg.ConnConfig.RuntimeParams, "search_path")
}
