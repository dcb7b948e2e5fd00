package router

import (
	"github.com/go-chi/jwtauth/v5"
	"github.com/tendant/idm-console/pkg/application"
	applicationapi "github.com/tendant/idm-console/pkg/application/api"
	pkgconfig "github.com/tendant/idm-console/pkg/config"
	"github.com/tendant/idm-console/pkg/connector"
	connectorapi "github.com/tendant/idm-console/pkg/connector/api"
	"github.com/tendant/idm-console/pkg/database"
	"github.com/tendant/idm-console/pkg/ratelimit"
	"github.com/tendant/idm-console/pkg/role"
	roleapi "github.com/tendant/idm-console/pkg/role/api"
	"github.com/tendant/idm-console/pkg/scope"
	scopeapi "github.com/tendant/idm-console/pkg/scope/api"
	"github.com/tendant/idm-console/pkg/user"
	userapi "github.com/tendant/idm-console/pkg/user/api"
)

// Repositories is the storage every console service runs on.
type Repositories struct {
	Applications application.ApplicationRepository
	Roles        role.RoleRepository
	Connectors   connector.ConnectorRepository
	Users        user.UserRepository
	Scopes       scope.ScopeRepository
}

// NewPostgresRepositories returns repositories that run their queries on db,
// usually a *pgxpool.Pool. Role creation needs db to begin transactions.
func NewPostgresRepositories(db database.DBTX) Repositories {
	return Repositories{
		Applications: application.NewQueries(db),
		Roles:        role.NewQueries(db),
		Connectors:   connector.NewQueries(db),
		Users:        user.NewQueries(db),
		Scopes:       scope.NewQueries(db),
	}
}

// NewMemoryRepositories returns empty in-memory repositories.
func NewMemoryRepositories() Repositories {
	users := user.NewInMemoryUserRepository()
	return Repositories{
		Applications: application.NewInMemoryApplicationRepository(),
		Roles:        role.NewInMemoryRoleRepository(users),
		Connectors:   connector.NewInMemoryConnectorRepository(),
		Users:        users,
		Scopes:       scope.NewInMemoryScopeRepository(),
	}
}

// Options are the settings NewConfig needs besides storage.
type Options struct {
	PrefixConfig pkgconfig.PrefixConfig
	Pagination   pkgconfig.PaginationConfig
	JWTConfig    pkgconfig.JWTConfig
	RateLimit    pkgconfig.RateLimitConfig
}

// NewConfig builds the services and handlers on repos.
//
// Example:
//
//	cfg := router.NewConfig(router.NewPostgresRepositories(pool), router.Options{
//	    PrefixConfig: pkgconfig.DefaultPrefixes(),
//	    Pagination:   pkgconfig.PaginationConfig{DefaultPageSize: 20, MaxPageSize: 100},
//	    JWTConfig:    jwtConfig,
//	})
//	router.SetupRoutes(r, cfg)
func NewConfig(repos Repositories, opts Options) Config {
	applicationService := application.NewApplicationService(repos.Applications)
	userService := user.NewUserService(repos.Users)
	scopeService := scope.NewScopeService(repos.Scopes)
	connectorService := connector.NewConnectorService(repos.Connectors)
	roleService := role.NewRoleService(repos.Roles, scopeService, userService, applicationService)

	return Config{
		PrefixConfig:      opts.PrefixConfig,
		ApplicationHandle: applicationapi.NewHandle(applicationService, opts.Pagination),
		RoleHandle:        roleapi.NewHandle(roleService, opts.Pagination),
		ConnectorHandle:   connectorapi.NewHandle(connectorService, opts.Pagination),
		UserHandle:        userapi.NewHandle(userService, opts.Pagination),
		ScopeHandle:       scopeapi.NewHandle(scopeService),
		TokenAuth:         jwtauth.New("HS256", []byte(opts.JWTConfig.Secret), nil),
		AdminRoles:        opts.JWTConfig.AdminRoleNames(),
		RateLimit:         ratelimit.NewMiddleware(opts.RateLimit),
	}
}
