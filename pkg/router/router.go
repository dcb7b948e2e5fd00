package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
	applicationapi "github.com/tendant/idm-console/pkg/application/api"
	"github.com/tendant/idm-console/pkg/client"
	pkgconfig "github.com/tendant/idm-console/pkg/config"
	connectorapi "github.com/tendant/idm-console/pkg/connector/api"
	"github.com/tendant/idm-console/pkg/ratelimit"
	roleapi "github.com/tendant/idm-console/pkg/role/api"
	scopeapi "github.com/tendant/idm-console/pkg/scope/api"
	userapi "github.com/tendant/idm-console/pkg/user/api"
)

// Config holds all the dependencies and handlers needed to setup routes
type Config struct {
	// Prefix configuration for all routes
	PrefixConfig pkgconfig.PrefixConfig

	ApplicationHandle *applicationapi.Handle
	RoleHandle        *roleapi.Handle
	ConnectorHandle   *connectorapi.Handle
	UserHandle        *userapi.Handle
	ScopeHandle       *scopeapi.Handle

	// JWT authentication
	TokenAuth *jwtauth.JWTAuth
	// AdminRoles are the role names allowed to use the console API.
	AdminRoles []string

	// RateLimit is optional; nil disables it.
	RateLimit *ratelimit.Middleware
}

// SetupRoutes mounts the console API on router. Every route requires a
// verified token carrying one of the admin roles.
func SetupRoutes(router chi.Router, cfg Config) {
	router.Group(func(r chi.Router) {
		r.Use(client.Verifier(cfg.TokenAuth))
		r.Use(jwtauth.Authenticator(cfg.TokenAuth))
		r.Use(client.AuthUserMiddleware)
		r.Use(cfg.RateLimit.Handler)

		r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
			render.JSON(w, r, client.GetAuthUser(r))
		})

		r.Group(func(r chi.Router) {
			r.Use(client.RequireRole(cfg.AdminRoles...))

			r.Mount(cfg.PrefixConfig.Applications, applicationapi.Handler(cfg.ApplicationHandle))
			r.Mount(cfg.PrefixConfig.Roles, roleapi.Handler(cfg.RoleHandle))
			r.Mount(cfg.PrefixConfig.Connectors, connectorapi.Handler(cfg.ConnectorHandle))
			r.Mount(cfg.PrefixConfig.Users, userapi.Handler(cfg.UserHandle))
			r.Mount(cfg.PrefixConfig.Scopes, scopeapi.Handler(cfg.ScopeHandle))
		})
	})
}
