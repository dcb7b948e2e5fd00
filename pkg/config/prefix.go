package config

import (
	"fmt"
	"strings"
)

// PrefixConfig holds the mount points of the console API route groups.
//
// Example environment variables:
//
//	API_PREFIX_APPLICATIONS=/api/applications
//	API_PREFIX_ROLES=/api/roles
//	API_PREFIX_CONNECTORS=/api/connectors
//	API_PREFIX_USERS=/api/users
//	API_PREFIX_SCOPES=/api/scopes
type PrefixConfig struct {
	Applications string `env:"API_PREFIX_APPLICATIONS"`
	Roles        string `env:"API_PREFIX_ROLES"`
	Connectors   string `env:"API_PREFIX_CONNECTORS"`
	Users        string `env:"API_PREFIX_USERS"`
	Scopes       string `env:"API_PREFIX_SCOPES"`
}

// DefaultPrefixes returns the default prefix configuration.
func DefaultPrefixes() PrefixConfig {
	return BuildPrefixesFromBase("/api")
}

// BuildPrefixesFromBase appends each route group to basePath.
//
//	BuildPrefixesFromBase("/api/v1")
//	// Applications: "/api/v1/applications", Roles: "/api/v1/roles", ...
func BuildPrefixesFromBase(basePath string) PrefixConfig {
	basePath = strings.TrimSuffix(basePath, "/")
	return PrefixConfig{
		Applications: basePath + "/applications",
		Roles:        basePath + "/roles",
		Connectors:   basePath + "/connectors",
		Users:        basePath + "/users",
		Scopes:       basePath + "/scopes",
	}
}

// WithDefaults fills empty prefixes from the defaults built on basePath.
func (p PrefixConfig) WithDefaults(basePath string) PrefixConfig {
	defaults := BuildPrefixesFromBase(basePath)
	if p.Applications == "" {
		p.Applications = defaults.Applications
	}
	if p.Roles == "" {
		p.Roles = defaults.Roles
	}
	if p.Connectors == "" {
		p.Connectors = defaults.Connectors
	}
	if p.Users == "" {
		p.Users = defaults.Users
	}
	if p.Scopes == "" {
		p.Scopes = defaults.Scopes
	}
	return p
}

// Validate checks that all prefix paths are non-empty and start with /
func (p PrefixConfig) Validate() error {
	prefixes := []struct{ name, value string }{
		{"Applications", p.Applications},
		{"Roles", p.Roles},
		{"Connectors", p.Connectors},
		{"Users", p.Users},
		{"Scopes", p.Scopes},
	}
	for _, prefix := range prefixes {
		if prefix.value == "" {
			return fmt.Errorf("prefix configuration missing: %s", prefix.name)
		}
		if prefix.value[0] != '/' {
			return fmt.Errorf("prefix must start with '/': %s = %s", prefix.name, prefix.value)
		}
	}
	return nil
}
