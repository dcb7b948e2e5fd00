// Package config holds the configuration structs of the console. Each struct
// carries cleanenv tags, so a service embeds the ones it needs in its own
// Config and reads them in one call:
//
//	type Config struct {
//	    DatabaseConfig   config.DatabaseConfig
//	    PaginationConfig config.PaginationConfig
//	}
//
//	var cfg Config
//	if err := cleanenv.ReadEnv(&cfg); err != nil { ... }
//
// Every struct has a Validate method returning ValidationErrors. Combine them
// with Validate:
//
//	err := config.Validate(cfg.DatabaseConfig.Validate, cfg.PaginationConfig.Validate)
package config
