package config

// RateLimitConfig bounds how fast one operator may call the console API.
// Requests without an authenticated operator are keyed by client IP.
type RateLimitConfig struct {
	Enabled   bool    `env:"RATE_LIMIT_ENABLED" env-default:"true"`
	Burst     int     `env:"RATE_LIMIT_BURST" env-default:"60"`
	PerSecond float64 `env:"RATE_LIMIT_PER_SECOND" env-default:"5"`
}

func (r RateLimitConfig) Validate() ValidationErrors {
	if !r.Enabled {
		return nil
	}
	var perSecond *ValidationError
	if r.PerSecond <= 0 {
		perSecond = &ValidationError{Field: "RATE_LIMIT_PER_SECOND", Message: "must be positive"}
	}
	return CollectErrors(RequirePositive("RATE_LIMIT_BURST", r.Burst), perSecond)
}
