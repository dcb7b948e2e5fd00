package config

import "time"

// JWTConfig holds the HMAC settings admin tokens are signed and verified
// with.
type JWTConfig struct {
	Secret            string        `env:"JWT_SECRET" env-default:"very-secure-jwt-secret"`
	Issuer            string        `env:"JWT_ISSUER" env-default:"idm-console"`
	Audience          string        `env:"JWT_AUDIENCE" env-default:"idm-console"`
	AccessTokenExpiry time.Duration `env:"ACCESS_TOKEN_EXPIRY" env-default:"30m"`
	AdminRoles        string        `env:"ADMIN_ROLES" env-default:"admin,superadmin"`
}

// AdminRoleNames returns the parsed ADMIN_ROLES list.
func (j JWTConfig) AdminRoleNames() []string {
	return ParseAdminRoleNames(j.AdminRoles)
}

func (j JWTConfig) Validate() ValidationErrors {
	return CollectErrors(
		RequireMinLength("JWT_SECRET", j.Secret, 16),
		RequirePositiveDuration("ACCESS_TOKEN_EXPIRY", j.AccessTokenExpiry),
	)
}
