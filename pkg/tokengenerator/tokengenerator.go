// Package tokengenerator signs and parses the HS256 tokens that guard the
// console API. The claims carry the operator id in user_id and the role
// names in extra_claims.roles, which is what client.AuthUserMiddleware
// reads back.
package tokengenerator

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tendant/idm-console/pkg/config"
)

// ExtraClaims is the extra_claims object of a console token.
type ExtraClaims struct {
	Roles []string `json:"roles,omitempty"`
}

// Claims struct for JWT claims
type Claims struct {
	UserID      string      `json:"user_id"`
	ExtraClaims ExtraClaims `json:"extra_claims"`
	jwt.RegisteredClaims
}

// JwtTokenGenerator creates and parses console admin tokens.
type JwtTokenGenerator struct {
	Secret   string
	Issuer   string
	Audience string
}

func NewJwtTokenGenerator(secret, issuer, audience string) *JwtTokenGenerator {
	return &JwtTokenGenerator{
		Secret:   secret,
		Issuer:   issuer,
		Audience: audience,
	}
}

// NewFromConfig builds a generator from the JWT settings the server
// verifies with.
func NewFromConfig(cfg config.JWTConfig) *JwtTokenGenerator {
	return NewJwtTokenGenerator(cfg.Secret, cfg.Issuer, cfg.Audience)
}

// GenerateToken returns a signed token for userID and its expiry time.
func (g *JwtTokenGenerator) GenerateToken(userID string, roles []string, expiry time.Duration) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, fmt.Errorf("user id is required")
	}
	if expiry <= 0 {
		return "", time.Time{}, fmt.Errorf("expiry must be positive, got %s", expiry)
	}

	now := time.Now().UTC()
	claims := Claims{
		UserID:      userID,
		ExtraClaims: ExtraClaims{Roles: roles},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-5 * time.Minute)),
			Issuer:    g.Issuer,
			Subject:   userID,
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{g.Audience},
		},
	}

	ss, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(g.Secret))
	if err != nil {
		slog.Error("Failed sign JWT Claim string!", "err", err)
		return "", time.Time{}, err
	}
	return ss, claims.ExpiresAt.Time, nil
}

// ParseToken verifies the signature, expiry, issuer and audience of
// tokenStr.
func (g *JwtTokenGenerator) ParseToken(tokenStr string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(g.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(g.Issuer),
		jwt.WithAudience(g.Audience),
	)
	if err != nil {
		slog.Error("Failed parse JWT string!", "err", err)
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("failed_parse_token_claims")
	}
	return claims, nil
}
