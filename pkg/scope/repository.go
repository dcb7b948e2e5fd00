package scope

import (
	"context"

	"github.com/tendant/idm-console/pkg/schema"
)

// ScopeRepository is the storage the scope service runs on.
type ScopeRepository interface {
	FindScopeByID(ctx context.Context, id string) (schema.Scope, bool, error)
	FindScopesByIDs(ctx context.Context, ids []string) ([]schema.Scope, error)
	InsertScope(ctx context.Context, create schema.CreateScope) (schema.Scope, error)
}
