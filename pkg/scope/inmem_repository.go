package scope

import (
	"context"
	"sort"
	"sync"
	"time"

	apperrors "github.com/tendant/idm-console/pkg/errors"
	"github.com/tendant/idm-console/pkg/schema"
)

// InMemoryScopeRepository implements ScopeRepository using in-memory storage
type InMemoryScopeRepository struct {
	mu     sync.RWMutex
	scopes map[string]schema.Scope
}

// NewInMemoryScopeRepository creates a new in-memory scope repository
func NewInMemoryScopeRepository() *InMemoryScopeRepository {
	return &InMemoryScopeRepository{
		scopes: make(map[string]schema.Scope),
	}
}

func (r *InMemoryScopeRepository) FindScopeByID(ctx context.Context, id string) (schema.Scope, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.scopes[id]
	return s, ok, nil
}

func (r *InMemoryScopeRepository) FindScopesByIDs(ctx context.Context, ids []string) ([]schema.Scope, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scopes := []schema.Scope{}
	for _, id := range ids {
		if s, ok := r.scopes[id]; ok {
			scopes = append(scopes, s)
		}
	}
	sort.Slice(scopes, func(i, j int) bool { return scopes[i].Name < scopes[j].Name })
	return scopes, nil
}

func (r *InMemoryScopeRepository) InsertScope(ctx context.Context, create schema.CreateScope) (schema.Scope, error) {
	if err := schema.Scopes.Validate(create.Record(), true); err != nil {
		return schema.Scope{}, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid record")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scopes[create.ID]; exists {
		return schema.Scope{}, apperrors.Conflict(schema.Scopes.Table(), "scopes_pkey", nil)
	}
	for _, existing := range r.scopes {
		if existing.ResourceID == create.ResourceID && existing.Name == create.Name {
			return schema.Scope{}, apperrors.Conflict(schema.Scopes.Table(), "scopes__resource_id_name", nil)
		}
	}

	s := schema.Scope{
		ID:          create.ID,
		ResourceID:  create.ResourceID,
		Name:        create.Name,
		Description: create.Description,
		CreatedAt:   time.Now(),
	}
	r.scopes[s.ID] = s
	return s, nil
}
