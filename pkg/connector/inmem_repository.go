package connector

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tendant/idm-console/pkg/database"
	apperrors "github.com/tendant/idm-console/pkg/errors"
	"github.com/tendant/idm-console/pkg/schema"
)

// InMemoryConnectorRepository implements ConnectorRepository using in-memory storage
type InMemoryConnectorRepository struct {
	mu         sync.RWMutex
	connectors map[string]schema.Connector
}

// NewInMemoryConnectorRepository creates a new in-memory connector repository
func NewInMemoryConnectorRepository() *InMemoryConnectorRepository {
	return &InMemoryConnectorRepository{
		connectors: make(map[string]schema.Connector),
	}
}

// matching returns connectors accepted by search, ordered by id. Callers
// hold the lock.
func (r *InMemoryConnectorRepository) matching(search database.Search) []schema.Connector {
	connectors := make([]schema.Connector, 0, len(r.connectors))
	for _, c := range r.connectors {
		c := c
		ok := search.Accepts(SearchFields, func(key string) string {
			switch key {
			case "id":
				return c.ID
			case "type":
				return string(c.Type)
			}
			return ""
		})
		if ok {
			connectors = append(connectors, c)
		}
	}
	sort.Slice(connectors, func(i, j int) bool { return connectors[i].ID < connectors[j].ID })
	return connectors
}

func (r *InMemoryConnectorRepository) FindAllConnectors(ctx context.Context, page database.Page, search database.Search) ([]schema.Connector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return database.PageSlice(r.matching(search), page), nil
}

func (r *InMemoryConnectorRepository) CountConnectors(ctx context.Context, search database.Search) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.matching(search))), nil
}

func (r *InMemoryConnectorRepository) FindConnectorByID(ctx context.Context, id string) (schema.Connector, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.connectors[id]
	return c, ok, nil
}

func (r *InMemoryConnectorRepository) InsertConnector(ctx context.Context, create schema.CreateConnector) (schema.Connector, error) {
	if err := schema.Connectors.Validate(create.Record(), true); err != nil {
		return schema.Connector{}, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid record")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.connectors[create.ID]; exists {
		return schema.Connector{}, apperrors.Conflict(schema.Connectors.Table(), "connectors_pkey", nil)
	}

	c := schema.Connector{
		ID:        create.ID,
		Type:      create.Type,
		Config:    map[string]any{},
		CreatedAt: time.Now(),
	}
	if create.Enabled != nil {
		c.Enabled = *create.Enabled
	}
	if create.Config != nil {
		c.Config = create.Config
	}

	r.connectors[c.ID] = c
	return c, nil
}

func (r *InMemoryConnectorRepository) UpdateConnectorByID(ctx context.Context, id string, update schema.UpdateConnector) (schema.Connector, error) {
	if len(update.Record()) == 0 {
		return schema.Connector{}, apperrors.InvalidInput("set", "nothing to update")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.connectors[id]
	if !ok {
		return schema.Connector{}, apperrors.NotFound(schema.Connectors.TableSingular(), id)
	}
	if update.Enabled != nil {
		c.Enabled = *update.Enabled
	}
	if update.Config != nil {
		c.Config = database.MergeJSON(c.Config, update.Config)
	}

	r.connectors[id] = c
	return c, nil
}

func (r *InMemoryConnectorRepository) DeleteConnectorByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.connectors[id]; !ok {
		return apperrors.DeletionError(schema.Connectors.Table(), id)
	}
	delete(r.connectors, id)
	return nil
}
