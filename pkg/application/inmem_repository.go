package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tendant/idm-console/pkg/database"
	apperrors "github.com/tendant/idm-console/pkg/errors"
	"github.com/tendant/idm-console/pkg/schema"
)

// InMemoryApplicationRepository implements ApplicationRepository using in-memory storage
type InMemoryApplicationRepository struct {
	mu   sync.RWMutex
	apps map[string]schema.Application
	now  func() time.Time
}

// NewInMemoryApplicationRepository creates a new in-memory application repository
func NewInMemoryApplicationRepository() *InMemoryApplicationRepository {
	return &InMemoryApplicationRepository{
		apps: make(map[string]schema.Application),
		now:  time.Now,
	}
}

func fieldValue(app schema.Application) func(string) string {
	return func(key string) string {
		switch key {
		case "id":
			return app.ID
		case "name":
			return app.Name
		case "description":
			if app.Description != nil {
				return *app.Description
			}
		}
		return ""
	}
}

// filter returns matching applications newest first. Callers hold the lock.
func (r *InMemoryApplicationRepository) filter(keep func(schema.Application) bool) []schema.Application {
	apps := make([]schema.Application, 0, len(r.apps))
	for _, app := range r.apps {
		if keep(app) {
			apps = append(apps, app)
		}
	}
	sort.Slice(apps, func(i, j int) bool {
		if !apps[i].CreatedAt.Equal(apps[j].CreatedAt) {
			return apps[i].CreatedAt.After(apps[j].CreatedAt)
		}
		return apps[i].ID < apps[j].ID
	})
	return apps
}

func (r *InMemoryApplicationRepository) FindTotalNumberOfApplications(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.apps)), nil
}

func (r *InMemoryApplicationRepository) FindAllApplications(ctx context.Context, page database.Page, search database.Search) ([]schema.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	apps := r.filter(func(app schema.Application) bool {
		return search.Accepts(SearchFields, fieldValue(app))
	})
	return database.PageSlice(apps, page), nil
}

func (r *InMemoryApplicationRepository) CountApplications(ctx context.Context, search database.Search) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	apps := r.filter(func(app schema.Application) bool {
		return search.Accepts(SearchFields, fieldValue(app))
	})
	return int64(len(apps)), nil
}

func (r *InMemoryApplicationRepository) FindApplicationByID(ctx context.Context, id string) (schema.Application, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	app, ok := r.apps[id]
	return app, ok, nil
}

func (r *InMemoryApplicationRepository) InsertApplication(ctx context.Context, create schema.CreateApplication) (schema.Application, error) {
	if err := schema.Applications.Validate(create.Record(), true); err != nil {
		return schema.Application{}, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid record")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.apps[create.ID]; exists {
		return schema.Application{}, apperrors.Conflict(schema.Applications.Table(), "applications_pkey", nil)
	}

	app := schema.Application{
		ID:                   create.ID,
		Name:                 create.Name,
		Secret:               create.Secret,
		Description:          create.Description,
		Type:                 create.Type,
		OidcClientMetadata:   map[string]any{},
		CustomClientMetadata: map[string]any{},
		CreatedAt:            r.now(),
	}
	if create.OidcClientMetadata != nil {
		app.OidcClientMetadata = create.OidcClientMetadata
	}
	if create.CustomClientMetadata != nil {
		app.CustomClientMetadata = create.CustomClientMetadata
	}
	if create.IsThirdParty != nil {
		app.IsThirdParty = *create.IsThirdParty
	}
	if create.CreatedAt != nil {
		app.CreatedAt = *create.CreatedAt
	}

	r.apps[app.ID] = app
	return app, nil
}

func (r *InMemoryApplicationRepository) UpdateApplicationByID(ctx context.Context, id string, update schema.UpdateApplication) (schema.Application, error) {
	if len(update.Record()) == 0 {
		return schema.Application{}, apperrors.InvalidInput("set", "nothing to update")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.apps[id]
	if !ok {
		return schema.Application{}, apperrors.NotFound(schema.Applications.TableSingular(), id)
	}

	if update.Name != nil {
		app.Name = *update.Name
	}
	if update.Description != nil {
		description := *update.Description
		app.Description = &description
	}
	if update.OidcClientMetadata != nil {
		app.OidcClientMetadata = database.MergeJSON(app.OidcClientMetadata, update.OidcClientMetadata)
	}
	if update.CustomClientMetadata != nil {
		app.CustomClientMetadata = database.MergeJSON(app.CustomClientMetadata, update.CustomClientMetadata)
	}
	if update.IsThirdParty != nil {
		app.IsThirdParty = *update.IsThirdParty
	}

	r.apps[id] = app
	return app, nil
}

func (r *InMemoryApplicationRepository) countType(m2m bool) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, app := range r.apps {
		if (app.Type == schema.ApplicationTypeMachineToMachine) == m2m {
			count++
		}
	}
	return count
}

func (r *InMemoryApplicationRepository) CountNonM2mApplications(ctx context.Context) (int64, error) {
	return r.countType(false), nil
}

func (r *InMemoryApplicationRepository) CountM2mApplications(ctx context.Context) (int64, error) {
	return r.countType(true), nil
}

func (r *InMemoryApplicationRepository) m2mByIDs(search database.Search, ids []string) []schema.Application {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	return r.filter(func(app schema.Application) bool {
		return wanted[app.ID] &&
			app.Type == schema.ApplicationTypeMachineToMachine &&
			search.Accepts(SearchFields, fieldValue(app))
	})
}

func (r *InMemoryApplicationRepository) CountM2mApplicationsByIDs(ctx context.Context, search database.Search, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.m2mByIDs(search, ids))), nil
}

func (r *InMemoryApplicationRepository) FindM2mApplicationsByIDs(ctx context.Context, search database.Search, limit, offset uint64, ids []string) ([]schema.Application, error) {
	if len(ids) == 0 {
		return []schema.Application{}, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return database.Window(r.m2mByIDs(search, ids), limit, offset), nil
}

func (r *InMemoryApplicationRepository) DeleteApplicationByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.apps[id]; !ok {
		return apperrors.DeletionError(schema.Applications.Table(), id)
	}
	delete(r.apps, id)
	return nil
}
