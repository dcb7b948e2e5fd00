package application

import (
	"context"

	"github.com/tendant/idm-console/pkg/database"
	"github.com/tendant/idm-console/pkg/schema"
)

// ApplicationRepository is the storage the application service runs on.
// Queries implements it on PostgreSQL and InMemoryApplicationRepository in
// memory.
type ApplicationRepository interface {
	FindTotalNumberOfApplications(ctx context.Context) (int64, error)
	FindAllApplications(ctx context.Context, page database.Page, search database.Search) ([]schema.Application, error)
	CountApplications(ctx context.Context, search database.Search) (int64, error)
	FindApplicationByID(ctx context.Context, id string) (schema.Application, bool, error)
	InsertApplication(ctx context.Context, create schema.CreateApplication) (schema.Application, error)
	UpdateApplicationByID(ctx context.Context, id string, update schema.UpdateApplication) (schema.Application, error)
	CountNonM2mApplications(ctx context.Context) (int64, error)
	CountM2mApplications(ctx context.Context) (int64, error)
	CountM2mApplicationsByIDs(ctx context.Context, search database.Search, ids []string) (int64, error)
	FindM2mApplicationsByIDs(ctx context.Context, search database.Search, limit, offset uint64, ids []string) ([]schema.Application, error)
	DeleteApplicationByID(ctx context.Context, id string) error
}

// SearchFields are the fields a free-text application search looks at.
var SearchFields = []string{"id", "name", "description"}
