package scope

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/tendant/idm-console/pkg/database"
	"github.com/tendant/idm-console/pkg/schema"
)

var identifiers = database.ConvertToIdentifiers(schema.Scopes)

type Queries struct {
	findAll  database.FindAllFunc[schema.Scope]
	findByID database.FindByIDFunc[schema.Scope]
	insert   database.InsertFunc[schema.Scope]
}

func NewQueries(db database.DBTX) *Queries {
	return &Queries{
		findAll:  database.BuildFindAllEntities[schema.Scope](db, schema.Scopes, database.OrderBy{Field: "name"}),
		findByID: database.BuildFindEntityByID[schema.Scope](db, schema.Scopes),
		insert:   database.BuildInsertInto[schema.Scope](db, schema.Scopes, database.InsertOptions{Returning: true}),
	}
}

func (q *Queries) FindScopeByID(ctx context.Context, id string) (schema.Scope, bool, error) {
	return q.findByID(ctx, id)
}

// FindScopesByIDs returns the scopes among ids ordered by name. An empty ids
// returns an empty slice without a query.
func (q *Queries) FindScopesByIDs(ctx context.Context, ids []string) ([]schema.Scope, error) {
	if len(ids) == 0 {
		return []schema.Scope{}, nil
	}
	return q.findAll(ctx, database.All, sq.Eq{identifiers.Field("id"): ids})
}

func (q *Queries) InsertScope(ctx context.Context, create schema.CreateScope) (schema.Scope, error) {
	return q.insert(ctx, create.Record())
}
