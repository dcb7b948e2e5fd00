package user

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/tendant/idm-console/pkg/database"
	"github.com/tendant/idm-console/pkg/schema"
)

var identifiers = database.ConvertToIdentifiers(schema.Users)

type Queries struct {
	db       database.DBTX
	findAll  database.FindAllFunc[schema.User]
	findByID database.FindByIDFunc[schema.User]
	insert   database.InsertFunc[schema.User]
}

func NewQueries(db database.DBTX) *Queries {
	return &Queries{
		db:       db,
		findAll:  database.BuildFindAllEntities[schema.User](db, schema.Users, database.OrderBy{Field: "createdAt", Direction: database.Desc}),
		findByID: database.BuildFindEntityByID[schema.User](db, schema.Users),
		insert:   database.BuildInsertInto[schema.User](db, schema.Users, database.InsertOptions{Returning: true}),
	}
}

func searchConditions(search database.Search) sq.Sqlizer {
	return database.BuildConditionsFromSearch(search, identifiers, SearchFields)
}

// FindUsersByIDs returns the users among ids. An empty ids returns an empty
// slice without a query.
func (q *Queries) FindUsersByIDs(ctx context.Context, ids []string) ([]schema.User, error) {
	if len(ids) == 0 {
		return []schema.User{}, nil
	}
	return q.findAll(ctx, database.All, sq.Eq{identifiers.Field("id"): ids})
}

func (q *Queries) FindUserByID(ctx context.Context, id string) (schema.User, bool, error) {
	return q.findByID(ctx, id)
}

// FindAllUsers returns one page, newest first.
func (q *Queries) FindAllUsers(ctx context.Context, page database.Page, search database.Search) ([]schema.User, error) {
	return q.findAll(ctx, page, searchConditions(search))
}

func (q *Queries) CountUsers(ctx context.Context, search database.Search) (int64, error) {
	return database.GetTotalRowCount(ctx, q.db, schema.Users, searchConditions(search))
}

func (q *Queries) InsertUser(ctx context.Context, create schema.CreateUser) (schema.User, error) {
	return q.insert(ctx, create.Record())
}
