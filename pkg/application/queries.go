package application

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/tendant/idm-console/pkg/database"
	"github.com/tendant/idm-console/pkg/schema"
)

var identifiers = database.ConvertToIdentifiers(schema.Applications)

// Queries runs application queries against one handle, which may be a pool
// or a transaction.
type Queries struct {
	db       database.DBTX
	findAll  database.FindAllFunc[schema.Application]
	findByID database.FindByIDFunc[schema.Application]
	insert   database.InsertFunc[schema.Application]
	update   database.UpdateFunc[schema.Application]
}

func NewQueries(db database.DBTX) *Queries {
	return &Queries{
		db:       db,
		findAll:  database.BuildFindAllEntities[schema.Application](db, schema.Applications, database.OrderBy{Field: "createdAt", Direction: database.Desc}),
		findByID: database.BuildFindEntityByID[schema.Application](db, schema.Applications),
		insert:   database.BuildInsertInto[schema.Application](db, schema.Applications, database.InsertOptions{Returning: true}),
		update:   database.BuildUpdateWhere[schema.Application](db, schema.Applications, true),
	}
}

func searchConditions(search database.Search) sq.Sqlizer {
	return database.BuildConditionsFromSearch(search, identifiers, SearchFields)
}

// m2mWithIDs restricts to machine-to-machine applications among ids.
func m2mWithIDs(ids []string) sq.Sqlizer {
	return sq.And{
		sq.Eq{identifiers.Field("type"): string(schema.ApplicationTypeMachineToMachine)},
		sq.Eq{identifiers.Field("id"): ids},
	}
}

func (q *Queries) FindTotalNumberOfApplications(ctx context.Context) (int64, error) {
	return database.GetTotalRowCount(ctx, q.db, schema.Applications)
}

// FindAllApplications returns one page, newest first.
func (q *Queries) FindAllApplications(ctx context.Context, page database.Page, search database.Search) ([]schema.Application, error) {
	return q.findAll(ctx, page, searchConditions(search))
}

func (q *Queries) CountApplications(ctx context.Context, search database.Search) (int64, error) {
	return database.GetTotalRowCount(ctx, q.db, schema.Applications, searchConditions(search))
}

func (q *Queries) FindApplicationByID(ctx context.Context, id string) (schema.Application, bool, error) {
	return q.findByID(ctx, id)
}

func (q *Queries) InsertApplication(ctx context.Context, create schema.CreateApplication) (schema.Application, error) {
	return q.insert(ctx, create.Record())
}

// UpdateApplication is the general update. Callers choose the condition and
// the JSON mode.
func (q *Queries) UpdateApplication(ctx context.Context, update database.UpdateWhere) (schema.Application, error) {
	return q.update(ctx, update)
}

// UpdateApplicationByID patches one application. Metadata objects are merged
// into the stored ones.
func (q *Queries) UpdateApplicationByID(ctx context.Context, id string, update schema.UpdateApplication) (schema.Application, error) {
	return q.update(ctx, database.UpdateWhere{
		Set:      update.Record(),
		Where:    schema.Record{"id": id},
		JSONMode: database.JSONMerge,
	})
}

func (q *Queries) CountNonM2mApplications(ctx context.Context) (int64, error) {
	return database.GetTotalRowCount(ctx, q.db, schema.Applications,
		sq.NotEq{identifiers.Field("type"): string(schema.ApplicationTypeMachineToMachine)})
}

func (q *Queries) CountM2mApplications(ctx context.Context) (int64, error) {
	return database.GetTotalRowCount(ctx, q.db, schema.Applications,
		sq.Eq{identifiers.Field("type"): string(schema.ApplicationTypeMachineToMachine)})
}

// CountM2mApplicationsByIDs counts machine-to-machine applications among ids
// that match search. An empty ids returns 0 without a query.
func (q *Queries) CountM2mApplicationsByIDs(ctx context.Context, search database.Search, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return database.GetTotalRowCount(ctx, q.db, schema.Applications, m2mWithIDs(ids), searchConditions(search))
}

// FindM2mApplicationsByIDs is the listing that goes with
// CountM2mApplicationsByIDs. An empty ids returns an empty slice without a
// query.
func (q *Queries) FindM2mApplicationsByIDs(ctx context.Context, search database.Search, limit, offset uint64, ids []string) ([]schema.Application, error) {
	if len(ids) == 0 {
		return []schema.Application{}, nil
	}

	sel := database.Builder().
		Select(identifiers.Columns()...).
		From(identifiers.Table).
		Where(m2mWithIDs(ids))
	if cond := searchConditions(search); cond != nil {
		sel = sel.Where(cond)
	}
	sel = sel.OrderBy(identifiers.Field("createdAt") + " DESC").Limit(limit).Offset(offset)

	apps, err := database.QueryAll[schema.Application](ctx, q.db, sel)
	if err != nil {
		return nil, fmt.Errorf("failed to find m2m applications: %w", err)
	}
	return apps, nil
}

// DeleteApplicationByID fails with a deletion error when no row has id.
func (q *Queries) DeleteApplicationByID(ctx context.Context, id string) error {
	return database.DeleteByID(ctx, q.db, schema.Applications, id)
}
