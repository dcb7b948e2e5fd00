package connector

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/tendant/idm-console/pkg/database"
	"github.com/tendant/idm-console/pkg/schema"
)

var identifiers = database.ConvertToIdentifiers(schema.Connectors)

type Queries struct {
	db       database.DBTX
	findAll  database.FindAllFunc[schema.Connector]
	findByID database.FindByIDFunc[schema.Connector]
	insert   database.InsertFunc[schema.Connector]
	update   database.UpdateFunc[schema.Connector]
}

func NewQueries(db database.DBTX) *Queries {
	return &Queries{
		db:       db,
		findAll:  database.BuildFindAllEntities[schema.Connector](db, schema.Connectors, database.OrderBy{Field: "id"}),
		findByID: database.BuildFindEntityByID[schema.Connector](db, schema.Connectors),
		insert:   database.BuildInsertInto[schema.Connector](db, schema.Connectors, database.InsertOptions{Returning: true}),
		update:   database.BuildUpdateWhere[schema.Connector](db, schema.Connectors, true),
	}
}

func searchConditions(search database.Search) sq.Sqlizer {
	return database.BuildConditionsFromSearch(search, identifiers, SearchFields)
}

// FindAllConnectors returns one page ordered by id.
func (q *Queries) FindAllConnectors(ctx context.Context, page database.Page, search database.Search) ([]schema.Connector, error) {
	return q.findAll(ctx, page, searchConditions(search))
}

func (q *Queries) CountConnectors(ctx context.Context, search database.Search) (int64, error) {
	return database.GetTotalRowCount(ctx, q.db, schema.Connectors, searchConditions(search))
}

func (q *Queries) FindConnectorByID(ctx context.Context, id string) (schema.Connector, bool, error) {
	return q.findByID(ctx, id)
}

func (q *Queries) InsertConnector(ctx context.Context, create schema.CreateConnector) (schema.Connector, error) {
	return q.insert(ctx, create.Record())
}

func (q *Queries) UpdateConnectorByID(ctx context.Context, id string, update schema.UpdateConnector) (schema.Connector, error) {
	return q.update(ctx, database.UpdateWhere{
		Set:      update.Record(),
		Where:    schema.Record{"id": id},
		JSONMode: database.JSONMerge,
	})
}

func (q *Queries) DeleteConnectorByID(ctx context.Context, id string) error {
	return database.DeleteByID(ctx, q.db, schema.Connectors, id)
}
