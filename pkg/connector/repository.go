package connector

import (
	"context"

	"github.com/tendant/idm-console/pkg/database"
	"github.com/tendant/idm-console/pkg/schema"
)

// ConnectorRepository is the storage the connector service runs on.
type ConnectorRepository interface {
	FindAllConnectors(ctx context.Context, page database.Page, search database.Search) ([]schema.Connector, error)
	CountConnectors(ctx context.Context, search database.Search) (int64, error)
	FindConnectorByID(ctx context.Context, id string) (schema.Connector, bool, error)
	InsertConnector(ctx context.Context, create schema.CreateConnector) (schema.Connector, error)
	// UpdateConnectorByID merges update.Config into the stored config.
	UpdateConnectorByID(ctx context.Context, id string, update schema.UpdateConnector) (schema.Connector, error)
	DeleteConnectorByID(ctx context.Context, id string) error
}

// SearchFields are the fields a free-text connector search looks at.
var SearchFields = []string{"id", "type"}
