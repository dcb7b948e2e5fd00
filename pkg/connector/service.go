package connector

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/tendant/idm-console/pkg/database"
	apperrors "github.com/tendant/idm-console/pkg/errors"
	"github.com/tendant/idm-console/pkg/schema"
)

// CreateConnectorParams is the body of a connector creation request. An
// empty ID is generated.
type CreateConnectorParams struct {
	ID      string               `json:"id"`
	Type    schema.ConnectorType `json:"type"`
	Enabled *bool                `json:"enabled"`
	Config  map[string]any       `json:"config"`
}

type ConnectorService struct {
	repo ConnectorRepository
}

func NewConnectorService(repo ConnectorRepository) *ConnectorService {
	return &ConnectorService{
		repo: repo,
	}
}

// FindConnectors returns one page and the size of the full filtered set.
func (s *ConnectorService) FindConnectors(ctx context.Context, page database.Page, search database.Search) ([]schema.Connector, int64, error) {
	total, err := s.repo.CountConnectors(ctx, search)
	if err != nil {
		return nil, 0, err
	}
	connectors, err := s.repo.FindAllConnectors(ctx, page, search)
	if err != nil {
		return nil, 0, err
	}
	return connectors, total, nil
}

// GetConnector returns a NotFound error when id does not exist.
func (s *ConnectorService) GetConnector(ctx context.Context, id string) (schema.Connector, error) {
	c, ok, err := s.repo.FindConnectorByID(ctx, id)
	if err != nil {
		return c, err
	}
	if !ok {
		return c, apperrors.NotFound(schema.Connectors.TableSingular(), id)
	}
	return c, nil
}

func (s *ConnectorService) CreateConnector(ctx context.Context, params CreateConnectorParams) (schema.Connector, error) {
	if !params.Type.Valid() {
		return schema.Connector{}, apperrors.InvalidInput("type", "unknown connector type "+string(params.Type))
	}

	var create schema.CreateConnector
	if err := copier.Copy(&create, &params); err != nil {
		return schema.Connector{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to copy connector params")
	}
	if create.ID == "" {
		create.ID = uuid.NewString()
	}

	c, err := s.repo.InsertConnector(ctx, create)
	if err != nil {
		slog.Error("Failed to create connector", "id", create.ID, "err", err)
		return c, err
	}
	slog.Info("Created connector", "id", c.ID, "type", c.Type)
	return c, nil
}

// UpdateConnector enables or disables a connector and merges config keys
// into the stored config. An empty patch returns the connector unchanged.
func (s *ConnectorService) UpdateConnector(ctx context.Context, id string, patch schema.UpdateConnector) (schema.Connector, error) {
	if len(patch.Record()) == 0 {
		return s.GetConnector(ctx, id)
	}
	return s.repo.UpdateConnectorByID(ctx, id, patch)
}

func (s *ConnectorService) DeleteConnector(ctx context.Context, id string) error {
	if err := s.repo.DeleteConnectorByID(ctx, id); err != nil {
		return err
	}
	slog.Info("Deleted connector", "id", id)
	return nil
}
