package application

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/tendant/idm-console/pkg/database"
	apperrors "github.com/tendant/idm-console/pkg/errors"
	"github.com/tendant/idm-console/pkg/schema"
	"github.com/tendant/idm-console/pkg/utils"
)

const secretLength = 32

// CreateApplicationParams is what a caller supplies to create an
// application. The id and secret are generated.
type CreateApplicationParams struct {
	Name                 string                 `json:"name"`
	Description          *string                `json:"description"`
	Type                 schema.ApplicationType `json:"type"`
	OidcClientMetadata   map[string]any         `json:"oidcClientMetadata"`
	CustomClientMetadata map[string]any         `json:"customClientMetadata"`
	IsThirdParty         *bool                  `json:"isThirdParty"`
}

// Totals counts applications by category.
type Totals struct {
	All    int64 `json:"all"`
	M2m    int64 `json:"m2m"`
	NonM2m int64 `json:"nonM2m"`
}

// ApplicationService provides methods for application management
type ApplicationService struct {
	repo ApplicationRepository
}

func NewApplicationService(repo ApplicationRepository) *ApplicationService {
	return &ApplicationService{
		repo: repo,
	}
}

// FindApplications returns one page and the size of the full filtered set.
func (s *ApplicationService) FindApplications(ctx context.Context, page database.Page, search database.Search) ([]schema.Application, int64, error) {
	total, err := s.repo.CountApplications(ctx, search)
	if err != nil {
		return nil, 0, err
	}
	apps, err := s.repo.FindAllApplications(ctx, page, search)
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

// GetApplication returns a NotFound error when id does not exist.
func (s *ApplicationService) GetApplication(ctx context.Context, id string) (schema.Application, error) {
	app, ok, err := s.repo.FindApplicationByID(ctx, id)
	if err != nil {
		return app, err
	}
	if !ok {
		return app, apperrors.NotFound(schema.Applications.TableSingular(), id)
	}
	return app, nil
}

// CreateApplication adds a new application
func (s *ApplicationService) CreateApplication(ctx context.Context, params CreateApplicationParams) (schema.Application, error) {
	if strings.TrimSpace(params.Name) == "" {
		return schema.Application{}, apperrors.InvalidInput("name", "must not be empty")
	}
	if !params.Type.Valid() {
		return schema.Application{}, apperrors.InvalidInput("type", "unknown application type "+string(params.Type))
	}

	var create schema.CreateApplication
	if err := copier.Copy(&create, &params); err != nil {
		return schema.Application{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to copy application params")
	}
	secret, err := utils.GenerateSecret(secretLength)
	if err != nil {
		return schema.Application{}, err
	}
	create.ID = uuid.NewString()
	create.Secret = secret

	app, err := s.repo.InsertApplication(ctx, create)
	if err != nil {
		slog.Error("Failed to create application", "name", params.Name, "err", err)
		return app, err
	}
	slog.Info("Created application", "id", app.ID, "type", app.Type)
	return app, nil
}

// UpdateApplication applies a patch. An empty patch returns the stored
// application unchanged.
func (s *ApplicationService) UpdateApplication(ctx context.Context, id string, patch schema.UpdateApplication) (schema.Application, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return schema.Application{}, apperrors.InvalidInput("name", "must not be empty")
	}
	if len(patch.Record()) == 0 {
		return s.GetApplication(ctx, id)
	}
	return s.repo.UpdateApplicationByID(ctx, id, patch)
}

// DeleteApplication removes an application. Deleting an unknown id fails.
func (s *ApplicationService) DeleteApplication(ctx context.Context, id string) error {
	if err := s.repo.DeleteApplicationByID(ctx, id); err != nil {
		return err
	}
	slog.Info("Deleted application", "id", id)
	return nil
}

func (s *ApplicationService) Totals(ctx context.Context) (Totals, error) {
	var totals Totals
	var err error
	if totals.All, err = s.repo.FindTotalNumberOfApplications(ctx); err != nil {
		return totals, err
	}
	if totals.M2m, err = s.repo.CountM2mApplications(ctx); err != nil {
		return totals, err
	}
	if totals.NonM2m, err = s.repo.CountNonM2mApplications(ctx); err != nil {
		return totals, err
	}
	return totals, nil
}

// FindM2mApplications pages through the machine-to-machine applications
// among ids. Used for the applications holding a role.
func (s *ApplicationService) FindM2mApplications(ctx context.Context, ids []string, page database.Page, search database.Search) ([]schema.Application, int64, error) {
	total, err := s.repo.CountM2mApplicationsByIDs(ctx, search, ids)
	if err != nil {
		return nil, 0, err
	}
	limit := page.Limit()
	if page.PageSize <= 0 {
		limit = uint64(len(ids))
	}
	apps, err := s.repo.FindM2mApplicationsByIDs(ctx, search, limit, page.Offset(), ids)
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}
