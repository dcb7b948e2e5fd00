package scope

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	apperrors "github.com/tendant/idm-console/pkg/errors"
	"github.com/tendant/idm-console/pkg/schema"
)

// CreateScopeParams is the body of a scope creation request.
type CreateScopeParams struct {
	ResourceID  string  `json:"resourceId"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type ScopeService struct {
	repo ScopeRepository
}

func NewScopeService(repo ScopeRepository) *ScopeService {
	return &ScopeService{
		repo: repo,
	}
}

// GetScope returns a NotFound error when id does not exist.
func (s *ScopeService) GetScope(ctx context.Context, id string) (schema.Scope, error) {
	found, ok, err := s.repo.FindScopeByID(ctx, id)
	if err != nil {
		return found, err
	}
	if !ok {
		return found, apperrors.NotFound(schema.Scopes.TableSingular(), id)
	}
	return found, nil
}

func (s *ScopeService) FindScopeByID(ctx context.Context, id string) (schema.Scope, bool, error) {
	return s.repo.FindScopeByID(ctx, id)
}

func (s *ScopeService) FindScopesByIDs(ctx context.Context, ids []string) ([]schema.Scope, error) {
	return s.repo.FindScopesByIDs(ctx, ids)
}

// CreateScope adds a scope to a resource. Names are unique per resource.
func (s *ScopeService) CreateScope(ctx context.Context, params CreateScopeParams) (schema.Scope, error) {
	if strings.TrimSpace(params.ResourceID) == "" {
		return schema.Scope{}, apperrors.InvalidInput("resourceId", "must not be empty")
	}
	if strings.TrimSpace(params.Name) == "" {
		return schema.Scope{}, apperrors.InvalidInput("name", "must not be empty")
	}

	var create schema.CreateScope
	if err := copier.Copy(&create, &params); err != nil {
		return schema.Scope{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to copy scope params")
	}
	create.ID = uuid.NewString()

	created, err := s.repo.InsertScope(ctx, create)
	if err != nil {
		slog.Error("Failed to create scope", "name", params.Name, "err", err)
		return created, err
	}
	slog.Info("Created scope", "id", created.ID, "resource", created.ResourceID, "name", created.Name)
	return created, nil
}
