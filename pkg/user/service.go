package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/tendant/idm-console/pkg/database"
	apperrors "github.com/tendant/idm-console/pkg/errors"
	"github.com/tendant/idm-console/pkg/schema"
)

// CreateUserParams is the body of a user creation request.
type CreateUserParams struct {
	Username     *string        `json:"username"`
	PrimaryEmail *string        `json:"primaryEmail"`
	Name         *string        `json:"name"`
	Avatar       *string        `json:"avatar"`
	CustomData   map[string]any `json:"customData"`
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// FindUsers returns one page and the size of the full filtered set.
func (s *UserService) FindUsers(ctx context.Context, page database.Page, search database.Search) ([]schema.User, int64, error) {
	total, err := s.repo.CountUsers(ctx, search)
	if err != nil {
		return nil, 0, err
	}
	users, err := s.repo.FindAllUsers(ctx, page, search)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// GetUser returns a NotFound error when id does not exist.
func (s *UserService) GetUser(ctx context.Context, id string) (schema.User, error) {
	u, ok, err := s.repo.FindUserByID(ctx, id)
	if err != nil {
		return u, err
	}
	if !ok {
		return u, apperrors.NotFound(schema.Users.TableSingular(), id)
	}
	return u, nil
}

func (s *UserService) FindUsersByIDs(ctx context.Context, ids []string) ([]schema.User, error) {
	return s.repo.FindUsersByIDs(ctx, ids)
}

// CreateUser needs at least a username or a primary email.
func (s *UserService) CreateUser(ctx context.Context, params CreateUserParams) (schema.User, error) {
	if deref(params.Username) == "" && deref(params.PrimaryEmail) == "" {
		return schema.User{}, apperrors.InvalidInput("username", "username or primaryEmail is required")
	}

	var create schema.CreateUser
	if err := copier.Copy(&create, &params); err != nil {
		return schema.User{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to copy user params")
	}
	create.ID = uuid.NewString()

	u, err := s.repo.InsertUser(ctx, create)
	if err != nil {
		slog.Error("Failed to create user", "err", err)
		return u, err
	}
	slog.Info("Created user", "id", u.ID)
	return u, nil
}
