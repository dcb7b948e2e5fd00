package role

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/tendant/idm-console/pkg/database"
	apperrors "github.com/tendant/idm-console/pkg/errors"
	"github.com/tendant/idm-console/pkg/schema"
)

// featuredUsersLimit is how many users a role listing shows per role.
const featuredUsersLimit = 3

// CreateRoleParams is the body of a role creation request.
type CreateRoleParams struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Type        schema.RoleType `json:"type"`
	IsDefault   *bool           `json:"isDefault"`
	ScopeIDs    []string        `json:"scopeIds"`
}

// FeaturedUser is the short form of a user shown next to a role.
type FeaturedUser struct {
	ID     string  `json:"id"`
	Avatar *string `json:"avatar"`
	Name   *string `json:"name"`
}

// RoleWithUsers is a role as the role listing returns it.
type RoleWithUsers struct {
	schema.Role
	UsersCount    int64          `json:"usersCount"`
	FeaturedUsers []FeaturedUser `json:"featuredUsers"`
}

// RoleService provides methods for role management
type RoleService struct {
	repo         RoleRepository
	scopes       ScopeFinder
	users        UserFinder
	applications ApplicationFinder
}

func NewRoleService(repo RoleRepository, scopes ScopeFinder, users UserFinder, applications ApplicationFinder) *RoleService {
	return &RoleService{
		repo:         repo,
		scopes:       scopes,
		users:        users,
		applications: applications,
	}
}

// FindRoles returns one page of roles with their user counts and a few of
// their users, and the size of the full filtered set.
func (s *RoleService) FindRoles(ctx context.Context, page database.Page, search database.Search) ([]RoleWithUsers, int64, error) {
	total, err := s.repo.CountRoles(ctx, search)
	if err != nil {
		return nil, 0, err
	}
	roles, err := s.repo.FindRoles(ctx, page, search)
	if err != nil {
		return nil, 0, err
	}

	result := make([]RoleWithUsers, 0, len(roles))
	for _, role := range roles {
		withUsers, err := s.withUsers(ctx, role)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, withUsers)
	}
	return result, total, nil
}

func (s *RoleService) withUsers(ctx context.Context, role schema.Role) (RoleWithUsers, error) {
	count, err := s.repo.CountUsersRolesByRoleID(ctx, role.ID)
	if err != nil {
		return RoleWithUsers{}, err
	}
	users, err := s.usersOfRole(ctx, role.ID, database.Page{Page: 1, PageSize: featuredUsersLimit})
	if err != nil {
		return RoleWithUsers{}, err
	}

	featured := make([]FeaturedUser, 0, len(users))
	for _, user := range users {
		featured = append(featured, FeaturedUser{ID: user.ID, Avatar: user.Avatar, Name: user.Name})
	}
	return RoleWithUsers{Role: role, UsersCount: count, FeaturedUsers: featured}, nil
}

// usersOfRole loads one page of a role's users in the order the repository
// pages them.
func (s *RoleService) usersOfRole(ctx context.Context, roleID string, page database.Page) ([]schema.User, error) {
	ids, err := s.repo.FindUserIDsByRoleID(ctx, roleID, page)
	if err != nil {
		return nil, err
	}
	users, err := s.users.FindUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]schema.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}
	ordered := make([]schema.User, 0, len(users))
	for _, id := range ids {
		if user, ok := byID[id]; ok {
			ordered = append(ordered, user)
		}
	}
	return ordered, nil
}

// GetRole returns a NotFound error when id does not exist.
func (s *RoleService) GetRole(ctx context.Context, id string) (schema.Role, error) {
	role, ok, err := s.repo.FindRoleByID(ctx, id)
	if err != nil {
		return role, err
	}
	if !ok {
		return role, apperrors.NotFound(schema.Roles.TableSingular(), id)
	}
	return role, nil
}

func nameInUse(name string) error {
	return apperrors.Newf(apperrors.ErrCodeRoleNameInUse, "role name %q is already in use", name).
		WithDetail("name", name)
}

// CreateRole adds a role and grants it scopeIds in one transaction. The name
// must be unused and every scope must exist.
func (s *RoleService) CreateRole(ctx context.Context, params CreateRoleParams) (schema.Role, error) {
	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" {
		return schema.Role{}, apperrors.InvalidInput("name", "must not be empty")
	}
	if strings.TrimSpace(params.Description) == "" {
		return schema.Role{}, apperrors.InvalidInput("description", "must not be empty")
	}
	if params.Type == "" {
		params.Type = schema.RoleTypeUser
	}
	if !params.Type.Valid() {
		return schema.Role{}, apperrors.InvalidInput("type", "unknown role type "+string(params.Type))
	}

	if _, exists, err := s.repo.FindRoleByRoleName(ctx, params.Name, ""); err != nil {
		return schema.Role{}, err
	} else if exists {
		return schema.Role{}, nameInUse(params.Name)
	}

	for _, scopeID := range params.ScopeIDs {
		if _, ok, err := s.scopes.FindScopeByID(ctx, scopeID); err != nil {
			return schema.Role{}, err
		} else if !ok {
			return schema.Role{}, apperrors.Newf(apperrors.ErrCodeScopeNotFound, "scope %s does not exist", scopeID).
				WithDetail("id", scopeID)
		}
	}

	var create schema.CreateRole
	if err := copier.Copy(&create, &params); err != nil {
		return schema.Role{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to copy role params")
	}
	create.ID = uuid.NewString()

	var role schema.Role
	err := s.repo.WithTx(ctx, func(tx RoleRepository) error {
		var err error
		if role, err = tx.InsertRole(ctx, create); err != nil {
			return err
		}
		if len(params.ScopeIDs) == 0 {
			return nil
		}
		links := make([]schema.RolesScope, 0, len(params.ScopeIDs))
		for _, scopeID := range params.ScopeIDs {
			links = append(links, schema.RolesScope{ID: uuid.NewString(), RoleID: role.ID, ScopeID: scopeID})
		}
		return tx.InsertRolesScopes(ctx, links)
	})
	if err != nil {
		slog.Error("Failed to create role", "name", params.Name, "err", err)
		return schema.Role{}, err
	}

	slog.Info("Created role", "id", role.ID, "name", role.Name, "scopes", len(params.ScopeIDs))
	return role, nil
}

// UpdateRole applies a patch. Renaming to a name another role has fails.
func (s *RoleService) UpdateRole(ctx context.Context, id string, patch schema.UpdateRole) (schema.Role, error) {
	role, err := s.GetRole(ctx, id)
	if err != nil {
		return role, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return schema.Role{}, apperrors.InvalidInput("name", "must not be empty")
		}
		if _, exists, err := s.repo.FindRoleByRoleName(ctx, name, id); err != nil {
			return schema.Role{}, err
		} else if exists {
			return schema.Role{}, nameInUse(name)
		}
		patch.Name = &name
	}
	if len(patch.Record()) == 0 {
		return role, nil
	}

	return s.repo.UpdateRoleByID(ctx, id, patch)
}

// DeleteRole removes a role. Deleting an unknown id fails.
func (s *RoleService) DeleteRole(ctx context.Context, id string) error {
	if err := s.repo.DeleteRoleByID(ctx, id); err != nil {
		return err
	}
	slog.Info("Deleted role", "id", id)
	return nil
}

// FindRoleUsers pages through the users holding a role, newest user first.
func (s *RoleService) FindRoleUsers(ctx context.Context, roleID string, page database.Page) ([]schema.User, int64, error) {
	if _, err := s.GetRole(ctx, roleID); err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountUsersRolesByRoleID(ctx, roleID)
	if err != nil {
		return nil, 0, err
	}
	users, err := s.usersOfRole(ctx, roleID, page)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// AssignUsers grants a role to users. Every user must exist.
func (s *RoleService) AssignUsers(ctx context.Context, roleID string, ids []string) error {
	ids = unique(ids)
	if len(ids) == 0 {
		return apperrors.InvalidInput("userIds", "must not be empty")
	}
	role, err := s.GetRole(ctx, roleID)
	if err != nil {
		return err
	}
	if role.Type != schema.RoleTypeUser {
		return apperrors.Newf(apperrors.ErrCodeValidationFailed, "role %s cannot be assigned to users", roleID)
	}

	users, err := s.users.FindUsersByIDs(ctx, ids)
	if err != nil {
		return err
	}
	found := make(map[string]bool, len(users))
	for _, user := range users {
		found[user.ID] = true
	}
	links := make([]schema.UsersRole, 0, len(ids))
	for _, userID := range ids {
		if !found[userID] {
			return apperrors.NotFound(schema.Users.TableSingular(), userID)
		}
		links = append(links, schema.UsersRole{ID: uuid.NewString(), UserID: userID, RoleID: roleID})
	}

	return s.repo.WithTx(ctx, func(tx RoleRepository) error {
		return tx.InsertUsersRoles(ctx, links)
	})
}

// RemoveUser takes a role away from a user.
func (s *RoleService) RemoveUser(ctx context.Context, roleID, userID string) error {
	return s.repo.DeleteUsersRolesByUserIDAndRoleID(ctx, userID, roleID)
}

// FindRoleApplications pages through the machine-to-machine applications
// holding a role.
func (s *RoleService) FindRoleApplications(ctx context.Context, roleID string, page database.Page, search database.Search) ([]schema.Application, int64, error) {
	if _, err := s.GetRole(ctx, roleID); err != nil {
		return nil, 0, err
	}
	ids, err := s.repo.FindApplicationIDsByRoleID(ctx, roleID)
	if err != nil {
		return nil, 0, err
	}
	return s.applications.FindM2mApplications(ctx, ids, page, search)
}

// AssignApplications grants a machine-to-machine role to applications of
// the same type.
func (s *RoleService) AssignApplications(ctx context.Context, roleID string, applicationIDs []string) error {
	applicationIDs = unique(applicationIDs)
	if len(applicationIDs) == 0 {
		return apperrors.InvalidInput("applicationIds", "must not be empty")
	}
	role, err := s.GetRole(ctx, roleID)
	if err != nil {
		return err
	}
	if role.Type != schema.RoleTypeMachineToMachine {
		return apperrors.Newf(apperrors.ErrCodeValidationFailed, "role %s cannot be assigned to applications", roleID)
	}

	_, count, err := s.applications.FindM2mApplications(ctx, applicationIDs, database.All, database.Search{})
	if err != nil {
		return err
	}
	if count != int64(len(applicationIDs)) {
		return apperrors.New(apperrors.ErrCodeValidationFailed, "only existing machine-to-machine applications can hold this role")
	}

	links := make([]schema.ApplicationsRole, 0, len(applicationIDs))
	for _, appID := range applicationIDs {
		links = append(links, schema.ApplicationsRole{ID: uuid.NewString(), ApplicationID: appID, RoleID: roleID})
	}
	return s.repo.WithTx(ctx, func(tx RoleRepository) error {
		return tx.InsertApplicationsRoles(ctx, links)
	})
}

func unique(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
