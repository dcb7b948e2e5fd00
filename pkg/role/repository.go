package role

import (
	"context"

	"github.com/tendant/idm-console/pkg/database"
	"github.com/tendant/idm-console/pkg/schema"
)

// RoleRepository is the storage the role service runs on. Queries implements
// it on PostgreSQL and InMemoryRoleRepository in memory.
type RoleRepository interface {
	FindRoles(ctx context.Context, page database.Page, search database.Search) ([]schema.Role, error)
	CountRoles(ctx context.Context, search database.Search) (int64, error)
	FindRoleByID(ctx context.Context, id string) (schema.Role, bool, error)
	// FindRoleByRoleName looks a role up by exact name. A non-empty excludeID
	// skips that role, so a role being renamed does not collide with itself.
	FindRoleByRoleName(ctx context.Context, name, excludeID string) (schema.Role, bool, error)
	FindRolesByRoleIDs(ctx context.Context, ids []string) ([]schema.Role, error)
	InsertRole(ctx context.Context, create schema.CreateRole) (schema.Role, error)
	UpdateRoleByID(ctx context.Context, id string, update schema.UpdateRole) (schema.Role, error)
	DeleteRoleByID(ctx context.Context, id string) error

	CountUsersRolesByRoleID(ctx context.Context, roleID string) (int64, error)
	// FindUserIDsByRoleID returns one page of the users holding a role, newest
	// user first. database.All returns every one of them.
	FindUserIDsByRoleID(ctx context.Context, roleID string, page database.Page) ([]string, error)
	InsertUsersRoles(ctx context.Context, links []schema.UsersRole) error
	DeleteUsersRolesByUserIDAndRoleID(ctx context.Context, userID, roleID string) error

	InsertRolesScopes(ctx context.Context, links []schema.RolesScope) error

	FindApplicationIDsByRoleID(ctx context.Context, roleID string) ([]string, error)
	InsertApplicationsRoles(ctx context.Context, links []schema.ApplicationsRole) error

	// WithTx runs fn against a repository whose writes commit together or
	// not at all.
	WithTx(ctx context.Context, fn func(repo RoleRepository) error) error
}

// SearchFields are the fields a free-text role search looks at.
var SearchFields = []string{"id", "name", "description"}

// ScopeFinder looks up the scopes a new role is granted.
type ScopeFinder interface {
	FindScopeByID(ctx context.Context, id string) (schema.Scope, bool, error)
}

// UserFinder loads the users behind users_roles links.
type UserFinder interface {
	FindUsersByIDs(ctx context.Context, ids []string) ([]schema.User, error)
}

// ApplicationFinder pages through the machine-to-machine applications among
// ids.
type ApplicationFinder interface {
	FindM2mApplications(ctx context.Context, ids []string, page database.Page, search database.Search) ([]schema.Application, int64, error)
}
