package role

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/idm-console/pkg/application"
	"github.com/tendant/idm-console/pkg/database"
	"github.com/tendant/idm-console/pkg/database/pgtest"
	apperrors "github.com/tendant/idm-console/pkg/errors"
	"github.com/tendant/idm-console/pkg/schema"
	"github.com/tendant/idm-console/pkg/scope"
	"github.com/tendant/idm-console/pkg/user"
)

func TestRoleServiceAgainstPostgres(t *testing.T) {
	pool := pgtest.NewPool(t)
	ctx := context.Background()

	scopes := scope.NewQueries(pool)
	users := user.NewQueries(pool)
	service := NewRoleService(NewQueries(pool), scopes, users,
		application.NewApplicationService(application.NewQueries(pool)))

	read, err := scopes.InsertScope(ctx, schema.CreateScope{ID: "s1", ResourceID: "api", Name: "read"})
	require.NoError(t, err)

	admin, err := service.CreateRole(ctx, CreateRoleParams{Name: "admin", Description: "Admins", ScopeIDs: []string{read.ID}})
	require.NoError(t, err)
	assert.False(t, admin.CreatedAt.IsZero())

	// the second link violates the role/scope unique key, so the role row
	// is rolled back with it
	_, err = service.CreateRole(ctx, CreateRoleParams{Name: "twice", Description: "x", ScopeIDs: []string{read.ID, read.ID}})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeConflict))
	_, ok, err := NewQueries(pool).FindRoleByRoleName(ctx, "twice", "")
	require.NoError(t, err)
	assert.False(t, ok)

	for _, name := range []string{"ann", "ben", "cat", "dan"} {
		name := name
		_, err := users.InsertUser(ctx, schema.CreateUser{ID: "u-" + name, Username: &name, Name: &name})
		require.NoError(t, err)
	}
	require.NoError(t, service.AssignUsers(ctx, admin.ID, []string{"u-ann", "u-ben", "u-cat", "u-dan"}))

	roles, total, err := service.FindRoles(ctx, database.Page{Page: 1, PageSize: 20}, database.Search{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, roles, 1)
	assert.Equal(t, int64(4), roles[0].UsersCount)
	assert.Len(t, roles[0].FeaturedUsers, 3)

	_, err = service.CreateRole(ctx, CreateRoleParams{Name: "admin", Description: "dup"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeRoleNameInUse))

	first, usersTotal, err := service.FindRoleUsers(ctx, admin.ID, database.Page{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), usersTotal)
	second, _, err := service.FindRoleUsers(ctx, admin.ID, database.Page{Page: 2, PageSize: 2})
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, u := range append(first, second...) {
		assert.False(t, seen[u.ID], "user %s on two pages", u.ID)
		seen[u.ID] = true
	}
	assert.Len(t, seen, 4)

	require.NoError(t, service.RemoveUser(ctx, admin.ID, "u-ann"))
	require.NoError(t, service.DeleteRole(ctx, admin.ID))
	err = service.DeleteRole(ctx, admin.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDeletionFailed))
}
