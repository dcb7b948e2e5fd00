package role

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/tendant/idm-console/pkg/database"
	apperrors "github.com/tendant/idm-console/pkg/errors"
	"github.com/tendant/idm-console/pkg/schema"
)

var (
	roleIdentifiers             = database.ConvertToIdentifiers(schema.Roles)
	userIdentifiers             = database.ConvertToIdentifiers(schema.Users)
	usersRoleIdentifiers        = database.ConvertToIdentifiers(schema.UsersRoles)
	applicationsRoleIdentifiers = database.ConvertToIdentifiers(schema.ApplicationsRoles)
)

// Queries runs role, users_roles, roles_scopes and applications_roles
// queries against one handle.
type Queries struct {
	db       database.DBTX
	findAll  database.FindAllFunc[schema.Role]
	findByID database.FindByIDFunc[schema.Role]
	insert   database.InsertFunc[schema.Role]
	update   database.UpdateFunc[schema.Role]

	insertUsersRole        database.InsertFunc[schema.UsersRole]
	insertRolesScope       database.InsertFunc[schema.RolesScope]
	insertApplicationsRole database.InsertFunc[schema.ApplicationsRole]
}

func NewQueries(db database.DBTX) *Queries {
	return &Queries{
		db:       db,
		findAll:  database.BuildFindAllEntities[schema.Role](db, schema.Roles, database.OrderBy{Field: "createdAt", Direction: database.Desc}),
		findByID: database.BuildFindEntityByID[schema.Role](db, schema.Roles),
		insert:   database.BuildInsertInto[schema.Role](db, schema.Roles, database.InsertOptions{Returning: true}),
		update:   database.BuildUpdateWhere[schema.Role](db, schema.Roles, true),

		insertUsersRole:        database.BuildInsertInto[schema.UsersRole](db, schema.UsersRoles, database.InsertOptions{}),
		insertRolesScope:       database.BuildInsertInto[schema.RolesScope](db, schema.RolesScopes, database.InsertOptions{}),
		insertApplicationsRole: database.BuildInsertInto[schema.ApplicationsRole](db, schema.ApplicationsRoles, database.InsertOptions{}),
	}
}

func searchConditions(search database.Search) sq.Sqlizer {
	return database.BuildConditionsFromSearch(search, roleIdentifiers, SearchFields)
}

// FindRoles returns one page, newest first.
func (q *Queries) FindRoles(ctx context.Context, page database.Page, search database.Search) ([]schema.Role, error) {
	return q.findAll(ctx, page, searchConditions(search))
}

func (q *Queries) CountRoles(ctx context.Context, search database.Search) (int64, error) {
	return database.GetTotalRowCount(ctx, q.db, schema.Roles, searchConditions(search))
}

func (q *Queries) FindRoleByID(ctx context.Context, id string) (schema.Role, bool, error) {
	return q.findByID(ctx, id)
}

func (q *Queries) FindRoleByRoleName(ctx context.Context, name, excludeID string) (schema.Role, bool, error) {
	sel := database.Builder().
		Select(roleIdentifiers.Columns()...).
		From(roleIdentifiers.Table).
		Where(sq.Eq{roleIdentifiers.Field("name"): name})
	if excludeID != "" {
		sel = sel.Where(sq.NotEq{roleIdentifiers.Field("id"): excludeID})
	}

	role, ok, err := database.QueryOne[schema.Role](ctx, q.db, sel)
	if err != nil {
		return role, false, fmt.Errorf("failed to find role by name: %w", err)
	}
	return role, ok, nil
}

// FindRolesByRoleIDs returns the roles among ids. An empty ids returns an
// empty slice without a query.
func (q *Queries) FindRolesByRoleIDs(ctx context.Context, ids []string) ([]schema.Role, error) {
	if len(ids) == 0 {
		return []schema.Role{}, nil
	}
	return q.findAll(ctx, database.All, sq.Eq{roleIdentifiers.Field("id"): ids})
}

func (q *Queries) InsertRole(ctx context.Context, create schema.CreateRole) (schema.Role, error) {
	return q.insert(ctx, create.Record())
}

func (q *Queries) UpdateRoleByID(ctx context.Context, id string, update schema.UpdateRole) (schema.Role, error) {
	return q.update(ctx, database.UpdateWhere{
		Set:   update.Record(),
		Where: schema.Record{"id": id},
	})
}

func (q *Queries) DeleteRoleByID(ctx context.Context, id string) error {
	return database.DeleteByID(ctx, q.db, schema.Roles, id)
}

func (q *Queries) CountUsersRolesByRoleID(ctx context.Context, roleID string) (int64, error) {
	return database.GetTotalRowCount(ctx, q.db, schema.UsersRoles,
		sq.Eq{usersRoleIdentifiers.Field("roleId"): roleID})
}

// FindUserIDsByRoleID orders by the users' creation time, newest first, with
// the user id breaking ties, so pages never overlap.
func (q *Queries) FindUserIDsByRoleID(ctx context.Context, roleID string, page database.Page) ([]string, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	sel := database.Builder().
		Select(usersRoleIdentifiers.Qualified("userId")).
		From(usersRoleIdentifiers.Table).
		Join(fmt.Sprintf("%s ON %s = %s", userIdentifiers.Table,
			userIdentifiers.Qualified("id"), usersRoleIdentifiers.Qualified("userId"))).
		Where(sq.Eq{usersRoleIdentifiers.Qualified("roleId"): roleID}).
		OrderBy(userIdentifiers.Qualified("createdAt")+" DESC", userIdentifiers.Qualified("id")+" ASC")
	if page.PageSize > 0 {
		sel = sel.Limit(page.Limit()).Offset(page.Offset())
	}

	ids, err := database.QueryColumn[string](ctx, q.db, sel)
	if err != nil {
		return nil, fmt.Errorf("failed to find users of role %s: %w", roleID, err)
	}
	return ids, nil
}

func (q *Queries) InsertUsersRoles(ctx context.Context, links []schema.UsersRole) error {
	for _, link := range links {
		if _, err := q.insertUsersRole(ctx, schema.Record{"id": link.ID, "userId": link.UserID, "roleId": link.RoleID}); err != nil {
			return err
		}
	}
	return nil
}

// DeleteUsersRolesByUserIDAndRoleID fails with a deletion error when the user
// does not hold the role.
func (q *Queries) DeleteUsersRolesByUserIDAndRoleID(ctx context.Context, userID, roleID string) error {
	del := database.Builder().
		Delete(usersRoleIdentifiers.Table).
		Where(sq.Eq{
			usersRoleIdentifiers.Field("userId"): userID,
			usersRoleIdentifiers.Field("roleId"): roleID,
		})

	affected, err := database.ExecAffected(ctx, q.db, del)
	if err != nil {
		return fmt.Errorf("failed to delete users role: %w", err)
	}
	if affected < 1 {
		return apperrors.DeletionError(schema.UsersRoles.Table(), userID)
	}
	return nil
}

func (q *Queries) InsertRolesScopes(ctx context.Context, links []schema.RolesScope) error {
	for _, link := range links {
		if _, err := q.insertRolesScope(ctx, schema.Record{"id": link.ID, "roleId": link.RoleID, "scopeId": link.ScopeID}); err != nil {
			return err
		}
	}
	return nil
}

func (q *Queries) FindApplicationIDsByRoleID(ctx context.Context, roleID string) ([]string, error) {
	sel := database.Builder().
		Select(applicationsRoleIdentifiers.Columns()...).
		From(applicationsRoleIdentifiers.Table).
		Where(sq.Eq{applicationsRoleIdentifiers.Field("roleId"): roleID})

	links, err := database.QueryAll[schema.ApplicationsRole](ctx, q.db, sel)
	if err != nil {
		return nil, fmt.Errorf("failed to find applications of role %s: %w", roleID, err)
	}
	ids := make([]string, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.ApplicationID)
	}
	return ids, nil
}

func (q *Queries) InsertApplicationsRoles(ctx context.Context, links []schema.ApplicationsRole) error {
	for _, link := range links {
		if _, err := q.insertApplicationsRole(ctx, schema.Record{"id": link.ID, "applicationId": link.ApplicationID, "roleId": link.RoleID}); err != nil {
			return err
		}
	}
	return nil
}

// WithTx needs a handle that can begin transactions: a pool, or a
// transaction for a nested savepoint.
func (q *Queries) WithTx(ctx context.Context, fn func(repo RoleRepository) error) error {
	beginner, ok := q.db.(database.TxBeginner)
	if !ok {
		return fmt.Errorf("role queries: handle %T cannot begin a transaction", q.db)
	}
	return database.WithTx(ctx, beginner, func(tx pgx.Tx) error {
		return fn(NewQueries(tx))
	})
}
