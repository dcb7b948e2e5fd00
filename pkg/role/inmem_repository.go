package role

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tendant/idm-console/pkg/database"
	apperrors "github.com/tendant/idm-console/pkg/errors"
	"github.com/tendant/idm-console/pkg/schema"
)

// InMemoryRoleRepository implements RoleRepository using in-memory storage.
// Writes hold txMu, so a transaction never interleaves with other writes.
type InMemoryRoleRepository struct {
	mu                sync.RWMutex
	txMu              sync.Mutex
	users             UserFinder
	roles             map[string]schema.Role
	usersRoles        []schema.UsersRole
	rolesScopes       []schema.RolesScope
	applicationsRoles []schema.ApplicationsRole
	now               func() time.Time
}

// NewInMemoryRoleRepository creates a new in-memory role repository. users
// resolves users_roles links to users, which orders a role's users.
func NewInMemoryRoleRepository(users UserFinder) *InMemoryRoleRepository {
	return &InMemoryRoleRepository{
		users: users,
		roles: make(map[string]schema.Role),
		now:   time.Now,
	}
}

func fieldValue(role schema.Role) func(string) string {
	return func(key string) string {
		switch key {
		case "id":
			return role.ID
		case "name":
			return role.Name
		case "description":
			return role.Description
		}
		return ""
	}
}

// filter returns matching roles newest first. Callers hold the lock.
func (r *InMemoryRoleRepository) filter(keep func(schema.Role) bool) []schema.Role {
	roles := make([]schema.Role, 0, len(r.roles))
	for _, role := range r.roles {
		if keep(role) {
			roles = append(roles, role)
		}
	}
	sort.Slice(roles, func(i, j int) bool {
		if !roles[i].CreatedAt.Equal(roles[j].CreatedAt) {
			return roles[i].CreatedAt.After(roles[j].CreatedAt)
		}
		return roles[i].ID < roles[j].ID
	})
	return roles
}

func (r *InMemoryRoleRepository) FindRoles(ctx context.Context, page database.Page, search database.Search) ([]schema.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roles := r.filter(func(role schema.Role) bool {
		return search.Accepts(SearchFields, fieldValue(role))
	})
	return database.PageSlice(roles, page), nil
}

func (r *InMemoryRoleRepository) CountRoles(ctx context.Context, search database.Search) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roles := r.filter(func(role schema.Role) bool {
		return search.Accepts(SearchFields, fieldValue(role))
	})
	return int64(len(roles)), nil
}

func (r *InMemoryRoleRepository) FindRoleByID(ctx context.Context, id string) (schema.Role, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	role, ok := r.roles[id]
	return role, ok, nil
}

func (r *InMemoryRoleRepository) FindRoleByRoleName(ctx context.Context, name, excludeID string) (schema.Role, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, role := range r.roles {
		if role.Name == name && role.ID != excludeID {
			return role, true, nil
		}
	}
	return schema.Role{}, false, nil
}

func (r *InMemoryRoleRepository) FindRolesByRoleIDs(ctx context.Context, ids []string) ([]schema.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	return r.filter(func(role schema.Role) bool { return wanted[role.ID] }), nil
}

func (r *InMemoryRoleRepository) insertRole(ctx context.Context, create schema.CreateRole) (schema.Role, error) {
	if err := schema.Roles.Validate(create.Record(), true); err != nil {
		return schema.Role{}, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid record")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.roles[create.ID]; exists {
		return schema.Role{}, apperrors.Conflict(schema.Roles.Table(), "roles_pkey", nil)
	}
	if r.nameTaken(create.Name, "") {
		return schema.Role{}, apperrors.Conflict(schema.Roles.Table(), "roles__name", nil)
	}

	role := schema.Role{
		ID:          create.ID,
		Name:        create.Name,
		Description: create.Description,
		Type:        schema.RoleTypeUser,
		CreatedAt:   r.now(),
	}
	if create.Type != "" {
		role.Type = create.Type
	}
	if create.IsDefault != nil {
		role.IsDefault = *create.IsDefault
	}

	r.roles[role.ID] = role
	return role, nil
}

// nameTaken reports whether another role has name. Callers hold the lock.
func (r *InMemoryRoleRepository) nameTaken(name, excludeID string) bool {
	for _, role := range r.roles {
		if role.Name == name && role.ID != excludeID {
			return true
		}
	}
	return false
}

func (r *InMemoryRoleRepository) updateRoleByID(ctx context.Context, id string, update schema.UpdateRole) (schema.Role, error) {
	if len(update.Record()) == 0 {
		return schema.Role{}, apperrors.InvalidInput("set", "nothing to update")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	role, ok := r.roles[id]
	if !ok {
		return schema.Role{}, apperrors.NotFound(schema.Roles.TableSingular(), id)
	}
	if update.Name != nil {
		if r.nameTaken(*update.Name, id) {
			return schema.Role{}, apperrors.Conflict(schema.Roles.Table(), "roles__name", nil)
		}
		role.Name = *update.Name
	}
	if update.Description != nil {
		role.Description = *update.Description
	}
	if update.IsDefault != nil {
		role.IsDefault = *update.IsDefault
	}

	r.roles[id] = role
	return role, nil
}

// deleteRoleByID also drops the role's links, like the foreign keys do.
func (r *InMemoryRoleRepository) deleteRoleByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.roles[id]; !ok {
		return apperrors.DeletionError(schema.Roles.Table(), id)
	}
	delete(r.roles, id)

	r.usersRoles = dropWhere(r.usersRoles, func(l schema.UsersRole) bool { return l.RoleID == id })
	r.rolesScopes = dropWhere(r.rolesScopes, func(l schema.RolesScope) bool { return l.RoleID == id })
	r.applicationsRoles = dropWhere(r.applicationsRoles, func(l schema.ApplicationsRole) bool { return l.RoleID == id })
	return nil
}

func dropWhere[T any](items []T, drop func(T) bool) []T {
	kept := items[:0]
	for _, item := range items {
		if !drop(item) {
			kept = append(kept, item)
		}
	}
	return kept
}

func (r *InMemoryRoleRepository) CountUsersRolesByRoleID(ctx context.Context, roleID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, link := range r.usersRoles {
		if link.RoleID == roleID {
			count++
		}
	}
	return count, nil
}

func (r *InMemoryRoleRepository) FindUserIDsByRoleID(ctx context.Context, roleID string, page database.Page) ([]string, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	var ids []string
	for _, link := range r.usersRoles {
		if link.RoleID == roleID {
			ids = append(ids, link.UserID)
		}
	}
	r.mu.RUnlock()

	if len(ids) == 0 {
		return []string{}, nil
	}
	users, err := r.users.FindUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.After(users[j].CreatedAt)
		}
		return users[i].ID < users[j].ID
	})

	ordered := make([]string, 0, len(users))
	for _, user := range users {
		ordered = append(ordered, user.ID)
	}
	return database.PageSlice(ordered, page), nil
}

func (r *InMemoryRoleRepository) insertUsersRoles(ctx context.Context, links []schema.UsersRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, link := range links {
		if _, ok := r.roles[link.RoleID]; !ok {
			return apperrors.NotFound(schema.Roles.TableSingular(), link.RoleID)
		}
		for _, existing := range r.usersRoles {
			if existing.UserID == link.UserID && existing.RoleID == link.RoleID {
				return apperrors.Conflict(schema.UsersRoles.Table(), "users_roles__user_id_role_id", nil)
			}
		}
		r.usersRoles = append(r.usersRoles, link)
	}
	return nil
}

func (r *InMemoryRoleRepository) deleteUsersRolesByUserIDAndRoleID(ctx context.Context, userID, roleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.usersRoles)
	r.usersRoles = dropWhere(r.usersRoles, func(l schema.UsersRole) bool {
		return l.UserID == userID && l.RoleID == roleID
	})
	if len(r.usersRoles) == before {
		return apperrors.DeletionError(schema.UsersRoles.Table(), userID)
	}
	return nil
}

func (r *InMemoryRoleRepository) insertRolesScopes(ctx context.Context, links []schema.RolesScope) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, link := range links {
		for _, existing := range r.rolesScopes {
			if existing.RoleID == link.RoleID && existing.ScopeID == link.ScopeID {
				return apperrors.Conflict(schema.RolesScopes.Table(), "roles_scopes__role_id_scope_id", nil)
			}
		}
		r.rolesScopes = append(r.rolesScopes, link)
	}
	return nil
}

// ScopeIDsByRoleID returns the scopes granted to a role, in grant order.
func (r *InMemoryRoleRepository) ScopeIDsByRoleID(roleID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for _, link := range r.rolesScopes {
		if link.RoleID == roleID {
			ids = append(ids, link.ScopeID)
		}
	}
	return ids
}

func (r *InMemoryRoleRepository) FindApplicationIDsByRoleID(ctx context.Context, roleID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := []string{}
	for _, link := range r.applicationsRoles {
		if link.RoleID == roleID {
			ids = append(ids, link.ApplicationID)
		}
	}
	return ids, nil
}

func (r *InMemoryRoleRepository) insertApplicationsRoles(ctx context.Context, links []schema.ApplicationsRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, link := range links {
		for _, existing := range r.applicationsRoles {
			if existing.ApplicationID == link.ApplicationID && existing.RoleID == link.RoleID {
				return apperrors.Conflict(schema.ApplicationsRoles.Table(), "applications_roles__application_id_role_id", nil)
			}
		}
		r.applicationsRoles = append(r.applicationsRoles, link)
	}
	return nil
}

// WithTx runs transactions one at a time and restores the previous state
// when fn fails. Other writers wait until the transaction ends.
func (r *InMemoryRoleRepository) WithTx(ctx context.Context, fn func(repo RoleRepository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.RLock()
	roles := make(map[string]schema.Role, len(r.roles))
	for id, role := range r.roles {
		roles[id] = role
	}
	usersRoles := append([]schema.UsersRole(nil), r.usersRoles...)
	rolesScopes := append([]schema.RolesScope(nil), r.rolesScopes...)
	applicationsRoles := append([]schema.ApplicationsRole(nil), r.applicationsRoles...)
	r.mu.RUnlock()

	if err := fn(&inMemoryRoleTx{r}); err != nil {
		r.mu.Lock()
		r.roles = roles
		r.usersRoles = usersRoles
		r.rolesScopes = rolesScopes
		r.applicationsRoles = applicationsRoles
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *InMemoryRoleRepository) InsertRole(ctx context.Context, create schema.CreateRole) (schema.Role, error) {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return r.insertRole(ctx, create)
}

func (r *InMemoryRoleRepository) UpdateRoleByID(ctx context.Context, id string, update schema.UpdateRole) (schema.Role, error) {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return r.updateRoleByID(ctx, id, update)
}

func (r *InMemoryRoleRepository) DeleteRoleByID(ctx context.Context, id string) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return r.deleteRoleByID(ctx, id)
}

func (r *InMemoryRoleRepository) InsertUsersRoles(ctx context.Context, links []schema.UsersRole) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return r.insertUsersRoles(ctx, links)
}

func (r *InMemoryRoleRepository) DeleteUsersRolesByUserIDAndRoleID(ctx context.Context, userID, roleID string) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return r.deleteUsersRolesByUserIDAndRoleID(ctx, userID, roleID)
}

func (r *InMemoryRoleRepository) InsertRolesScopes(ctx context.Context, links []schema.RolesScope) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return r.insertRolesScopes(ctx, links)
}

func (r *InMemoryRoleRepository) InsertApplicationsRoles(ctx context.Context, links []schema.ApplicationsRole) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return r.insertApplicationsRoles(ctx, links)
}

// inMemoryRoleTx is the repository a transaction sees. It already holds
// txMu, so its writes skip it.
type inMemoryRoleTx struct {
	*InMemoryRoleRepository
}

// WithTx joins the running transaction.
func (t *inMemoryRoleTx) WithTx(ctx context.Context, fn func(repo RoleRepository) error) error {
	return fn(t)
}

func (t *inMemoryRoleTx) InsertRole(ctx context.Context, create schema.CreateRole) (schema.Role, error) {
	return t.insertRole(ctx, create)
}

func (t *inMemoryRoleTx) UpdateRoleByID(ctx context.Context, id string, update schema.UpdateRole) (schema.Role, error) {
	return t.updateRoleByID(ctx, id, update)
}

func (t *inMemoryRoleTx) DeleteRoleByID(ctx context.Context, id string) error {
	return t.deleteRoleByID(ctx, id)
}

func (t *inMemoryRoleTx) InsertUsersRoles(ctx context.Context, links []schema.UsersRole) error {
	return t.insertUsersRoles(ctx, links)
}

func (t *inMemoryRoleTx) DeleteUsersRolesByUserIDAndRoleID(ctx context.Context, userID, roleID string) error {
	return t.deleteUsersRolesByUserIDAndRoleID(ctx, userID, roleID)
}

func (t *inMemoryRoleTx) InsertRolesScopes(ctx context.Context, links []schema.RolesScope) error {
	return t.insertRolesScopes(ctx, links)
}

func (t *inMemoryRoleTx) InsertApplicationsRoles(ctx context.Context, links []schema.ApplicationsRole) error {
	return t.insertApplicationsRoles(ctx, links)
}
