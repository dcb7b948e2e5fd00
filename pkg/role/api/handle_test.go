package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/idm-console/pkg/application"
	"github.com/tendant/idm-console/pkg/config"
	"github.com/tendant/idm-console/pkg/role"
	"github.com/tendant/idm-console/pkg/schema"
	"github.com/tendant/idm-console/pkg/scope"
	"github.com/tendant/idm-console/pkg/user"
	"github.com/tendant/idm-console/pkg/utils"
)

type testEnv struct {
	handler http.Handler
	scopes  *scope.ScopeService
	users   *user.UserService
}

func newTestEnv() testEnv {
	scopes := scope.NewScopeService(scope.NewInMemoryScopeRepository())
	users := user.NewUserService(user.NewInMemoryUserRepository())
	applications := application.NewApplicationService(application.NewInMemoryApplicationRepository())
	service := role.NewRoleService(role.NewInMemoryRoleRepository(users), scopes, users, applications)
	return testEnv{
		handler: Handler(NewHandle(service, config.PaginationConfig{DefaultPageSize: 20, MaxPageSize: 100})),
		scopes:  scopes,
		users:   users,
	}
}

func (e testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func TestGetRoles(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	rr := env.do(t, http.MethodPost, "/", map[string]any{"name": "admin", "description": "Admins"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var admin schema.Role
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &admin))

	name := "mock"
	avatar := "https://example.com/avatar.png"
	u, err := env.users.CreateUser(ctx, user.CreateUserParams{Username: &name, Name: &name, Avatar: &avatar})
	require.NoError(t, err)

	rr = env.do(t, http.MethodPost, "/"+admin.ID+"/users", map[string]any{"userIds": []string{u.ID}})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = env.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1", rr.Header().Get(utils.TotalNumberHeader))

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, admin.ID, body[0]["id"])
	assert.Equal(t, "admin", body[0]["name"])
	assert.Equal(t, float64(1), body[0]["usersCount"])
	assert.Equal(t, []any{map[string]any{"id": u.ID, "avatar": avatar, "name": name}}, body[0]["featuredUsers"])
}

func TestPostRole(t *testing.T) {
	env := newTestEnv()

	read, err := env.scopes.CreateScope(context.Background(), scope.CreateScopeParams{ResourceID: "api", Name: "read"})
	require.NoError(t, err)

	rr := env.do(t, http.MethodPost, "/", map[string]any{
		"name": "reader", "description": "Reads", "scopeIds": []string{read.ID},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = env.do(t, http.MethodPost, "/", map[string]any{"name": "reader", "description": "Again"})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var errResp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
	assert.Equal(t, "ROLE_NAME_IN_USE", string(errResp.Code))

	rr = env.do(t, http.MethodPost, "/", map[string]any{
		"name": "writer", "description": "Writes", "scopeIds": []string{"missing"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestRoleByID(t *testing.T) {
	env := newTestEnv()

	rr := env.do(t, http.MethodPost, "/", map[string]any{"name": "admin", "description": "Admins"})
	require.Equal(t, http.StatusOK, rr.Code)
	var admin schema.Role
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &admin))
	rr = env.do(t, http.MethodPost, "/", map[string]any{"name": "editor", "description": "Editors"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, http.MethodGet, "/"+admin.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, http.MethodPatch, "/"+admin.ID, map[string]any{"description": "new"})
	require.Equal(t, http.StatusOK, rr.Code)
	var patched schema.Role
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &patched))
	assert.Equal(t, "new", patched.Description)
	assert.Equal(t, admin.Name, patched.Name)

	rr = env.do(t, http.MethodPatch, "/"+admin.ID, map[string]any{"name": "editor"})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = env.do(t, http.MethodDelete, "/"+admin.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = env.do(t, http.MethodDelete, "/"+admin.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(t, http.MethodGet, "/"+admin.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRoleUsersAndApplications(t *testing.T) {
	env := newTestEnv()

	rr := env.do(t, http.MethodPost, "/", map[string]any{"name": "admin", "description": "Admins"})
	require.Equal(t, http.StatusOK, rr.Code)
	var admin schema.Role
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &admin))

	name := "ann"
	u, err := env.users.CreateUser(context.Background(), user.CreateUserParams{Username: &name})
	require.NoError(t, err)

	rr = env.do(t, http.MethodPost, "/"+admin.ID+"/users", map[string]any{"userIds": []string{u.ID}})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = env.do(t, http.MethodGet, "/"+admin.ID+"/users", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1", rr.Header().Get(utils.TotalNumberHeader))

	rr = env.do(t, http.MethodDelete, "/"+admin.ID+"/users/"+u.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = env.do(t, http.MethodDelete, "/"+admin.ID+"/users/"+u.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(t, http.MethodGet, "/"+admin.ID+"/applications", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "0", rr.Header().Get(utils.TotalNumberHeader))
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = env.do(t, http.MethodPost, "/"+admin.ID+"/applications", map[string]any{"applicationIds": []string{"a1"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}
