package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/idm-console/pkg/schema"
	"github.com/tendant/idm-console/pkg/scope"
)

func TestScopeRoutes(t *testing.T) {
	h := Handler(NewHandle(scope.NewScopeService(scope.NewInMemoryScopeRepository())))

	do := func(method, path, body string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(method, path, bytes.NewBufferString(body)))
		return rr
	}

	rr := do(http.MethodPost, "/", `{"resourceId":"api","name":"read:users","description":"Read users"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var created schema.Scope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "read:users", created.Name)

	rr = do(http.MethodGet, "/"+created.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/missing", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, "/", `{"resourceId":"api"}`).Code)
	assert.Equal(t, http.StatusConflict, do(http.MethodPost, "/", `{"resourceId":"api","name":"read:users"}`).Code)
}
