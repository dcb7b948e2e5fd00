package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/idm-console/pkg/config"
	"github.com/tendant/idm-console/pkg/connector"
	"github.com/tendant/idm-console/pkg/schema"
	"github.com/tendant/idm-console/pkg/utils"
)

func TestConnectorRoutes(t *testing.T) {
	service := connector.NewConnectorService(connector.NewInMemoryConnectorRepository())
	h := Handler(NewHandle(service, config.PaginationConfig{DefaultPageSize: 20, MaxPageSize: 100}))

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	rr := do(http.MethodPost, "/", `{"id":"smtp","type":"Email","config":{"host":"mail.example.com","port":25}}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(http.MethodPost, "/", `{"id":"twilio","type":"Sms","enabled":true}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(http.MethodPost, "/", `{"id":"smtp","type":"Email"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = do(http.MethodPost, "/", `{"id":"fax","type":"Fax"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(http.MethodGet, "/?search.type=sms", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1", rr.Header().Get(utils.TotalNumberHeader))

	rr = do(http.MethodPatch, "/smtp", `{"enabled":true,"config":{"port":587,"tls":true}}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var patched schema.Connector
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &patched))
	assert.True(t, patched.Enabled)
	assert.Equal(t, map[string]any{"host": "mail.example.com", "port": float64(587), "tls": true}, patched.Config)

	rr = do(http.MethodPatch, "/missing", `{"enabled":false}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(http.MethodDelete, "/twilio", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = do(http.MethodDelete, "/twilio", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(http.MethodGet, "/twilio", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
