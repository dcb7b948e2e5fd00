package client

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-jwt-secret-key")

func createTestToken(t *testing.T, claims map[string]interface{}) string {
	t.Helper()
	claims["exp"] = time.Now().Add(time.Hour).Unix()
	_, tokenString, err := jwtauth.New("HS256", secret, nil).Encode(claims)
	require.NoError(t, err)
	return tokenString
}

func protectedRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(Verifier(jwtauth.New("HS256", secret, nil)))
	r.Use(jwtauth.Authenticator(jwtauth.New("HS256", secret, nil)))
	r.Use(AuthUserMiddleware)
	r.Use(RequireRole("admin"))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(GetAuthUser(r).UserId))
	})
	return r
}

func TestAuthUserMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		claims     map[string]interface{}
		cookie     bool
		wantStatus int
		wantBody   string
	}{
		{
			name: "admin from header",
			claims: map[string]interface{}{
				"user_id":      "u1",
				"extra_claims": map[string]interface{}{"roles": []string{"Admin"}},
			},
			wantStatus: http.StatusOK,
			wantBody:   "u1",
		},
		{
			name: "admin from cookie with subject only",
			claims: map[string]interface{}{
				"sub":          "u2",
				"extra_claims": map[string]interface{}{"roles": []string{"admin"}},
			},
			cookie:     true,
			wantStatus: http.StatusOK,
			wantBody:   "u2",
		},
		{
			name: "missing role",
			claims: map[string]interface{}{
				"user_id":      "u3",
				"extra_claims": map[string]interface{}{"roles": []string{"viewer"}},
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing user",
			claims:     map[string]interface{}{"extra_claims": map[string]interface{}{"roles": []string{"admin"}}},
			wantStatus: http.StatusUnauthorized,
		},
	}

	h := protectedRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := createTestToken(t, tt.claims)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie {
				req.AddCookie(&http.Cookie{Name: ACCESS_TOKEN_NAME, Value: token})
			} else {
				req.Header.Set("Authorization", "Bearer "+token)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rr.Body.String())
			}
		})
	}
}

func TestMissingToken(t *testing.T) {
	rr := httptest.NewRecorder()
	protectedRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireRoleWithoutUser(t *testing.T) {
	h := RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
