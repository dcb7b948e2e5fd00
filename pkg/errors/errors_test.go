package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeletionError(t *testing.T) {
	err := DeletionError("applications", "app1")

	assert.Equal(t, ErrCodeDeletionFailed, err.Code)
	assert.Contains(t, err.Error(), "applications")
	assert.Contains(t, err.Error(), "app1")
	assert.Equal(t, "app1", err.Details["id"])
	assert.Equal(t, "applications", err.Details["table"])
	assert.Equal(t, http.StatusNotFound, err.HTTPStatusCode())
}

func TestConflictWrapsCause(t *testing.T) {
	cause := stderrors.New("duplicate key value")
	err := Conflict("roles", "roles__name", cause)

	require.NotNil(t, err)
	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, "roles__name", err.Details["constraint"])
	assert.Equal(t, http.StatusConflict, HTTPStatus(err))
}

func TestIsCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("update application: %w", NotFound("application", "a"))

	assert.True(t, IsCode(err, ErrCodeNotFound))
	assert.False(t, IsCode(err, ErrCodeConflict))
	assert.Equal(t, ErrCodeNotFound, GetCode(err))
	assert.Equal(t, "a", GetDetails(err)["id"])
}

func TestHTTPStatusForPlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(stderrors.New("connection refused")))
	assert.Nil(t, GetDetails(stderrors.New("x")))
}

func TestWrapInternalKeepsCause(t *testing.T) {
	cause := stderrors.New("copy failed")
	err := Wrap(cause, ErrCodeInternal, "failed to copy role")

	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, ErrCodeInternal, GetCode(err))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
}

func TestMapErrorCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeDeletionFailed, http.StatusNotFound},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeRoleNameInUse, http.StatusUnprocessableEntity},
		{ErrCodeScopeNotFound, http.StatusUnprocessableEntity},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorCodeToHTTPStatus(tt.code))
		})
	}
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "nothing"))
}
