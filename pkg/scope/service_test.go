package scope

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/tendant/idm-console/pkg/errors"
)

func TestScopeService(t *testing.T) {
	service := NewScopeService(NewInMemoryScopeRepository())
	ctx := context.Background()

	write, err := service.CreateScope(ctx, CreateScopeParams{ResourceID: "api", Name: "write:users"})
	require.NoError(t, err)
	read, err := service.CreateScope(ctx, CreateScopeParams{ResourceID: "api", Name: "read:users"})
	require.NoError(t, err)

	_, err = service.CreateScope(ctx, CreateScopeParams{ResourceID: "api", Name: "read:users"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeConflict))

	_, err = service.CreateScope(ctx, CreateScopeParams{ResourceID: "api"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput))

	scopes, err := service.FindScopesByIDs(ctx, []string{write.ID, read.ID, "missing"})
	require.NoError(t, err)
	require.Len(t, scopes, 2)
	assert.Equal(t, "read:users", scopes[0].Name)

	got, err := service.GetScope(ctx, write.ID)
	require.NoError(t, err)
	assert.Equal(t, write, got)

	_, ok, err := service.FindScopeByID(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = service.GetScope(ctx, "missing")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
}
