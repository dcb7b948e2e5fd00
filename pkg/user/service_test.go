package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/idm-console/pkg/database"
	apperrors "github.com/tendant/idm-console/pkg/errors"
)

func strPtr(s string) *string { return &s }

func TestUserService(t *testing.T) {
	service := NewUserService(NewInMemoryUserRepository())
	ctx := context.Background()

	alice, err := service.CreateUser(ctx, CreateUserParams{Username: strPtr("alice"), Name: strPtr("Alice")})
	require.NoError(t, err)
	bob, err := service.CreateUser(ctx, CreateUserParams{PrimaryEmail: strPtr("bob@example.com")})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, bob.CustomData)

	_, err = service.CreateUser(ctx, CreateUserParams{PrimaryEmail: strPtr("bob@example.com")})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeConflict))

	users, err := service.FindUsersByIDs(ctx, []string{alice.ID, "missing"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, alice.ID, users[0].ID)

	users, total, err := service.FindUsers(ctx, database.Page{Page: 1, PageSize: 10}, database.Search{
		Matches: []database.Match{{Value: "example.com"}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, bob.ID, users[0].ID)

	_, err = service.GetUser(ctx, "missing")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
}
