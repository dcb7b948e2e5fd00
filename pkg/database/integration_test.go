package database

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/idm-console/pkg/database/pgtest"
	apperrors "github.com/tendant/idm-console/pkg/errors"
	"github.com/tendant/idm-console/pkg/schema"
)

func TestApplicationRoundTrip(t *testing.T) {
	pool := pgtest.NewPool(t)
	ctx := context.Background()

	insert := BuildInsertInto[schema.Application](pool, schema.Applications, InsertOptions{Returning: true})
	findByID := BuildFindEntityByID[schema.Application](pool, schema.Applications)
	findAll := BuildFindAllEntities[schema.Application](pool, schema.Applications, OrderBy{Field: "name"})
	update := BuildUpdateWhere[schema.Application](pool, schema.Applications, true)

	app, err := insert(ctx, schema.CreateApplication{
		ID:                   "app1",
		Name:                 "Demo",
		Secret:               "s",
		Type:                 schema.ApplicationTypeTraditional,
		CustomClientMetadata: map[string]any{"a": 1},
	}.Record())
	require.NoError(t, err)
	assert.Equal(t, "Demo", app.Name)
	assert.False(t, app.CreatedAt.IsZero())
	assert.Equal(t, map[string]any{}, app.OidcClientMetadata)

	found, ok, err := findByID(ctx, "app1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, app.ID, found.ID)
	assert.Equal(t, map[string]any{"a": float64(1)}, found.CustomClientMetadata)

	merged, err := update(ctx, UpdateWhere{
		Set:      schema.Record{"customClientMetadata": map[string]any{"b": 2}},
		Where:    schema.Record{"id": "app1"},
		JSONMode: JSONMerge,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1), "b": float64(2)}, merged.CustomClientMetadata)

	replaced, err := update(ctx, UpdateWhere{
		Set:   schema.Record{"customClientMetadata": map[string]any{"c": 3}},
		Where: schema.Record{"id": "app1"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"c": float64(3)}, replaced.CustomClientMetadata)

	_, err = insert(ctx, schema.CreateApplication{ID: "app1", Name: "Again", Secret: "s", Type: schema.ApplicationTypeSPA}.Record())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeConflict))

	_, err = update(ctx, UpdateWhere{Set: schema.Record{"name": "x"}, Where: schema.Record{"id": "missing"}})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))

	_, ok, err = findByID(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	// pages and totals agree under the same search
	for _, name := range []string{"Alpha demo", "Beta demo", "Gamma"} {
		_, err := insert(ctx, schema.CreateApplication{ID: name[:5], Name: name, Secret: "s", Type: schema.ApplicationTypeSPA}.Record())
		require.NoError(t, err)
	}
	ids := ConvertToIdentifiers(schema.Applications)
	search := BuildConditionsFromSearch(Search{Matches: []Match{{Value: "DEMO"}}}, ids, []string{"name"})

	total, err := GetTotalRowCount(ctx, pool, schema.Applications, search)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	first, err := findAll(ctx, Page{Page: 1, PageSize: 2}, search)
	require.NoError(t, err)
	second, err := findAll(ctx, Page{Page: 2, PageSize: 2}, search)
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.Len(t, second, 1)
	assert.Equal(t, "Alpha demo", first[0].Name)
	assert.Equal(t, "Beta demo", first[1].Name)
	assert.Equal(t, "Demo", second[0].Name)

	literal := BuildConditionsFromSearch(Search{Matches: []Match{{Value: "%"}}}, ids, []string{"name"})
	none, err := GetTotalRowCount(ctx, pool, schema.Applications, literal)
	require.NoError(t, err)
	assert.Zero(t, none)

	require.NoError(t, DeleteByID(ctx, pool, schema.Applications, "app1"))
	err = DeleteByID(ctx, pool, schema.Applications, "app1")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDeletionFailed))
}

func TestWithTxRollsBack(t *testing.T) {
	pool := pgtest.NewPool(t)
	ctx := context.Background()

	err := WithTx(ctx, pool, func(tx pgx.Tx) error {
		insert := BuildInsertInto[schema.Role](tx, schema.Roles, InsertOptions{Returning: true})
		if _, err := insert(ctx, schema.CreateRole{ID: "r1", Name: "admin", Description: "d"}.Record()); err != nil {
			return err
		}
		_, err := insert(ctx, schema.CreateRole{ID: "r2", Name: "admin", Description: "d"}.Record())
		return err
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeConflict))
	assert.Equal(t, "roles__name", apperrors.GetDetails(err)["constraint"])

	count, err := GetTotalRowCount(ctx, pool, schema.Roles)
	require.NoError(t, err)
	assert.Zero(t, count)
}
