package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/idm-console/pkg/database"
	"github.com/tendant/idm-console/pkg/database/pgtest"
	"github.com/tendant/idm-console/pkg/schema"
)

func TestQueriesAgainstPostgres(t *testing.T) {
	pool := pgtest.NewPool(t)
	ctx := context.Background()
	q := NewQueries(pool)

	for _, c := range []schema.CreateApplication{
		{ID: "m1", Name: "Billing bot", Secret: "s", Type: schema.ApplicationTypeMachineToMachine},
		{ID: "m2", Name: "Report bot", Secret: "s", Type: schema.ApplicationTypeMachineToMachine},
		{ID: "w1", Name: "Web", Secret: "s", Type: schema.ApplicationTypeSPA},
	} {
		_, err := q.InsertApplication(ctx, c)
		require.NoError(t, err)
	}

	total, err := q.FindTotalNumberOfApplications(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	m2m, err := q.CountM2mApplications(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), m2m)

	nonM2m, err := q.CountNonM2mApplications(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), nonM2m)

	search := database.Search{Matches: []database.Match{{Value: "billing"}}}
	count, err := q.CountM2mApplicationsByIDs(ctx, search, []string{"m1", "m2", "w1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	apps, err := q.FindM2mApplicationsByIDs(ctx, database.Search{}, 10, 0, []string{"m1", "m2", "w1"})
	require.NoError(t, err)
	assert.Len(t, apps, 2)
	for _, app := range apps {
		assert.Equal(t, schema.ApplicationTypeMachineToMachine, app.Type)
	}

	name := "Billing robot"
	updated, err := q.UpdateApplicationByID(ctx, "m1", schema.UpdateApplication{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)

	require.NoError(t, q.DeleteApplicationByID(ctx, "w1"))
	_, ok, err := q.FindApplicationByID(ctx, "w1")
	require.NoError(t, err)
	assert.False(t, ok)
}
