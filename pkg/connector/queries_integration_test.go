package connector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/idm-console/pkg/database"
	"github.com/tendant/idm-console/pkg/database/pgtest"
	apperrors "github.com/tendant/idm-console/pkg/errors"
	"github.com/tendant/idm-console/pkg/schema"
)

func TestQueriesAgainstPostgres(t *testing.T) {
	pool := pgtest.NewPool(t)
	ctx := context.Background()
	q := NewQueries(pool)

	created, err := q.InsertConnector(ctx, schema.CreateConnector{
		ID: "smtp", Type: schema.ConnectorTypeEmail,
		Config: map[string]any{"host": "mail.example.com", "port": 25},
	})
	require.NoError(t, err)
	assert.False(t, created.Enabled)

	_, err = q.InsertConnector(ctx, schema.CreateConnector{ID: "smtp", Type: schema.ConnectorTypeEmail})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeConflict))

	_, err = q.InsertConnector(ctx, schema.CreateConnector{ID: "twilio", Type: schema.ConnectorTypeSms})
	require.NoError(t, err)

	enabled := true
	updated, err := q.UpdateConnectorByID(ctx, "smtp", schema.UpdateConnector{
		Enabled: &enabled,
		Config:  map[string]any{"port": 587},
	})
	require.NoError(t, err)
	assert.True(t, updated.Enabled)
	assert.Equal(t, map[string]any{"host": "mail.example.com", "port": float64(587)}, updated.Config)

	search := database.Search{Matches: []database.Match{{Fields: []string{"type"}, Value: "sms"}}}
	found, err := q.FindAllConnectors(ctx, database.All, search)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "twilio", found[0].ID)

	count, err := q.CountConnectors(ctx, database.Search{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, q.DeleteConnectorByID(ctx, "twilio"))
	err = q.DeleteConnectorByID(ctx, "twilio")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDeletionFailed))
}
