package database

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/idm-console/pkg/schema"
)

var applicationSearchFields = []string{"id", "name", "description"}

func TestBuildConditionsFromSearchEmpty(t *testing.T) {
	ids := ConvertToIdentifiers(schema.Applications)
	assert.Nil(t, BuildConditionsFromSearch(Search{}, ids, applicationSearchFields))

	// a match on fields nobody may search is dropped entirely
	cond := BuildConditionsFromSearch(Search{Matches: []Match{{Fields: []string{"secret"}, Value: "x"}}}, ids, applicationSearchFields)
	assert.Nil(t, cond)
}

func TestBuildConditionsFromSearch(t *testing.T) {
	ids := ConvertToIdentifiers(schema.Applications)
	search := Search{Matches: []Match{
		{Fields: []string{"name", "description", "secret"}, Value: "demo"},
		{Value: "x"},
	}}

	cond := BuildConditionsFromSearch(search, ids, applicationSearchFields)
	require.NotNil(t, cond)

	sql, args, err := cond.ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		`(("name" ILIKE ? OR "description" ILIKE ?) AND ("id" ILIKE ? OR "name" ILIKE ? OR "description" ILIKE ?))`,
		sql)
	assert.Equal(t, []interface{}{"%demo%", "%demo%", "%x%", "%x%", "%x%"}, args)
}

func TestSearchValuesAreLiteral(t *testing.T) {
	assert.Equal(t, `%50\%\_off\\%`, containsPattern(`50%_off\`))

	ids := ConvertToIdentifiers(schema.Applications)
	cond := BuildConditionsFromSearch(Search{Matches: []Match{{Fields: []string{"name"}, Value: "'; drop table applications; --"}}}, ids, applicationSearchFields)
	sql, args, err := cond.ToSql()
	require.NoError(t, err)
	assert.NotContains(t, sql, "drop table")
	assert.Equal(t, []interface{}{"%'; drop table applications; --%"}, args)
}

func TestParseSearch(t *testing.T) {
	values := url.Values{
		"search":             {"foo", ""},
		"search.name":        {"bar"},
		"search.secret":      {"leak"},
		"search.description": {"baz"},
		"page":               {"2"},
	}

	search := ParseSearch(values, applicationSearchFields)
	assert.Equal(t, []Match{
		{Value: "foo"},
		{Fields: []string{"description"}, Value: "baz"},
		{Fields: []string{"name"}, Value: "bar"},
	}, search.Matches)

	assert.True(t, ParseSearch(url.Values{"page": {"1"}}, applicationSearchFields).IsEmpty())
}

func TestConvertToIdentifiers(t *testing.T) {
	ids := ConvertToIdentifiers(schema.Applications)
	assert.Equal(t, `"applications"`, ids.Table)
	assert.Equal(t, `"oidc_client_metadata"`, ids.Field("oidcClientMetadata"))
	assert.Len(t, ids.Columns(), len(schema.Applications.FieldKeys()))
	assert.Equal(t, `"id"`, ids.Columns()[0])
	assert.Panics(t, func() { ids.Field("nope") })

	weird := schema.MustNew(schema.Definition{
		Table:     `odd"table`,
		Fields:    map[string]string{"id": `odd"col`},
		FieldKeys: []string{"id"},
	})
	assert.Equal(t, `"odd""table"`, ConvertToIdentifiers(weird).Table)
	assert.Equal(t, `"odd""col"`, ConvertToIdentifiers(weird).Field("id"))
}
