package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allDescriptors() []*Descriptor {
	return []*Descriptor{Applications, ApplicationsRoles, Roles, Connectors, Users, UsersRoles, Scopes, RolesScopes}
}

func TestDescriptorsFieldsMatchFieldKeys(t *testing.T) {
	for _, d := range allDescriptors() {
		t.Run(d.Table(), func(t *testing.T) {
			fields := d.Fields()
			keys := d.FieldKeys()
			require.Len(t, keys, len(fields))

			counts := map[string]int{}
			for _, key := range keys {
				counts[key]++
			}
			for key := range fields {
				assert.Equal(t, 1, counts[key], "field %s", key)
			}
			for _, key := range keys {
				_, ok := fields[key]
				assert.True(t, ok, "field key %s", key)
			}
		})
	}
}

func TestNewRejectsMismatch(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
		want string
	}{
		{
			name: "missing from field keys",
			def: Definition{
				Table:     "things",
				Fields:    map[string]string{"id": "id", "name": "name"},
				FieldKeys: []string{"id"},
			},
			want: "fields missing from field keys: name",
		},
		{
			name: "key without column",
			def: Definition{
				Table:     "things",
				Fields:    map[string]string{"id": "id"},
				FieldKeys: []string{"id", "name"},
			},
			want: `field key "name" has no column mapping`,
		},
		{
			name: "duplicate key",
			def: Definition{
				Table:     "things",
				Fields:    map[string]string{"id": "id"},
				FieldKeys: []string{"id", "id"},
			},
			want: "listed twice",
		},
		{
			name: "duplicate column",
			def: Definition{
				Table:     "things",
				Fields:    map[string]string{"id": "id", "other": "id"},
				FieldKeys: []string{"id", "other"},
			},
			want: `column "id" mapped by both`,
		},
		{
			name: "undeclared json field",
			def: Definition{
				Table:     "things",
				Fields:    map[string]string{"id": "id"},
				FieldKeys: []string{"id"},
				JSON:      []string{"config"},
			},
			want: `json field "config" is not declared`,
		},
		{
			name: "empty table",
			def:  Definition{Fields: map[string]string{"id": "id"}, FieldKeys: []string{"id"}},
			want: "table name is empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.def)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMustNewPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustNew(Definition{Table: "x", Fields: map[string]string{"a": "a"}, FieldKeys: []string{"b"}})
	})
}

func TestDescriptorAccessors(t *testing.T) {
	column, ok := Applications.Column("oidcClientMetadata")
	assert.True(t, ok)
	assert.Equal(t, "oidc_client_metadata", column)

	key, ok := Applications.Logical("created_at")
	assert.True(t, ok)
	assert.Equal(t, "createdAt", key)

	assert.True(t, Applications.IsJSON("customClientMetadata"))
	assert.False(t, Applications.IsJSON("name"))
	assert.True(t, Applications.IsRequired("secret"))
	assert.Equal(t, "application", Applications.TableSingular())
	assert.Panics(t, func() { Applications.MustColumn("nope") })

	// callers cannot mutate the descriptor through returned slices
	keys := Applications.FieldKeys()
	keys[0] = "changed"
	assert.Equal(t, "id", Applications.FieldKeys()[0])
}

func TestValidate(t *testing.T) {
	err := Applications.Validate(Record{"id": "app1", "name": "Demo"}, true)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"secret", "type"}, verr.Missing)

	err = Applications.Validate(Record{"description": "x", "bogus": 1}, false)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"bogus"}, verr.Unknown)
	assert.Empty(t, verr.Missing)

	assert.NoError(t, Applications.Validate(CreateApplication{
		ID: "app1", Name: "Demo", Secret: "s", Type: ApplicationTypeTraditional,
	}.Record(), true))
	assert.NoError(t, Applications.Validate(Record{"description": "new"}, false))
}

func TestRecordKeysFollowDescriptorOrder(t *testing.T) {
	r := Record{"type": "SPA", "id": "a", "createdAt": nil, "name": "n"}
	assert.Equal(t, []string{"id", "name", "type", "createdAt"}, r.Keys(Applications))
}

func TestUpdateRecordsOnlyCarrySetFields(t *testing.T) {
	desc := "new"
	r := UpdateApplication{Description: &desc}.Record()
	assert.Equal(t, Record{"description": "new"}, r)

	enabled := false
	assert.Equal(t, Record{"enabled": false}, UpdateConnector{Enabled: &enabled}.Record())
	assert.Empty(t, UpdateRole{}.Record())
}
