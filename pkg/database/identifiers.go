package database

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tendant/idm-console/pkg/schema"
)

// Identifiers holds the quoted table and column identifiers of a descriptor,
// ready to be placed in query text. Values never go through here; they are
// always bound as parameters.
type Identifiers struct {
	Table  string
	Fields map[string]string
	keys   []string
}

// ConvertToIdentifiers quotes the descriptor's table and columns.
func ConvertToIdentifiers(d *schema.Descriptor) Identifiers {
	keys := d.FieldKeys()
	ids := Identifiers{
		Table:  pgx.Identifier{d.Table()}.Sanitize(),
		Fields: make(map[string]string, len(keys)),
		keys:   keys,
	}
	for _, key := range keys {
		ids.Fields[key] = pgx.Identifier{d.MustColumn(key)}.Sanitize()
	}
	return ids
}

// Columns returns the quoted columns in field key order.
func (i Identifiers) Columns() []string {
	columns := make([]string, 0, len(i.keys))
	for _, key := range i.keys {
		columns = append(columns, i.Fields[key])
	}
	return columns
}

// Field returns the quoted column of a logical field. An unknown field is a
// programming error.
func (i Identifiers) Field(key string) string {
	column, ok := i.Fields[key]
	if !ok {
		panic(fmt.Sprintf("database: unknown field %q for table %s", key, i.Table))
	}
	return column
}

// Qualified returns the column of a logical field prefixed with the table,
// for queries that join tables sharing column names.
func (i Identifiers) Qualified(key string) string {
	return i.Table + "." + i.Field(key)
}
