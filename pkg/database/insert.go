package database

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/tendant/idm-console/pkg/schema"
)

// OnConflict turns an insert into an upsert. With no SetExcludedFields the
// conflicting row is left alone.
type OnConflict struct {
	Fields            []string
	SetExcludedFields []string
}

// InsertOptions configures BuildInsertInto.
type InsertOptions struct {
	// Returning makes the insert return the stored row, including values the
	// database generated.
	Returning  bool
	OnConflict *OnConflict
}

// InsertFunc inserts one record.
type InsertFunc[T any] func(ctx context.Context, record schema.Record) (T, error)

// BuildInsertInto returns an insert for d. The record is validated against the
// descriptor first. A unique violation is returned as a Conflict error.
func BuildInsertInto[T any](db DBTX, d *schema.Descriptor, opts InsertOptions) InsertFunc[T] {
	ids := ConvertToIdentifiers(d)
	suffix := onConflictClause(ids, opts.OnConflict)
	if opts.Returning {
		suffix = strings.TrimSpace(suffix + " RETURNING " + strings.Join(ids.Columns(), ", "))
	}

	return func(ctx context.Context, record schema.Record) (T, error) {
		var zero T
		if err := d.Validate(record, true); err != nil {
			return zero, invalidRecord(err)
		}

		keys := record.Keys(d)
		columns := make([]string, 0, len(keys))
		values := make([]interface{}, 0, len(keys))
		for _, key := range keys {
			value, err := columnValue(d, key, record[key])
			if err != nil {
				return zero, err
			}
			columns = append(columns, ids.Field(key))
			values = append(values, value)
		}

		q := psql.Insert(ids.Table).Columns(columns...).Values(values...)
		if suffix != "" {
			q = q.Suffix(suffix)
		}

		if !opts.Returning {
			if _, err := ExecAffected(ctx, db, q); err != nil {
				return zero, translateError(d, "insert into", err)
			}
			return zero, nil
		}

		entity, ok, err := QueryOne[T](ctx, db, q)
		if err != nil {
			return zero, translateError(d, "insert into", err)
		}
		if !ok {
			// only reachable with ON CONFLICT DO NOTHING
			return zero, translateError(d, "insert into", fmt.Errorf("no row returned"))
		}
		return entity, nil
	}
}

func onConflictClause(ids Identifiers, oc *OnConflict) string {
	if oc == nil {
		return ""
	}
	target := ""
	if len(oc.Fields) > 0 {
		cols := make([]string, 0, len(oc.Fields))
		for _, key := range oc.Fields {
			cols = append(cols, ids.Field(key))
		}
		target = " (" + strings.Join(cols, ", ") + ")"
	}
	if len(oc.SetExcludedFields) == 0 {
		return "ON CONFLICT" + target + " DO NOTHING"
	}
	sets := make([]string, 0, len(oc.SetExcludedFields))
	for _, key := range oc.SetExcludedFields {
		col := ids.Field(key)
		sets = append(sets, col+" = excluded."+col)
	}
	return "ON CONFLICT" + target + " DO UPDATE SET " + strings.Join(sets, ", ")
}

// columnValue binds jsonb fields as encoded JSON with an explicit cast and
// passes everything else through.
func columnValue(d *schema.Descriptor, key string, value any) (interface{}, error) {
	if !d.IsJSON(key) {
		return value, nil
	}
	encoded, err := encodeJSON(d, key, value)
	if err != nil {
		return nil, err
	}
	return sq.Expr("?::jsonb", encoded), nil
}

func encodeJSON(d *schema.Descriptor, key string, value any) (string, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return "", invalidRecord(fmt.Errorf("field %s of %s is not valid json: %w", key, d.Table(), err))
	}
	return string(b), nil
}
