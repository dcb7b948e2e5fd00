package database

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	apperrors "github.com/tendant/idm-console/pkg/errors"
	"github.com/tendant/idm-console/pkg/schema"
)

// JSONMode selects how jsonb columns in Set are written.
type JSONMode int

const (
	// JSONReplace overwrites the stored object.
	JSONReplace JSONMode = iota
	// JSONMerge is a top-level merge: the given keys replace the stored
	// keys of the same name and the keys it does not mention are kept. A
	// nested object in the patch replaces the stored nested object whole.
	JSONMerge
)

// UpdateWhere describes one update: the fields to set and an equality match
// on one or more fields, typically {"id": id}.
type UpdateWhere struct {
	Set      schema.Record
	Where    schema.Record
	JSONMode JSONMode
}

// UpdateFunc applies an update and returns the updated row.
type UpdateFunc[T any] func(ctx context.Context, update UpdateWhere) (T, error)

// BuildUpdateWhere returns an updater for d. When no row matches it returns a
// NotFound error rather than a generic failure. With returning false the
// returned entity is the zero value.
func BuildUpdateWhere[T any](db DBTX, d *schema.Descriptor, returning bool) UpdateFunc[T] {
	ids := ConvertToIdentifiers(d)
	returningClause := "RETURNING " + strings.Join(ids.Columns(), ", ")

	return func(ctx context.Context, update UpdateWhere) (T, error) {
		var zero T
		if len(update.Set) == 0 {
			return zero, apperrors.InvalidInput("set", "nothing to update")
		}
		if len(update.Where) == 0 {
			return zero, apperrors.InvalidInput("where", "update without a condition")
		}
		if err := d.Validate(update.Set, false); err != nil {
			return zero, invalidRecord(err)
		}
		if err := d.Validate(update.Where, false); err != nil {
			return zero, invalidRecord(err)
		}

		q := psql.Update(ids.Table)
		for _, key := range update.Set.Keys(d) {
			value, err := setValue(d, ids, key, update.Set[key], update.JSONMode)
			if err != nil {
				return zero, err
			}
			q = q.Set(ids.Field(key), value)
		}
		for _, key := range update.Where.Keys(d) {
			q = q.Where(sq.Eq{ids.Field(key): update.Where[key]})
		}

		if !returning {
			affected, err := ExecAffected(ctx, db, q)
			if err != nil {
				return zero, translateError(d, "update", err)
			}
			if affected < 1 {
				return zero, notFound(d, update.Where)
			}
			return zero, nil
		}

		entity, ok, err := QueryOne[T](ctx, db, q.Suffix(returningClause))
		if err != nil {
			return zero, translateError(d, "update", err)
		}
		if !ok {
			return zero, notFound(d, update.Where)
		}
		return entity, nil
	}
}

func setValue(d *schema.Descriptor, ids Identifiers, key string, value any, mode JSONMode) (interface{}, error) {
	if !d.IsJSON(key) {
		return value, nil
	}
	encoded, err := encodeJSON(d, key, value)
	if err != nil {
		return nil, err
	}
	if mode == JSONMerge {
		return sq.Expr(fmt.Sprintf("coalesce(%s, '{}'::jsonb) || ?::jsonb", ids.Field(key)), encoded), nil
	}
	return sq.Expr("?::jsonb", encoded), nil
}

func notFound(d *schema.Descriptor, where schema.Record) error {
	if id, ok := where["id"]; ok && len(where) == 1 {
		return apperrors.NotFound(d.TableSingular(), fmt.Sprint(id))
	}
	parts := make([]string, 0, len(where))
	for _, key := range where.Keys(d) {
		parts = append(parts, fmt.Sprintf("%s=%v", key, where[key]))
	}
	return apperrors.NotFound(d.TableSingular(), strings.Join(parts, ","))
}
