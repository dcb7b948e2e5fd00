package database

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/tendant/idm-console/pkg/schema"
)

// FindByIDFunc looks up one entity. ok is false when no row has that id.
type FindByIDFunc[T any] func(ctx context.Context, id string) (entity T, ok bool, err error)

// BuildFindEntityByID returns a lookup on the descriptor's id field, which is
// assumed unique.
func BuildFindEntityByID[T any](db DBTX, d *schema.Descriptor) FindByIDFunc[T] {
	ids := ConvertToIdentifiers(d)
	idColumn := ids.Field("id")

	return func(ctx context.Context, id string) (T, bool, error) {
		q := psql.Select(ids.Columns()...).
			From(ids.Table).
			Where(sq.Eq{idColumn: id})

		entity, ok, err := QueryOne[T](ctx, db, q)
		if err != nil {
			return entity, false, fmt.Errorf("failed to find %s %s: %w", d.TableSingular(), id, err)
		}
		return entity, ok, nil
	}
}
