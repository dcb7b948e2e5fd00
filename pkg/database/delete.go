package database

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	apperrors "github.com/tendant/idm-console/pkg/errors"
	"github.com/tendant/idm-console/pkg/schema"
)

// DeleteByID deletes one row by id. Deleting an id that does not exist is an
// error naming the table and the id.
func DeleteByID(ctx context.Context, db DBTX, d *schema.Descriptor, id string) error {
	ids := ConvertToIdentifiers(d)
	q := psql.Delete(ids.Table).Where(sq.Eq{ids.Field("id"): id})

	affected, err := ExecAffected(ctx, db, q)
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", d.TableSingular(), id, err)
	}
	if affected < 1 {
		return apperrors.DeletionError(d.Table(), id)
	}
	return nil
}
