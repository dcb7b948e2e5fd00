package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	apperrors "github.com/tendant/idm-console/pkg/errors"
	"github.com/tendant/idm-console/pkg/schema"
)

// translateError turns a unique violation into a Conflict error and wraps
// everything else with the operation and table.
func translateError(d *schema.Descriptor, op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return apperrors.Conflict(d.Table(), pgErr.ConstraintName, err)
	}
	return fmt.Errorf("failed to %s %s: %w", op, d.Table(), err)
}

// invalidRecord reports a record the descriptor rejects. This is a caller bug,
// not a store failure.
func invalidRecord(err error) error {
	return apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid record")
}
