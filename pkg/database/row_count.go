package database

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/tendant/idm-console/pkg/schema"
)

// GetTotalRowCount counts the rows of d matching every condition. Passing
// the same conditions as the matching find-all call keeps page totals
// consistent with the page contents.
func GetTotalRowCount(ctx context.Context, db DBTX, d *schema.Descriptor, conditions ...sq.Sqlizer) (int64, error) {
	ids := ConvertToIdentifiers(d)
	q := where(psql.Select("count(*)").From(ids.Table), conditions)

	count, err := QueryCount(ctx, db, q)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", d.Table(), err)
	}
	return count, nil
}
