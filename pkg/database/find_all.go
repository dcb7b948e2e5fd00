package database

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	apperrors "github.com/tendant/idm-console/pkg/errors"
	"github.com/tendant/idm-console/pkg/schema"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// OrderBy sorts by one logical field. An empty direction sorts ascending.
type OrderBy struct {
	Field     string
	Direction Direction
}

// Page is a pagination cursor. A zero PageSize means no limit.
type Page struct {
	Page     int
	PageSize int
}

// Limit returns the row limit for the page.
func (p Page) Limit() uint64 {
	return uint64(p.PageSize)
}

// Offset returns the number of rows skipped before the page.
func (p Page) Offset() uint64 {
	if p.Page <= 1 {
		return 0
	}
	return uint64((p.Page - 1) * p.PageSize)
}

// Validate rejects a negative size and a page number below 1 on a limited
// page.
func (p Page) Validate() error {
	if p.PageSize < 0 || (p.PageSize > 0 && p.Page < 1) {
		return apperrors.InvalidInput("page", fmt.Sprintf("page %d with size %d", p.Page, p.PageSize))
	}
	return nil
}

// All requests every row.
var All = Page{}

// FindAllFunc returns one page of entities matching every condition.
type FindAllFunc[T any] func(ctx context.Context, page Page, conditions ...sq.Sqlizer) ([]T, error)

// BuildFindAllEntities returns a finder over d ordered by orderBy. Ties are
// left to the store unless orderBy names a unique field. Nil conditions are
// skipped, so the result of BuildConditionsFromSearch can be passed as is.
func BuildFindAllEntities[T any](db DBTX, d *schema.Descriptor, orderBy ...OrderBy) FindAllFunc[T] {
	ids := ConvertToIdentifiers(d)

	order := make([]string, 0, len(orderBy))
	for _, o := range orderBy {
		dir := "ASC"
		if o.Direction == Desc {
			dir = "DESC"
		}
		order = append(order, ids.Field(o.Field)+" "+dir)
	}

	return func(ctx context.Context, page Page, conditions ...sq.Sqlizer) ([]T, error) {
		if err := page.Validate(); err != nil {
			return nil, err
		}

		q := psql.Select(ids.Columns()...).From(ids.Table)
		q = where(q, conditions)
		if len(order) > 0 {
			q = q.OrderBy(order...)
		}
		if page.PageSize > 0 {
			q = q.Limit(page.Limit()).Offset(page.Offset())
		}

		entities, err := QueryAll[T](ctx, db, q)
		if err != nil {
			return nil, fmt.Errorf("failed to find %s: %w", d.Table(), err)
		}
		return entities, nil
	}
}

func where(q sq.SelectBuilder, conditions []sq.Sqlizer) sq.SelectBuilder {
	for _, c := range conditions {
		if c != nil {
			q = q.Where(c)
		}
	}
	return q
}
