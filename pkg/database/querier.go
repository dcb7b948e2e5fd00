package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the query-executing handle every builder runs against. It is
// satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// TxBeginner starts transactions. *pgxpool.Pool and pgx.Tx implement it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// psql builds statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Builder returns the statement builder used by this package, for facades
// that need a query the generic builders do not cover.
func Builder() sq.StatementBuilderType {
	return psql
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise.
func WithTx(ctx context.Context, db TxBeginner, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// QueryAll runs q and scans every row into T by column name.
func QueryAll[T any](ctx context.Context, db DBTX, q sq.Sqlizer) ([]T, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	slog.Debug("Query", "sql", query, "args", len(args))

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
}

// QueryColumn runs q and collects its single column into a slice.
func QueryColumn[T any](ctx context.Context, db DBTX, q sq.Sqlizer) ([]T, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	slog.Debug("Query", "sql", query, "args", len(args))

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[T])
}

// QueryOne runs q and scans the first row into T. ok is false when the query
// returned no rows.
func QueryOne[T any](ctx context.Context, db DBTX, q sq.Sqlizer) (result T, ok bool, err error) {
	query, args, err := q.ToSql()
	if err != nil {
		return result, false, fmt.Errorf("failed to build query: %w", err)
	}
	slog.Debug("Query", "sql", query, "args", len(args))

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return result, false, err
	}
	result, err = pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return result, false, nil
		}
		return result, false, err
	}
	return result, true, nil
}

// QueryCount runs a count(*) query and returns the number.
func QueryCount(ctx context.Context, db DBTX, q sq.Sqlizer) (int64, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}
	slog.Debug("Query", "sql", query, "args", len(args))

	var count int64
	if err := db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// ExecAffected runs q and returns the number of affected rows.
func ExecAffected(ctx context.Context, db DBTX, q sq.Sqlizer) (int64, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}
	slog.Debug("Exec", "sql", query, "args", len(args))

	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// SearchPath returns a search_path value that resolves unqualified names in
// schema first and then in public.
func SearchPath(schema string) string {
	return pgx.Identifier{schema}.Sanitize() + ", public"
}

// SetLocalSearchPath points the current transaction at schema. An empty
// schema leaves the search path alone.
func SetLocalSearchPath(ctx context.Context, db DBTX, schema string) error {
	if schema == "" {
		return nil
	}
	if _, err := db.Exec(ctx, "SET LOCAL search_path TO "+SearchPath(schema)); err != nil {
		return fmt.Errorf("failed to set search path: %w", err)
	}
	return nil
}
