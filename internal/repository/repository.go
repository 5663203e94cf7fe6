// Package repository implements the generic data-access layer: one set of
// CRUD and count operations parameterized by record type, so the individual
// tables never grow bespoke query code.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// DefaultLimit caps GetMulti pages when the caller passes no limit.
const DefaultLimit = 100

// Entity describes the table metadata the repository needs. The Insert
// methods list only the caller-supplied columns; id and defaulted columns
// come back from the database via RETURNING.
type Entity interface {
	TableName() string
	Columns() []string
	InsertColumns() []string
	InsertValues() []any
}

// DB is the subset of pgx satisfied by both *pgxpool.Pool and pgx.Tx.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repo provides the uniform operation set over one record type. Every call
// is its own transaction unless the repo was bound to an open one via WithTx.
type Repo[T Entity] struct {
	pool    *pgxpool.Pool // nil when bound to a transaction
	db      DB
	logger  *zap.Logger
	table   string
	columns []string
	allowed map[string]struct{}
}

// New creates a repository for T backed by the given pool.
func New[T Entity](pool *pgxpool.Pool, logger *zap.Logger) *Repo[T] {
	var zero T

	cols := zero.Columns()
	allowed := make(map[string]struct{}, len(cols))

	for _, c := range cols {
		allowed[c] = struct{}{}
	}

	return &Repo[T]{
		pool:    pool,
		db:      pool,
		logger:  logger.With(zap.String("table", zero.TableName())),
		table:   zero.TableName(),
		columns: cols,
		allowed: allowed,
	}
}

// WithTx returns a copy of the repo that runs every operation on the given
// transaction. Used for application-level cascades and batch inserts that
// must commit or roll back together with other statements.
func (r *Repo[T]) WithTx(tx pgx.Tx) *Repo[T] {
	clone := *r
	clone.pool = nil
	clone.db = tx

	return &clone
}

// Get returns the record with the given primary key, or ErrNotFound.
// Absence is a normal outcome, not a logged failure.
func (r *Repo[T]) Get(ctx context.Context, id int64) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", r.columnList(), r.table)

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", r.table, id, err)
	}

	rec, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("get %s %d: %w", r.table, id, err)
	}

	return &rec, nil
}

// GetMulti returns matching records in insertion order, paginated by skip
// and limit. A non-positive limit falls back to DefaultLimit.
func (r *Repo[T]) GetMulti(ctx context.Context, filter Filter, skip, limit int) ([]T, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	if skip < 0 {
		skip = 0
	}

	where, args, err := filter.whereClause(r.allowed, 0)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY id OFFSET $%d LIMIT $%d",
		r.columnList(), r.table, where, len(args)+1, len(args)+2)
	args = append(args, skip, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", r.table, err)
	}

	recs, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", r.table, err)
	}

	return recs, nil
}

// Create persists one record and returns it fully populated, including the
// generated id and defaulted columns. Uniqueness violations come back as
// ErrConflict.
func (r *Repo[T]) Create(ctx context.Context, rec T) (*T, error) {
	created, err := r.insert(ctx, r.db, rec)
	if err != nil {
		return nil, err
	}

	return created, nil
}

// BulkCreate persists all records in one transaction, returning them in
// input order. Any constraint violation aborts the whole batch.
func (r *Repo[T]) BulkCreate(ctx context.Context, recs []T) ([]T, error) {
	if len(recs) == 0 {
		return nil, nil
	}

	if r.pool == nil {
		// Already inside a caller-owned transaction.
		return r.insertAll(ctx, r.db, recs)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("bulk create %s: %w", r.table, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	out, err := r.insertAll(ctx, tx, recs)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("bulk create %s: %w", r.table, err)
	}

	return out, nil
}

// Update applies a partial update by primary key and returns the refreshed
// record. An "id" key in fields is dropped: a record's identity cannot be
// repointed. With nothing left to change it degrades to a plain Get.
func (r *Repo[T]) Update(ctx context.Context, id int64, fields Fields) (*T, error) {
	changed := make(Fields, len(fields))

	for k, v := range fields {
		if k == "id" {
			continue
		}

		changed[k] = v
	}

	if len(changed) == 0 {
		return r.Get(ctx, id)
	}

	set, args, err := changed.setClause(r.allowed, 0)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		r.table, set, len(args)+1, r.columnList())
	args = append(args, id)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update %s %d: %w", r.table, id, translateError(err))
	}

	rec, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("update %s %d: %w", r.table, id, translateError(err))
	}

	return &rec, nil
}

// Delete removes exactly one record, or reports ErrNotFound.
func (r *Repo[T]) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.table), id)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", r.table, id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteAll wipes the whole table. Destructive on purpose and therefore a
// separate method; there is no implicit "delete everything" default.
func (r *Repo[T]) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s", r.table))
	if err != nil {
		return 0, fmt.Errorf("delete all %s: %w", r.table, err)
	}

	return tag.RowsAffected(), nil
}

// DeleteWhere removes all records matching the filter and returns how many
// went away. Cascading deletes run this on the child table inside the
// parent's transaction.
func (r *Repo[T]) DeleteWhere(ctx context.Context, filter Filter) (int64, error) {
	where, args, err := filter.whereClause(r.allowed, 0)
	if err != nil {
		return 0, err
	}

	tag, err := r.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s%s", r.table, where), args...)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", r.table, err)
	}

	return tag.RowsAffected(), nil
}

// Count returns the number of matching records, with GetMulti's filter
// semantics.
func (r *Repo[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	where, args, err := filter.whereClause(r.allowed, 0)
	if err != nil {
		return 0, err
	}

	var n int64
	if err := r.db.QueryRow(ctx, fmt.Sprintf("SELECT count(*) FROM %s%s", r.table, where), args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", r.table, err)
	}

	return n, nil
}

// CurrentTime reads the backing store's clock. Used as a liveness probe;
// the caller decides how to degrade when the store is unreachable.
func (r *Repo[T]) CurrentTime(ctx context.Context) (time.Time, error) {
	var ts time.Time
	if err := r.db.QueryRow(ctx, "SELECT now()").Scan(&ts); err != nil {
		r.logger.Warn("store clock unreachable", zap.Error(err))

		return time.Time{}, fmt.Errorf("current time: %w", err)
	}

	return ts, nil
}

func (r *Repo[T]) columnList() string {
	return strings.Join(r.columns, ", ")
}

func (r *Repo[T]) insert(ctx context.Context, db DB, rec T) (*T, error) {
	cols := rec.InsertColumns()
	placeholders := make([]string, len(cols))

	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		r.table, strings.Join(cols, ", "), strings.Join(placeholders, ", "), r.columnList())

	rows, err := db.Query(ctx, query, rec.InsertValues()...)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", r.table, translateError(err))
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		err = translateError(err)
		if !errors.Is(err, ErrConflict) {
			r.logger.Error("insert failed", zap.Error(err))
		}

		return nil, fmt.Errorf("insert %s: %w", r.table, err)
	}

	return &created, nil
}

func (r *Repo[T]) insertAll(ctx context.Context, db DB, recs []T) ([]T, error) {
	out := make([]T, 0, len(recs))

	for _, rec := range recs {
		created, err := r.insert(ctx, db, rec)
		if err != nil {
			return nil, err
		}

		out = append(out, *created)
	}

	return out, nil
}
