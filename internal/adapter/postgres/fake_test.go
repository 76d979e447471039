package postgres

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeRow scans fixed values into destinations of the same type.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(r.values))
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

type fakeRows struct {
	rows [][]any
	pos  int
}

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos <= len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error { return fakeRow{values: r.rows[r.pos-1]}.Scan(dest...) }
func (r *fakeRows) Err() error             { return nil }
func (r *fakeRows) Close()                 {}

type fakeTag int64

func (t fakeTag) RowsAffected() int64 { return int64(t) }

// fakeDB answers statements through handlers keyed by a SQL fragment and
// records everything it runs. Tx calls share the same handlers.
type fakeDB struct {
	queryRow map[string]func(args []any) Row
	query    map[string][][]any
	execErr  map[string]error

	execs      []string
	begun      int
	committed  int
	rolledBack int
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		queryRow: map[string]func(args []any) Row{},
		query:    map[string][][]any{},
		execErr:  map[string]error{},
	}
}

func match[T any](handlers map[string]T, sql string) (T, bool) {
	for fragment, h := range handlers {
		if strings.Contains(sql, fragment) {
			return h, true
		}
	}
	var zero T
	return zero, false
}

func (db *fakeDB) Query(_ context.Context, sql string, _ ...any) (Rows, error) {
	rows, _ := match(db.query, sql)
	return &fakeRows{rows: rows}, nil
}

func (db *fakeDB) QueryRow(_ context.Context, sql string, args ...any) Row {
	if h, ok := match(db.queryRow, sql); ok {
		return h(args)
	}
	return fakeRow{err: pgx.ErrNoRows}
}

func (db *fakeDB) Exec(_ context.Context, sql string, _ ...any) (CommandTag, error) {
	db.execs = append(db.execs, sql)
	if err, ok := match(db.execErr, sql); ok {
		return fakeTag(0), err
	}
	return fakeTag(1), nil
}

func (db *fakeDB) Begin(context.Context) (Tx, error) {
	db.begun++
	return &fakeTx{db: db}, nil
}

func (db *fakeDB) Ping(context.Context) error { return nil }
func (db *fakeDB) Close()                     {}

type fakeTx struct {
	db   *fakeDB
	done bool
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return t.db.Query(ctx, sql, args...)
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return t.db.QueryRow(ctx, sql, args...)
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return t.db.Exec(ctx, sql, args...)
}

func (t *fakeTx) Commit(context.Context) error {
	if t.done {
		return errors.New("tx closed")
	}
	t.done = true
	t.db.committed++
	return nil
}

// Rollback after Commit is a no-op, as in pgx.
func (t *fakeTx) Rollback(context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.db.rolledBack++
	return nil
}

func pgError(code, constraint string) error {
	return fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: code, ConstraintName: constraint})
}
