// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlbuild

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

var ErrNoRows = sql.ErrNoRows

var errDBClosed = errors.New("database closed")

// DB runs fragments on a database/sql database. The statements run are
// prepared once and cached for the lifetime of the DB.
type DB struct {
	sqldb *sql.DB
	cache *statementCache
}

// NewDB creates a new [DB] from a [sql.DB].
func NewDB(sqldb *sql.DB) *DB {
	if sqldb == nil {
		return nil
	}
	return &DB{sqldb: sqldb, cache: newStatementCache()}
}

// PlainDB returns the underlying database object.
func (db *DB) PlainDB() *sql.DB {
	return db.sqldb
}

// prepare returns the cached prepared statement for f.
func (db *DB) prepare(ctx context.Context, f *Fragment) (*sql.Stmt, error) {
	if f == nil {
		return nil, errors.New("cannot run nil fragment")
	}
	stmt, err := db.cache.prepareStmt(ctx, db.sqldb, f.SQL)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot prepare %q", f.SQL)
	}
	return stmt, nil
}

// Exec runs f without returning any rows.
func (db *DB) Exec(ctx context.Context, f *Fragment) (sql.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	stmt, err := db.prepare(ctx, f)
	if err != nil {
		return nil, err
	}
	res, err := stmt.ExecContext(ctx, f.Args()...)
	if err != nil {
		return nil, errors.Wrap(err, "cannot execute statement")
	}
	return res, nil
}

// Query runs f and returns the resulting rows. The rows must be closed by
// the caller.
func (db *DB) Query(ctx context.Context, f *Fragment) (*sql.Rows, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	stmt, err := db.prepare(ctx, f)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.QueryContext(ctx, f.Args()...)
	if err != nil {
		return nil, errors.Wrap(err, "cannot run query")
	}
	return rows, nil
}

// Get runs f and scans the first row returned into dest. It returns
// [ErrNoRows] if there are no rows.
func (db *DB) Get(ctx context.Context, f *Fragment, dest ...any) error {
	rows, err := db.Query(ctx, f)
	if err != nil {
		return err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return errors.Wrap(err, "cannot run query")
		}
		return ErrNoRows
	}
	if err := rows.Scan(dest...); err != nil {
		return errors.Wrap(err, "cannot scan row")
	}
	return rows.Close()
}

// Close closes the prepared statements cached by db. It does not close the
// underlying sql.DB. Fragments cannot be run on db once it is closed.
func (db *DB) Close() error {
	return db.cache.close()
}
