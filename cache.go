// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlbuild

import (
	"context"
	"database/sql"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/singleflight"
)

// statementCache holds the sql.Stmt values prepared on one DB, indexed by
// the hash of their SQL. Statements whose SQL hashes to the same value share
// a bucket.
//
// The mutex must be locked when accessing stmts.
type statementCache struct {
	stmts map[uint64][]*sql.Stmt
	sqls  map[*sql.Stmt]string
	mutex sync.RWMutex
	// group ensures that concurrent queries with the same SQL prepare it
	// only once.
	group  singleflight.Group
	closed bool
}

func newStatementCache() *statementCache {
	return &statementCache{
		stmts: map[uint64][]*sql.Stmt{},
		sqls:  map[*sql.Stmt]string{},
	}
}

// prepareSubstrate is an object that queries can be prepared on, e.g. a sql.DB
// or sql.Conn. It is used in prepareStmt.
type prepareSubstrate interface {
	PrepareContext(context.Context, string) (*sql.Stmt, error)
}

// lookup returns the cached statement for query. It returns errDBClosed
// once the cache is closed.
func (sc *statementCache) lookup(hash uint64, query string) (*sql.Stmt, bool, error) {
	sc.mutex.RLock()
	defer sc.mutex.RUnlock()
	if sc.closed {
		return nil, false, errDBClosed
	}
	for _, stmt := range sc.stmts[hash] {
		if sc.sqls[stmt] == query {
			return stmt, true, nil
		}
	}
	return nil, false, nil
}

// prepareStmt returns the prepared statement for query, preparing it on ps
// if it is not already cached.
func (sc *statementCache) prepareStmt(ctx context.Context, ps prepareSubstrate, query string) (*sql.Stmt, error) {
	hash := xxh3.HashString(query)
	if stmt, ok, err := sc.lookup(hash, query); err != nil || ok {
		return stmt, err
	}

	key := strconv.FormatUint(hash, 16) + ":" + query
	v, err, _ := sc.group.Do(key, func() (any, error) {
		// Check if a statement has been inserted by someone else since we
		// last checked.
		if stmt, ok, err := sc.lookup(hash, query); err != nil || ok {
			return stmt, err
		}
		// Other callers may be waiting on this preparation, it must not be
		// cancelled with the context of the first one.
		stmt, err := ps.PrepareContext(context.WithoutCancel(ctx), query)
		if err != nil {
			return nil, err
		}

		sc.mutex.Lock()
		defer sc.mutex.Unlock()
		if sc.closed {
			stmt.Close()
			return nil, errDBClosed
		}
		sc.stmts[hash] = append(sc.stmts[hash], stmt)
		sc.sqls[stmt] = query
		return stmt, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*sql.Stmt), nil
}

// len returns the number of cached statements.
func (sc *statementCache) len() int {
	sc.mutex.RLock()
	defer sc.mutex.RUnlock()
	return len(sc.sqls)
}

// close closes every cached statement and stops further caching. The first
// error encountered is returned.
func (sc *statementCache) close() error {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	var err error
	for stmt := range sc.sqls {
		if cerr := stmt.Close(); err == nil {
			err = cerr
		}
	}
	sc.stmts = map[uint64][]*sql.Stmt{}
	sc.sqls = map[*sql.Stmt]string{}
	sc.closed = true
	return err
}
