// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlbuild_test

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	. "gopkg.in/check.v1"

	"github.com/canonical/sqlbuild"
)

type CacheSuite struct{}

var _ = Suite(&CacheSuite{})

func (s *CacheSuite) openDB(c *C) *sqlbuild.DB {
	sqldb, err := sql.Open("sqlite3_stmtCounted", "file:"+c.TestName()+"?mode=memory&cache=shared&testName="+c.TestName())
	c.Assert(err, IsNil)
	return sqlbuild.NewDB(sqldb)
}

func (s *CacheSuite) TestPreparedStatementReuse(c *C) {
	db := s.openDB(c)
	defer db.PlainDB().Close()

	f, err := sqlbuild.Compose("SELECT ", 1)
	c.Assert(err, IsNil)

	var n int
	c.Assert(db.Get(context.Background(), f, &n), IsNil)
	c.Check(n, Equals, 1)
	c.Check(db.NumCachedStmts(), Equals, 1)

	// A fragment with the same SQL and other values reuses the statement.
	f, err = sqlbuild.Compose("SELECT ", 2)
	c.Assert(err, IsNil)
	c.Assert(db.Get(context.Background(), f, &n), IsNil)
	c.Check(n, Equals, 2)
	c.Check(db.NumCachedStmts(), Equals, 1)

	opened, closed := stmtCounts(c.TestName())
	c.Check(opened, Equals, 1)
	c.Check(closed, Equals, 0)

	f, err = sqlbuild.Compose("SELECT ", 3, " + ", 4)
	c.Assert(err, IsNil)
	c.Assert(db.Get(context.Background(), f, &n), IsNil)
	c.Check(n, Equals, 7)
	c.Check(db.NumCachedStmts(), Equals, 2)

	c.Assert(db.Close(), IsNil)
	c.Check(db.NumCachedStmts(), Equals, 0)
	opened, closed = stmtCounts(c.TestName())
	c.Check(opened, Equals, 2)
	c.Check(closed, Equals, 2)
}

func (s *CacheSuite) TestConcurrentPrepare(c *C) {
	db := s.openDB(c)
	defer db.PlainDB().Close()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := sqlbuild.Compose("SELECT ", i)
			if err != nil {
				errs <- err
				return
			}
			var n int
			if err := db.Get(context.Background(), f, &n); err != nil {
				errs <- err
				return
			}
			if n != i {
				errs <- fmt.Errorf("got %d, want %d", n, i)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		c.Check(err, IsNil)
	}
	c.Check(db.NumCachedStmts(), Equals, 1)

	c.Assert(db.Close(), IsNil)
	opened, closed := stmtCounts(c.TestName())
	c.Check(opened, Equals, closed)
}

func (s *CacheSuite) TestPrepareError(c *C) {
	db := s.openDB(c)
	defer db.PlainDB().Close()

	f, err := sqlbuild.Compose("SELECT * FROM missing WHERE id = ", 1)
	c.Assert(err, IsNil)
	_, err = db.Query(context.Background(), f)
	c.Check(err, ErrorMatches, `cannot prepare "SELECT \* FROM missing WHERE id = :qp0": no such table: missing`)
	c.Check(db.NumCachedStmts(), Equals, 0)
}

func (s *CacheSuite) TestClosedDB(c *C) {
	db := s.openDB(c)
	defer db.PlainDB().Close()

	c.Assert(db.Close(), IsNil)
	f, err := sqlbuild.Compose("SELECT ", 1)
	c.Assert(err, IsNil)
	_, err = db.Exec(context.Background(), f)
	c.Check(err, ErrorMatches, `cannot prepare "SELECT :qp0": database closed`)

	opened, _ := stmtCounts(c.TestName())
	c.Check(opened, Equals, 0)
}

func (s *CacheSuite) TestPrepareIgnoresCancellation(c *C) {
	db := s.openDB(c)
	defer db.PlainDB().Close()
	defer db.Close()

	f, err := sqlbuild.Compose("SELECT ", 1)
	c.Assert(err, IsNil)

	// The statement is prepared and cached even though the caller gave up.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = db.Exec(ctx, f)
	c.Check(err, ErrorMatches, "cannot execute statement: context canceled")
	c.Check(db.NumCachedStmts(), Equals, 1)

	var n int
	c.Assert(db.Get(context.Background(), f, &n), IsNil)
	c.Check(n, Equals, 1)
	opened, _ := stmtCounts(c.TestName())
	c.Check(opened, Equals, 1)
}
