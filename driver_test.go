// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlbuild_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"sync"

	"github.com/mattn/go-sqlite3"
)

// This file contains a wrapper sql.Driver over the SQLite driver which
// counts the prepared statements opened and closed by each test. We can
// later use that information to check for statement leaks.

// openedStmts and closedStmts store the number of statements created/closed
// indexed by test name. The stmtRegistryMutex must be used when accessing
// them.
var openedStmts = map[string]int{}
var closedStmts = map[string]int{}
var stmtRegistryMutex sync.RWMutex

type countingDriver struct {
	driver.Driver
}

type countingConn struct {
	testName string
	*sqlite3.SQLiteConn
}

type countingStmt struct {
	testName string
	*sqlite3.SQLiteStmt
}

func (s *countingStmt) Close() error {
	stmtRegistryMutex.Lock()
	closedStmts[s.testName]++
	stmtRegistryMutex.Unlock()
	return s.SQLiteStmt.Close()
}

func (c *countingConn) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	s, err := c.SQLiteConn.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	sm, ok := s.(*sqlite3.SQLiteStmt)
	if !ok {
		panic(fmt.Sprintf("internal error: base driver is not SQLite, got %T", s))
	}
	stmtRegistryMutex.Lock()
	openedStmts[c.testName]++
	stmtRegistryMutex.Unlock()
	return &countingStmt{SQLiteStmt: sm, testName: c.testName}, nil
}

func (c *countingConn) Prepare(query string) (driver.Stmt, error) {
	return c.PrepareContext(context.Background(), query)
}

const testNameTag = "testName"

// Open expects the DSN to contain the test name using the testNameTag
// attribute.
func (d *countingDriver) Open(name string) (driver.Conn, error) {
	var testName string
	if _, parameters, ok := strings.Cut(name, "?"); ok {
		for _, p := range strings.Split(parameters, "&") {
			if v, ok := strings.CutPrefix(p, testNameTag+"="); ok {
				testName = v
			}
		}
	}
	if testName == "" {
		panic("internal error: testName is not found in the db DSN")
	}

	baseConn, err := d.Driver.Open(name)
	if err != nil {
		return nil, err
	}
	sqliteConn, ok := baseConn.(*sqlite3.SQLiteConn)
	if !ok {
		panic("internal error: base driver is not SQLite")
	}
	return &countingConn{SQLiteConn: sqliteConn, testName: testName}, nil
}

func init() {
	sql.Register("sqlite3_stmtCounted", &countingDriver{
		&sqlite3.SQLiteDriver{},
	})
}

func stmtCounts(testName string) (opened, closed int) {
	stmtRegistryMutex.RLock()
	defer stmtRegistryMutex.RUnlock()
	return openedStmts[testName], closedStmts[testName]
}
