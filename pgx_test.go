// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlbuild_test

import (
	"context"

	"github.com/jackc/pgx/v5"
	. "gopkg.in/check.v1"

	"github.com/canonical/sqlbuild"
)

type PgxSuite struct{}

var _ = Suite(&PgxSuite{})

func (s *PgxSuite) TestPgx(c *C) {
	f, err := sqlbuild.Build(sqlbuild.NewArray([][]int{{1, 2}, {3, 4}}, "integer", 2))
	c.Assert(err, IsNil)

	sql, args := f.Pgx()
	c.Check(sql, Equals, "ARRAY[ARRAY[@qp0, @qp1]::integer[], ARRAY[@qp2, @qp3]::integer[]]::integer[][]")
	c.Check(args, DeepEquals, pgx.NamedArgs{"qp0": 1, "qp1": 2, "qp2": 3, "qp3": 4})

	// pgx turns the named arguments into positional parameters.
	positional, values, err := args.RewriteQuery(context.Background(), nil, sql, nil)
	c.Assert(err, IsNil)
	c.Check(positional, Equals, "ARRAY[ARRAY[$1, $2]::integer[], ARRAY[$3, $4]::integer[]]::integer[][]")
	c.Check(values, DeepEquals, []any{1, 2, 3, 4})
}

func (s *PgxSuite) TestPgxCompose(c *C) {
	f, err := sqlbuild.Compose(
		"SELECT ':qp0', \"col:qp1\", tags::text[] FROM t WHERE tags && ",
		sqlbuild.NewArray([]string{"a", "b"}, "text", 1),
		" AND id = ", 7,
		" AND note <> ':missing'",
	)
	c.Assert(err, IsNil)
	c.Check(f.SQL, Equals, "SELECT ':qp0', \"col:qp1\", tags::text[] FROM t WHERE tags && ARRAY[:qp0, :qp1]::text[]"+
		" AND id = :qp2 AND note <> ':missing'")

	sql, args := f.Pgx()
	c.Check(sql, Equals, "SELECT ':qp0', \"col:qp1\", tags::text[] FROM t WHERE tags && ARRAY[@qp0, @qp1]::text[]"+
		" AND id = @qp2 AND note <> ':missing'")
	c.Check(args, DeepEquals, pgx.NamedArgs{"qp0": "a", "qp1": "b", "qp2": 7})
}

func (s *PgxSuite) TestRewritePlaceholders(c *C) {
	params := sqlbuild.NewParams()
	params.Add("x")
	params.Set(":name", "y")
	// Bound as :qp2 to :qp11.
	for i := 0; i < 10; i++ {
		params.Add(i)
	}

	tests := []struct {
		sql      string
		expected string
	}{
		{":qp0", "$qp0"},
		{":qp1 :qp10", ":qp1 $qp10"},
		{":qp12", ":qp12"},
		{"a::int + :name", "a::int + $name"},
		{"x = :", "x = :"},
		{"'it''s :qp0' || :qp0", "'it''s :qp0' || $qp0"},
		{"'unterminated :qp0", "'unterminated :qp0"},
		{"(:qp0,:qp2)", "($qp0,$qp2)"},
	}
	for _, t := range tests {
		c.Check(sqlbuild.RewritePlaceholders(t.sql, params, "$"), Equals, t.expected, Commentf("sql %q", t.sql))
	}
}
