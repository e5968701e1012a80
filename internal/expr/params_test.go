// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package expr_test

import (
	. "gopkg.in/check.v1"

	"github.com/canonical/sqlbuild/internal/expr"
)

func (s *ExprSuite) TestParamsAdd(c *C) {
	params := expr.NewParams()
	c.Check(params.Add("a"), Equals, ":qp0")
	c.Check(params.Add("b"), Equals, ":qp1")
	c.Check(params.Len(), Equals, 2)

	v, ok := params.Get(":qp1")
	c.Check(ok, Equals, true)
	c.Check(v, Equals, "b")

	_, ok = params.Get(":qp2")
	c.Check(ok, Equals, false)
}

func (s *ExprSuite) TestParamsSetKeepsPosition(c *C) {
	params := expr.NewParams()
	params.Set(":x", 1)
	params.Set(":y", 2)
	params.Set(":x", 3)
	c.Check(paramList(params), DeepEquals, []param{{":x", 3}, {":y", 2}})
}

func (s *ExprSuite) TestParamsAddSkipsBoundNames(c *C) {
	params := expr.NewParams()
	params.Set(":qp1", "x")
	c.Check(params.Add("a"), Equals, ":qp2")
	c.Check(params.Add("b"), Equals, ":qp3")
	c.Check(paramList(params), DeepEquals, []param{{":qp1", "x"}, {":qp2", "a"}, {":qp3", "b"}})
}

func (s *ExprSuite) TestParamsMerge(c *C) {
	params := expr.NewParams()
	params.Add(0)
	sql := params.Merge("c = :c AND a = :a AND b = :b", map[string]any{":c": 3, ":a": 1, ":b": 2})
	c.Check(sql, Equals, "c = :c AND a = :a AND b = :b")
	c.Check(params.Merge("SELECT 1", nil), Equals, "SELECT 1")
	c.Check(params.Names(), DeepEquals, []string{":qp0", ":a", ":b", ":c"})
	// The next name is derived from the size of the map.
	c.Check(params.Add(4), Equals, ":qp4")
}

func (s *ExprSuite) TestParamsMergeRenamesBoundNames(c *C) {
	params := expr.NewParams()
	params.Add(1)
	sql := params.Merge(
		"a = :qp0 AND b = :qp1 AND c = :x AND d = ':qp0' AND e = :qp0",
		map[string]any{":qp0": 10, ":qp1": 11, ":x": 12},
	)
	c.Check(sql, Equals, "a = :qp3 AND b = :qp1 AND c = :x AND d = ':qp0' AND e = :qp3")
	c.Check(paramList(params), DeepEquals, []param{{":qp0", 1}, {":qp1", 11}, {":x", 12}, {":qp3", 10}})
}

func (s *ExprSuite) TestParamsZeroValue(c *C) {
	var params expr.Params
	c.Check(params.Len(), Equals, 0)
	c.Check(params.Add(1), Equals, ":qp0")
	c.Check(params.Map(), DeepEquals, map[string]any{":qp0": 1})
}

func (s *ExprSuite) TestParamsNamesIsCopy(c *C) {
	params := expr.NewParams()
	params.Add(1)
	names := params.Names()
	names[0] = ":changed"
	c.Check(params.Names(), DeepEquals, []string{":qp0"})
}
