// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

/*
Package expr lowers typed expression values into SQL text and a map of bound
parameters. It covers building the SQL only, it does not interact with
databases.

# Expressions

An expression is an immutable description of a value: a typed array
([ArrayExpr]), a JSON value ([JSONExpr]) or a piece of literal SQL with its
own parameters ([RawExpr]). Arrays and JSON values may also be filled from a
sub-query ([Query]).

# Building

A [Builder] dispatches each expression to the routine that renders it. Values
that are not expressions are never written into the SQL, they are stored in a
[Params] map under a generated placeholder name and the placeholder is
written instead.

Array expressions are built recursively. An array of dimension N is built by
building each of its elements as an array of dimension N-1 until dimension 1
is reached, at which point the elements are bound as parameters. All the
parameters of one top level build end up in the same Params.

# Parameters

Placeholder names are the prefix ":qp" followed by the number of parameters
already in the map. Params is not safe for concurrent use and one Params must
not be shared between builds that run at the same time.
*/
package expr
