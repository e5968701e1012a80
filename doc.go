/*
Sqlbuild compiles typed SQL values into SQL text and named query parameters,
and renders column definitions for schema statements.

The package targets databases with native array types, such as PostgreSQL.
Values are never interpolated into the SQL, they are bound to generated
placeholders and passed to the database alongside it.

# Arrays

An array expression has an element type, a dimension and a value:

	sqlbuild.NewArray([]int{1, 2, 3}, "integer", 1)

builds to

	ARRAY[:qp0, :qp1, :qp2]::integer[]

with the parameters :qp0=1, :qp1=2 and :qp2=3. Multidimensional arrays are
built one dimension at a time:

	sqlbuild.NewArray([][]int{{1, 2}, {3, 4}}, "integer", 2)
	// ARRAY[ARRAY[:qp0, :qp1]::integer[], ARRAY[:qp2, :qp3]::integer[]]::integer[][]

The value of an array may be any Go slice or array, an iter.Seq[any], or a
sub-query created with [Select], in which case the array is filled by the
rows of the query:

	sqlbuild.NewArray(sqlbuild.Select("SELECT id FROM person", nil), "integer", 1)
	// ARRAY(SELECT id FROM person)::integer[]

An array without elements, or with a value that is neither a sequence nor a
sub-query, builds to the empty array literal '{}'. An empty element type
leaves the array without a cast and the database must infer it.

Elements of arrays with the element type json or jsonb are JSON encoded.
Elements that are themselves expressions, such as [Raw] SQL, are built in
place.

# Building

[Build] returns a [Fragment]: the SQL and the ordered parameters. Each call
uses its own parameter map, so placeholder names are unique within a
fragment. [Compose] joins literal SQL, expressions and earlier fragments
into one statement. Parameters of sub-queries, raw SQL and fragments that
reuse a name already bound are renamed, so a value is never replaced:

	inner, _ := sqlbuild.Build(sqlbuild.NewArray([]int{100}, "integer", 1))
	f, _ := sqlbuild.Compose("SELECT ", sqlbuild.NewArray([]int{5}, "integer", 1), " || ", inner)
	// SELECT ARRAY[:qp0]::integer[] || ARRAY[:qp1]::integer[]

Fragments can be run with [DB], which binds the parameters as sql.Named
values, or with pgx using [Fragment.Pgx].

# Columns

[Column] builds the definition of a table column:

	sqlbuild.Column("VARCHAR", 255).NotNull().Unique().Default("x")
	// VARCHAR(255) NOT NULL UNIQUE DEFAULT 'x'

Default values and check expressions are written into the SQL without
escaping. They must only ever hold constants chosen by the programmer.
*/
package sqlbuild
