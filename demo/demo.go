// Package demo walks through building schema and array SQL and running it on
// SQLite.
package demo

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/canonical/sqlbuild"
)

type Person struct {
	Name     string
	Height   int
	HomeTown string
}

// Run creates a people table in an in-memory SQLite database, fills it and
// writes the results of a few queries to w, followed by the PostgreSQL form
// of an array query. Query results are formatted for lang. The generated SQL
// is the same in every language.
func Run(ctx context.Context, w io.Writer, lang language.Tag) error {
	printer := message.NewPrinter(lang)

	sqldb, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return err
	}
	defer sqldb.Close()
	sqldb.SetMaxOpenConns(1)

	db := sqlbuild.NewDB(sqldb)
	defer db.Close()

	create, err := sqlbuild.Compose(
		"CREATE TABLE people (name ", sqlbuild.Column("VARCHAR", 64).NotNull().Unique(),
		", height_cm ", sqlbuild.Column("INTEGER", nil).NotNull().Check("height_cm > 0"),
		", home_town ", sqlbuild.Column("TEXT", nil).Default("unknown"),
		")",
	)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, create.SQL)
	if _, err := db.Exec(ctx, create); err != nil {
		return err
	}

	people := []Person{
		{"Fred", 178, "Leeds"},
		{"Mary", 165, "York"},
		{"Dave", 190, ""},
	}
	for _, p := range people {
		insert, err := sqlbuild.Compose(
			"INSERT INTO people (name, height_cm) VALUES (", sqlbuild.Raw(":name", sqlbuild.M{":name": p.Name}),
			", ", p.Height, ")",
		)
		if err != nil {
			return err
		}
		if _, err := db.Exec(ctx, insert); err != nil {
			return err
		}
		if p.HomeTown == "" {
			continue
		}
		update, err := sqlbuild.Compose(
			"UPDATE people SET home_town = ", sqlbuild.Raw(":town", sqlbuild.M{":town": p.HomeTown}),
			" WHERE name = ", sqlbuild.Raw(":name", sqlbuild.M{":name": p.Name}),
		)
		if err != nil {
			return err
		}
		if _, err := db.Exec(ctx, update); err != nil {
			return err
		}
	}

	tallerThan, err := sqlbuild.Compose("SELECT name, home_town, height_cm FROM people WHERE height_cm > ", 170, " ORDER BY name")
	if err != nil {
		return err
	}
	rows, err := db.Query(ctx, tallerThan)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var name, town string
		var height int
		if err := rows.Scan(&name, &town, &height); err != nil {
			return err
		}
		printer.Fprintf(w, "%s from %s, %.2f m\n", name, town, float64(height)/100)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	// SQLite has no array type, show the PostgreSQL query instead.
	names := make([]string, len(people))
	for i, p := range people {
		names[i] = p.Name
	}
	byName, err := sqlbuild.Compose("SELECT * FROM people WHERE name = ANY(", sqlbuild.NewArray(names, "text", 1), ")")
	if err != nil {
		return err
	}
	pgSQL, args := byName.Pgx()
	fmt.Fprintln(w, pgSQL)
	fmt.Fprintln(w, args)
	return nil
}
