package sqlbuild

func (db *DB) NumCachedStmts() int {
	return db.cache.len()
}

func RewritePlaceholders(sql string, params *Params, marker string) string {
	return rewritePlaceholders(sql, params, marker)
}
