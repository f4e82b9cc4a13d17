package keysetpager

// sqliteDialect relies on SQLite's native NULL placement, which already
// matches the unified convention.
type sqliteDialect struct {
	baseDialect
}

// NewSQLiteDialect returns the SQLite dialect.
func NewSQLiteDialect() Dialect {
	return sqliteDialect{}
}

var _ Dialect = sqliteDialect{}
