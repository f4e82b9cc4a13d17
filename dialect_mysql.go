package keysetpager

// mysqlDialect relies on MySQL's native NULL placement (NULLS FIRST on ASC,
// NULLS LAST on DESC), which already matches the unified convention.
type mysqlDialect struct {
	baseDialect
}

// NewMySQLDialect returns the MySQL dialect.
func NewMySQLDialect() Dialect {
	return mysqlDialect{}
}

var _ Dialect = mysqlDialect{}
