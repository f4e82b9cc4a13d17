package keysetpager

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// mssqlDialect handles SQL Server's limit syntax: TOP for keyset paging and
// OFFSET ... FETCH NEXT n ROWS ONLY when an offset cursor is in play. NULL
// placement natively matches the unified convention.
type mssqlDialect struct {
	baseDialect
}

// NewMSSQLDialect returns the Microsoft SQL Server dialect.
func NewMSSQLDialect() Dialect {
	return mssqlDialect{}
}

// ApplyLimit - implements Dialect.
func (mssqlDialect) ApplyLimit(db *gorm.DB, limit int, kind CursorKind) *gorm.DB {
	if kind == CursorKindOffset {
		// The sqlserver driver renders Limit alongside Offset as
		// "OFFSET n ROWS FETCH NEXT m ROWS ONLY".
		return db.Limit(limit)
	}

	// TOP folds into the SELECT list, so a column list picked by the caller
	// must be preserved.
	columns := "*"
	if len(db.Statement.Selects) > 0 {
		columns = strings.Join(db.Statement.Selects, ", ")
	}

	return db.Select(fmt.Sprintf("TOP (?) %s", columns), limit)
}

var _ Dialect = mssqlDialect{}
