package keysetpager

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// postgresDialect emits explicit NULL placement: PostgreSQL natively sorts
// NULLS FIRST on DESC, which disagrees with the unified convention.
type postgresDialect struct {
	baseDialect
}

// NewPostgresDialect returns the PostgreSQL dialect.
func NewPostgresDialect() Dialect {
	return postgresDialect{}
}

// ApplySort - implements Dialect.
func (postgresDialect) ApplySort(db *gorm.DB, sorts Orderings) *gorm.DB {
	entries := make([]string, 0, len(sorts))
	for _, orderBy := range sorts {
		direction := orderBy.Direction.orDefault()

		placement := "NULLS FIRST"
		if direction == DirectionDESC {
			placement = "NULLS LAST"
		}

		entries = append(entries, fmt.Sprintf("%s %s %s", orderBy.Column, direction, placement))
	}

	return db.Order(strings.Join(entries, ", "))
}

var _ Dialect = postgresDialect{}
