package keysetpager

import (
	"fmt"

	"gorm.io/gorm"
)

// CursorKind tells a dialect what navigation shape is in play, so it can
// pick the right limit syntax (MSSQL switches between TOP and OFFSET/FETCH).
type CursorKind uint8

const (
	CursorKindNone CursorKind = iota
	CursorKindNext
	CursorKindPrev
	CursorKindOffset
)

// Dialect adapts pagination to one SQL engine: ORDER BY emission with the
// unified NULL placement (ASC => NULLS FIRST, DESC => NULLS LAST), the
// engine's limit syntax, OFFSET, and the keyset WHERE predicate.
//
// Dialects are stateless and freely shareable.
type Dialect interface {
	// ApplySort appends one ORDER BY entry per ordering. Engines whose
	// native NULL placement disagrees with the unified convention emit
	// explicit NULLS FIRST/LAST clauses.
	ApplySort(db *gorm.DB, sorts Orderings) *gorm.DB

	// ApplyLimit caps the row count. The kind hint lets the dialect pick
	// between syntaxes when the engine has more than one.
	ApplyLimit(db *gorm.DB, limit int, kind CursorKind) *gorm.DB

	// ApplyOffset skips the first offset rows.
	ApplyOffset(db *gorm.DB, offset int) *gorm.DB

	// ApplyCursor appends the keyset WHERE predicate anchored at the payload.
	ApplyCursor(db *gorm.DB, sorts Orderings, payload *Payload) (*gorm.DB, error)
}

// baseDialect carries the behavior shared by every engine; concrete dialects
// embed it and override what differs.
type baseDialect struct{}

// ApplySort - implements Dialect. Plain "col ASC|DESC" entries; correct for
// engines whose native defaults already match the unified NULL placement.
func (baseDialect) ApplySort(db *gorm.DB, sorts Orderings) *gorm.DB {
	return db.Order(sorts.ToSQL())
}

// ApplyLimit - implements Dialect.
func (baseDialect) ApplyLimit(db *gorm.DB, limit int, _ CursorKind) *gorm.DB {
	return db.Limit(limit)
}

// ApplyOffset - implements Dialect.
func (baseDialect) ApplyOffset(db *gorm.DB, offset int) *gorm.DB {
	return db.Offset(offset)
}

// ApplyCursor - implements Dialect. Predicate synthesis is shared by all
// engines; only its surroundings differ per dialect.
func (baseDialect) ApplyCursor(db *gorm.DB, sorts Orderings, payload *Payload) (*gorm.DB, error) {
	predicate, err := buildKeysetPredicate(sorts, payload)
	if err != nil {
		return nil, fmt.Errorf("cannot build keyset predicate: %w", err)
	}

	exp := predicate.toGORMExpression()
	if exp == nil {
		return db, nil
	}

	return db.Clauses(exp), nil
}
