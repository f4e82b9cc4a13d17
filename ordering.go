package keysetpager

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
)

// Direction defines the sort direction for the requested dataset.
type Direction string

const (
	DirectionASC  Direction = "ASC"
	DirectionDESC Direction = "DESC"
)

func (o Direction) Valid() bool {
	return o == DirectionASC || o == DirectionDESC
}

// orDefault resolves the zero value to ASC.
func (o Direction) orDefault() Direction {
	if o == "" {
		return DirectionASC
	}

	return o
}

// Invert swaps ASC and DESC.
func (o Direction) Invert() Direction {
	switch o.orDefault() {
	case DirectionASC:
		return DirectionDESC
	case DirectionDESC:
		return DirectionASC
	default:
		panic(fmt.Errorf("cannot invert direction '%s'", o))
	}
}

func (o Direction) ForOperator() Operator {
	switch o.orDefault() {
	case DirectionASC:
		return OperatorGT
	case DirectionDESC:
		return OperatorLT
	default:
		panic(fmt.Errorf("cannot map direction '%s' to operator", o))
	}
}

type (
	Orderings []OrderBy

	// OrderBy is one element of a sort set. Column goes verbatim into the
	// query; Output names the key under which the column shows up in a
	// selected row. An empty Output derives from Column (the part after the
	// last dot). An empty Direction means ASC.
	//
	// IMPORTANT:
	// The last element of a sort set must reference a unique, non-nullable
	// column. That is what makes page boundaries deterministic; the library
	// cannot verify it against the schema.
	OrderBy struct {
		Column    string
		Output    string
		Direction Direction
	}

	ColumnAlias = string

	// ColumnMapping maps external column aliases to fully qualified column names.
	// Use it when bare column names could cause an "ambiguous column name" error.
	// Key is an external alias, value is an internal column name.
	ColumnMapping = map[ColumnAlias]string
)

var _availableColumnNameSymbols = append([]rune("_.'`\""), lo.AlphanumericCharset...)

// Key returns the row key the ordering column is selected under.
func (o OrderBy) Key() string {
	if o.Output != "" {
		return o.Output
	}

	if idx := strings.LastIndex(o.Column, "."); idx != -1 {
		return o.Column[idx+1:]
	}

	return o.Column
}

// Invert flips the direction, preserving Column and Output.
func (o OrderBy) Invert() OrderBy {
	o.Direction = o.Direction.orDefault().Invert()

	return o
}

func (o OrderBy) validate() error {
	if !o.Direction.orDefault().Valid() {
		return fmt.Errorf("invalid ordering direction '%s'", o.Direction)
	}

	// Guard against SQL injection by restricting allowed characters in column names.
	if !lo.Every(_availableColumnNameSymbols, []rune(o.Column)) {
		return fmt.Errorf("ordering column name contains forbidden symbols '%s'", o.Column)
	}

	return nil
}

// Invert returns a copy with every direction flipped. Used for backward
// paging: the forward predicate builder runs against the inverted set and
// the final slice is reversed.
func (o Orderings) Invert() Orderings {
	return lo.Map(o, func(item OrderBy, _ int) OrderBy {
		return item.Invert()
	})
}

// Signature returns a short deterministic fingerprint of the sort set.
// Tokens carry it so a cursor minted under one ordering is rejected when
// replayed against another. Stable across processes.
func (o Orderings) Signature() string {
	parts := lo.Map(o, func(item OrderBy, _ int) string {
		return fmt.Sprintf("%s:%s", item.Key(), strings.ToLower(string(item.Direction.orDefault())))
	})

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))

	return hex.EncodeToString(sum[:])[:8]
}

// ToSQLSlice converts Orderings to a slice of strings in the form
// "<order_column> <order_direction>" suitable for SQL query builders.
//
// Example: for Orderings [{Column: "a"}, {Column: "b", Direction: DirectionDESC}]
// returns ["a ASC", "b DESC"].
func (o Orderings) ToSQLSlice() []string {
	ret := make([]string, 0, len(o))
	for _, ordering := range o {
		ret = append(ret, fmt.Sprintf("%s %s", ordering.Column, ordering.Direction.orDefault()))
	}

	return ret
}

// ToSQL converts Orderings to a single string
// "<order_column_1> <order_direction_1>, <order_column_2> <order_direction_2>"
// suitable for embedding into an SQL query.
//
// Usage:
//
//	query := fmt.Sprintf("SELECT * FROM table ORDER BY %s", orderings.ToSQL())
func (o Orderings) ToSQL() string {
	return strings.Join(o.ToSQLSlice(), ", ")
}

func (o Orderings) validate() error {
	if len(o) == 0 {
		return fmt.Errorf("empty ordering list")
	}

	var err error
	for _, ordering := range o {
		err = ordering.validate()
		if err != nil {
			return err
		}
	}

	return nil
}

// ParseSort builds Orderings from a list of strings in the format
// "column asc|desc". Column aliases are resolved via ColumnMapping; the
// alias doubles as the Output key. Returns an error if an alias is not
// found in the mapping.
func ParseSort(stringsOrderings []string, columnMapping ColumnMapping) (Orderings, error) {
	ret := make([]OrderBy, 0, len(stringsOrderings))
	aliases := lo.Keys(columnMapping)

	for _, stringOrdering := range stringsOrderings {
		cutStringOrdering := strings.Split(strings.TrimSpace(stringOrdering), " ")
		if len(cutStringOrdering) != 2 {
			return nil, fmt.Errorf("invalid ordering string format '%s'", stringOrdering)
		}

		columnAlias := cutStringOrdering[0]
		direction := Direction(strings.ToUpper(cutStringOrdering[1]))
		columnName := columnMapping[columnAlias]
		if columnName == "" {
			return nil, fmt.Errorf("invalid column alias. closest: '%s'", closestAlias(columnAlias, aliases))
		}

		ret = append(ret, OrderBy{
			Column:    columnName,
			Output:    columnAlias,
			Direction: direction,
		})
	}

	return ret, nil
}

func closestAlias(input ColumnAlias, dataSet []ColumnAlias) ColumnAlias {
	minDist := math.MaxInt
	closest := ""

	for _, dataSetAlias := range dataSet {
		dist := levenshtein([]rune(dataSetAlias), []rune(input))
		if dist < minDist {
			minDist = dist
			closest = dataSetAlias
		}
	}

	return closest
}
