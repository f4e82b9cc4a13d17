package keysetpager

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"gorm.io/gorm/clause"
)

type (
	// tExpr is a node of a synthesized boolean WHERE tree. Every node renders
	// both into a gorm clause expression and into a raw SQL condition with
	// placeholder values.
	tExpr interface {
		toGORMExpression() clause.Expression
		toSQLClause() (string, []driver.Value)
	}

	// tConjunct is a leaf of the form Operator(Column, Value). Unary
	// operators (IS NULL / IS NOT NULL) carry no value.
	tConjunct struct {
		Column   string
		Value    Value
		Operator Operator
	}

	// tAnd joins child expressions with AND.
	tAnd []tExpr

	// tOr joins child expressions with OR.
	tOr []tExpr
)

// toGORMExpression converts a conjunct of the form Operator(Column, Value)
// into an SQL condition "Column Operator Value" represented as a clause.Expression.
//
// IMPORTANT: The method uses the SQL placeholder "?".
//
// Example:
//
//	tConjunct = { Column: "id", Operator: ">", Value: IntValue(123)}
//
// Result:
//
//	"id > 123"
func (c tConjunct) toGORMExpression() clause.Expression {
	sqlClause, args := c.toSQLClause()

	vars := make([]any, 0, len(args))
	for _, arg := range args {
		vars = append(vars, arg)
	}

	return clause.Expr{
		SQL:  sqlClause,
		Vars: vars,
	}
}

// toSQLClause converts a conjunct of the form Operator(Column, Value) to
// an SQL condition of the form "Column Operator ?" with a corresponding value.
// Unary operators render without a placeholder. Returns the SQL string and
// the values for the placeholders.
//
// Example:
//
//	tConjunct = { Column: "id", Operator: ">", Value: IntValue(123)}
//
// Result:
//
//	("id > ?", [123])
func (c tConjunct) toSQLClause() (string, []driver.Value) {
	if c.Operator.unary() {
		return fmt.Sprintf("%s %s", c.Column, c.Operator), nil
	}

	return fmt.Sprintf("%s %s ?", c.Column, c.Operator), []driver.Value{c.Value.Driver()}
}

// toGORMExpression converts (K1, K2, K3) into a gorm expression
// "K1 AND K2 AND K3".
func (a tAnd) toGORMExpression() clause.Expression {
	andExpressions := make([]clause.Expression, 0, len(a))
	for _, child := range a {
		andExpressions = append(andExpressions, child.toGORMExpression())
	}

	if len(andExpressions) == 1 {
		return andExpressions[0]
	} else if len(andExpressions) > 1 {
		return clause.And(andExpressions...)
	}

	return nil
}

// toSQLClause converts (K1, K2, K3) into an SQL condition "(K1 AND K2 AND K3)"
// with corresponding values.
func (a tAnd) toSQLClause() (string, []driver.Value) {
	return joinSQLClauses(a, " AND ")
}

// toGORMExpression converts (K1, K2, K3) into a gorm expression
// "K1 OR K2 OR K3".
func (o tOr) toGORMExpression() clause.Expression {
	orExpressions := make([]clause.Expression, 0, len(o))
	for _, child := range o {
		orExpressions = append(orExpressions, child.toGORMExpression())
	}

	if len(orExpressions) == 1 {
		return orExpressions[0]
	} else if len(orExpressions) > 1 {
		return clause.Or(orExpressions...)
	}

	return nil
}

// toSQLClause converts (K1, K2, K3) into an SQL condition "(K1 OR K2 OR K3)"
// with corresponding values.
func (o tOr) toSQLClause() (string, []driver.Value) {
	return joinSQLClauses(o, " OR ")
}

func joinSQLClauses(children []tExpr, separator string) (string, []driver.Value) {
	clauses := make([]string, 0, len(children))
	values := make([]driver.Value, 0, len(children))

	for _, child := range children {
		childClause, childValues := child.toSQLClause()
		if childClause == "" {
			continue
		}

		clauses = append(clauses, childClause)
		values = append(values, childValues...)
	}

	if len(clauses) == 1 {
		return clauses[0], values
	} else if len(clauses) > 1 {
		return fmt.Sprintf("(%s)", strings.Join(clauses, separator)), values
	}

	return "", nil
}

// buildKeysetPredicate synthesizes the WHERE tree selecting rows strictly
// beyond the boundary encoded in the payload, in the order given by sorts.
//
// The NULL convention is unified with the dialect sort emitters:
// ASC sorts NULLS FIRST, DESC sorts NULLS LAST. Per element with column c,
// direction d, boundary value v and recursive tail `next`:
//
//   - v IS NULL, d = ASC:  (c IS NULL AND next) OR (c IS NOT NULL)
//   - v IS NULL, d = DESC: (c IS NULL AND next)
//   - v non-null:          (c cmp v) OR (c = v AND next), plus OR (c IS NULL)
//     when d = DESC, since nulls sort after every non-null boundary.
//
// The final element contributes the bare strict comparison: it references a
// unique non-nullable column, so no equality tail is needed.
func buildKeysetPredicate(sorts Orderings, payload *Payload) (tExpr, error) {
	return buildKeysetElement(sorts, payload, 0)
}

func buildKeysetElement(sorts Orderings, payload *Payload, index int) (tExpr, error) {
	if index >= len(sorts) {
		return nil, fmt.Errorf("ordering index %d out of range", index)
	}

	orderBy := sorts[index]
	key := orderBy.Key()

	value, ok := payload.K[key]
	if !ok {
		return nil, fmt.Errorf("missing cursor value for %q", key)
	}

	direction := orderBy.Direction.orDefault()

	if index == len(sorts)-1 {
		return tConjunct{
			Column:   orderBy.Column,
			Value:    value,
			Operator: direction.ForOperator(),
		}, nil
	}

	next, err := buildKeysetElement(sorts, payload, index+1)
	if err != nil {
		return nil, err
	}

	if value.IsNull() {
		nullAndNext := tAnd{
			tConjunct{Column: orderBy.Column, Operator: operatorIsNull},
			next,
		}

		if direction == DirectionASC {
			// Nulls come first: every non-null row is beyond a null boundary,
			// ties among nulls break recursively.
			return tOr{
				nullAndNext,
				tConjunct{Column: orderBy.Column, Operator: operatorIsNotNull},
			}, nil
		}

		// Nulls come last: rows beyond a null boundary are null themselves.
		return nullAndNext, nil
	}

	ret := tOr{
		tConjunct{Column: orderBy.Column, Value: value, Operator: direction.ForOperator()},
		tAnd{
			tConjunct{Column: orderBy.Column, Value: value, Operator: operatorEq},
			next,
		},
	}

	if direction == DirectionDESC {
		ret = append(ret, tConjunct{Column: orderBy.Column, Operator: operatorIsNull})
	}

	return ret, nil
}
