package keysetpager

import "fmt"

// Operator defines a comparison operator for filtering by column.
// Used in pagination filtering conditions.
type Operator string

func (o Operator) Valid() bool {
	return o == OperatorLT || o == OperatorGT
}

func (o Operator) ForOrdering() Direction {
	switch o {
	case OperatorGT:
		return DirectionASC
	case OperatorLT:
		return DirectionDESC
	default:
		panic(fmt.Errorf("cannot map operator '%s' to ordering", o))
	}
}

// unary reports whether the operator takes no right-hand value.
func (o Operator) unary() bool {
	return o == operatorIsNull || o == operatorIsNotNull
}

const (
	OperatorGT Operator = ">"
	OperatorLT Operator = "<"

	// operatorEq is the equality operator. It is private because we use it
	// ONLY while building filtering conditions.
	operatorEq Operator = "="

	// operatorIsNull/operatorIsNotNull are the NULL tests. Private for the
	// same reason: they only appear inside synthesized keyset predicates.
	operatorIsNull    Operator = "IS NULL"
	operatorIsNotNull Operator = "IS NOT NULL"
)
