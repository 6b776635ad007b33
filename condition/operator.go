package condition

// Operator is the comparison of a simple condition.
type Operator string

const (
	OperatorEq      Operator = "Eq"
	OperatorNe      Operator = "Ne"
	OperatorGt      Operator = "Gt"
	OperatorGe      Operator = "Ge"
	OperatorLt      Operator = "Lt"
	OperatorLe      Operator = "Le"
	OperatorBw      Operator = "Bw" // begins with
	OperatorEw      Operator = "Ew" // ends with
	OperatorCo      Operator = "Co" // contains
	OperatorNc      Operator = "Nc" // does not contain
	OperatorBetween Operator = "Between"

	// Hierarchy navigation, evaluated by the search backend only.
	OperatorChildOf      Operator = "ChildOf"
	OperatorDescendantOf Operator = "DescendantOf"
)

var knownOperators = map[Operator]struct{}{
	OperatorEq: {}, OperatorNe: {}, OperatorGt: {}, OperatorGe: {}, OperatorLt: {}, OperatorLe: {},
	OperatorBw: {}, OperatorEw: {}, OperatorCo: {}, OperatorNc: {}, OperatorBetween: {},
	OperatorChildOf: {}, OperatorDescendantOf: {},
}

// Known reports whether op is one of the declared operators.
func (op Operator) Known() bool {
	_, ok := knownOperators[op]
	return ok
}

// LogicalOperator combines the children of a complex condition.
type LogicalOperator string

const (
	LogicalAnd LogicalOperator = "And"
	LogicalOr  LogicalOperator = "Or"
)

// Known reports whether op is And, Or or empty, which means And.
func (op LogicalOperator) Known() bool {
	switch op.normalize() {
	case LogicalAnd, LogicalOr:
		return true
	}
	return false
}

func (op LogicalOperator) normalize() LogicalOperator {
	if op == "" {
		return LogicalAnd
	}
	return op
}
