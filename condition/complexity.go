package condition

import (
	"github.com/pkg/errors"
)

// ComplexityLimits bounds the shape of a condition tree.
// A value of 0 means no limit for that metric.
type ComplexityLimits struct {
	MaxDepth            int // Maximum nesting depth of complex conditions
	MaxTotalConditions  int // Maximum number of simple conditions
	MaxLogicalOperators int // Maximum number of complex conditions
	MaxOrBranches       int // Maximum children of a single Or condition
}

// ComplexityResult contains the measured shape of a condition tree.
type ComplexityResult struct {
	Depth            int // Deepest complex nesting level, root complex is 1
	TotalConditions  int // Number of simple conditions
	LogicalOperators int // Number of complex conditions
	OrBranches       int // Most children found in any Or condition
}

var (
	// DefaultLimits fits trees built from facet selections.
	DefaultLimits = &ComplexityLimits{
		MaxDepth:            3,
		MaxTotalConditions:  50,
		MaxLogicalOperators: 20,
		MaxOrBranches:       20,
	}

	StrictLimits = &ComplexityLimits{
		MaxDepth:            2,
		MaxTotalConditions:  10,
		MaxLogicalOperators: 5,
		MaxOrBranches:       5,
	}

	// RelaxedLimits is for trusted callers such as saved searches.
	RelaxedLimits = &ComplexityLimits{
		MaxDepth:            5,
		MaxTotalConditions:  200,
		MaxLogicalOperators: 50,
		MaxOrBranches:       100,
	}
)

// CheckComplexity returns an error naming the first exceeded limit.
// Nil limits disable the check.
func CheckComplexity(c Condition, limits *ComplexityLimits) error {
	if limits == nil {
		return nil
	}

	result := CalculateComplexity(c)

	if limits.MaxDepth > 0 && result.Depth > limits.MaxDepth {
		return errors.Errorf("condition depth %d exceeds limit %d", result.Depth, limits.MaxDepth)
	}
	if limits.MaxTotalConditions > 0 && result.TotalConditions > limits.MaxTotalConditions {
		return errors.Errorf("condition count %d exceeds limit %d", result.TotalConditions, limits.MaxTotalConditions)
	}
	if limits.MaxLogicalOperators > 0 && result.LogicalOperators > limits.MaxLogicalOperators {
		return errors.Errorf("logical operator count %d exceeds limit %d", result.LogicalOperators, limits.MaxLogicalOperators)
	}
	if limits.MaxOrBranches > 0 && result.OrBranches > limits.MaxOrBranches {
		return errors.Errorf("or branches %d exceeds limit %d", result.OrBranches, limits.MaxOrBranches)
	}

	return nil
}

// CalculateComplexity measures c.
func CalculateComplexity(c Condition) *ComplexityResult {
	result := &ComplexityResult{}
	Walk(c, func(c Condition, depth int) bool {
		switch v := c.(type) {
		case *Simple:
			result.TotalConditions++
		case *Complex:
			result.LogicalOperators++
			if depth+1 > result.Depth {
				result.Depth = depth + 1
			}
			if v.Operator.normalize() == LogicalOr && len(v.Conditions) > result.OrBranches {
				result.OrBranches = len(v.Conditions)
			}
		}
		return true
	})
	return result
}
