package condition

import (
	"slices"

	"github.com/pkg/errors"
)

// Complex combines its children with a logical operator. Child order is
// preserved but has no meaning for Equal.
type Complex struct {
	Base
	Operator   LogicalOperator
	Conditions []Condition
}

// NewComplex returns a complex condition. An empty operator means And.
func NewComplex(op LogicalOperator, conditions ...Condition) *Complex {
	return &Complex{
		Operator:   op.normalize(),
		Conditions: conditions,
	}
}

// And is shorthand for NewComplex(LogicalAnd, conditions...).
func And(conditions ...Condition) *Complex {
	return NewComplex(LogicalAnd, conditions...)
}

// Or is shorthand for NewComplex(LogicalOr, conditions...).
func Or(conditions ...Condition) *Complex {
	return NewComplex(LogicalOr, conditions...)
}

func (c *Complex) Kind() Kind { return KindComplex }

func (c *Complex) base() *Base { return &c.Base }

func (c *Complex) Clone() Condition {
	clone := &Complex{
		Base:       c.Base,
		Operator:   c.Operator,
		Conditions: make([]Condition, 0, len(c.Conditions)),
	}
	for _, sub := range c.Conditions {
		clone.Conditions = append(clone.Conditions, sub.Clone())
	}
	return clone
}

// CloneComplex is Clone without the type assertion.
func (c *Complex) CloneComplex() *Complex {
	return c.Clone().(*Complex)
}

// Equal matches children greedily: each child of c takes the first unmatched
// equal child of other. Conditions are small, so O(n²) is fine.
func (c *Complex) Equal(other Condition) bool {
	o, ok := other.(*Complex)
	if !ok || o == nil {
		return false
	}
	if c.Operator.normalize() != o.Operator.normalize() || len(c.Conditions) != len(o.Conditions) {
		return false
	}
	matched := make([]bool, len(o.Conditions))
	for _, sub := range c.Conditions {
		found := false
		for j, candidate := range o.Conditions {
			if matched[j] || !equalCondition(sub, candidate) {
				continue
			}
			matched[j] = true
			found = true
			break
		}
		if !found {
			return false
		}
	}
	return true
}

func equalCondition(a, b Condition) bool {
	switch a := a.(type) {
	case *Simple:
		return a.Equal(b)
	case *Complex:
		return a.Equal(b)
	}
	return false
}

// Len returns the number of direct children.
func (c *Complex) Len() int { return len(c.Conditions) }

// HasFilters reports whether c has at least one child.
func (c *Complex) HasFilters() bool {
	return len(c.Conditions) >= 1
}

// AddCondition appends sub and returns c.
func (c *Complex) AddCondition(sub Condition) *Complex {
	c.Conditions = append(c.Conditions, sub)
	return c
}

// RemoveConditionAt removes the child at index i. Out of range indexes are
// ignored.
func (c *Complex) RemoveConditionAt(i int) {
	if i < 0 || i >= len(c.Conditions) {
		return
	}
	c.Conditions = slices.Delete(c.Conditions, i, i+1)
}

// ResetConditions removes all children.
func (c *Complex) ResetConditions() {
	c.Conditions = nil
}

func (c *Complex) FirstAttribute() (string, error) {
	if len(c.Conditions) == 0 {
		return "", errors.New("complex condition has no conditions")
	}
	switch sub := c.Conditions[0].(type) {
	case *Simple:
		return sub.Attribute, nil
	case *Complex:
		return sub.FirstAttribute()
	default:
		return "", errors.Errorf("unexpected condition type %T", c.Conditions[0])
	}
}

func (c *Complex) ContainsAttribute(attribute string) bool {
	for _, sub := range c.Conditions {
		if sub.ContainsAttribute(attribute) {
			return true
		}
	}
	return false
}

func (c *Complex) AttributeConditions(attribute string) []*Simple {
	var result []*Simple
	for _, sub := range c.Conditions {
		result = append(result, sub.AttributeConditions(attribute)...)
	}
	return result
}

// RemoveResult describes the last leaf removed by RemoveAttributeConditions.
type RemoveResult struct {
	Deleted   bool
	Attribute string
	Value     any
}

// RemoveAttributeConditions deletes every leaf on attribute, at any depth, and
// then prunes complex conditions left empty. Only the last removed leaf is
// reported; use AttributeConditions first to collect all of them.
func (c *Complex) RemoveAttributeConditions(attribute string) RemoveResult {
	result := c.removeAttributeConditions(attribute)
	c.Cleanup()
	return result
}

func (c *Complex) removeAttributeConditions(attribute string) RemoveResult {
	var result RemoveResult
	for i := 0; i < len(c.Conditions); i++ {
		switch sub := c.Conditions[i].(type) {
		case *Complex:
			if r := sub.removeAttributeConditions(attribute); r.Deleted {
				result = r
			}
		case *Simple:
			if sub.Attribute != attribute {
				continue
			}
			result = RemoveResult{Deleted: true, Attribute: sub.Attribute, Value: sub.Value}
			c.Conditions = slices.Delete(c.Conditions, i, i+1)
			i--
		}
	}
	return result
}

// RemoveCondition deletes the first condition equal to target found
// depth-first. A complex condition emptied by the removal is removed from its
// own parent, up to but excluding c.
func (c *Complex) RemoveCondition(target Condition) bool {
	for i, sub := range c.Conditions {
		if equalCondition(sub, target) {
			c.Conditions = slices.Delete(c.Conditions, i, i+1)
			return true
		}
		child, ok := sub.(*Complex)
		if !ok {
			continue
		}
		if child.RemoveCondition(target) {
			if len(child.Conditions) == 0 {
				c.Conditions = slices.Delete(c.Conditions, i, i+1)
			}
			return true
		}
	}
	return false
}

// Cleanup removes complex children without conditions. Pruning one child can
// empty its parent, so the walk restarts after every removal until a full
// pass removes nothing. c itself may stay empty.
func (c *Complex) Cleanup() {
	for c.removeFirstEmpty() {
	}
}

func (c *Complex) removeFirstEmpty() bool {
	for i, sub := range c.Conditions {
		child, ok := sub.(*Complex)
		if !ok {
			continue
		}
		if len(child.Conditions) == 0 {
			c.Conditions = slices.Delete(c.Conditions, i, i+1)
			return true
		}
		if child.removeFirstEmpty() {
			return true
		}
	}
	return false
}

// Validate checks every leaf and the logical operators of the tree.
func (c *Complex) Validate() error {
	switch c.Operator.normalize() {
	case LogicalAnd, LogicalOr:
	default:
		return errors.Errorf("unknown logical operator %q", c.Operator)
	}
	for i, sub := range c.Conditions {
		var err error
		switch sub := sub.(type) {
		case *Simple:
			err = sub.Validate()
		case *Complex:
			err = sub.Validate()
		default:
			err = errors.Errorf("unexpected condition type %T", sub)
		}
		if err != nil {
			return errors.Wrapf(err, "index %d", i)
		}
	}
	return nil
}
