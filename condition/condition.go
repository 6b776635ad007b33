// Package condition implements the search filter condition tree: leaf
// attribute conditions and their And/Or composition.
//
// A tree is built from two variants, *Simple and *Complex, behind the sealed
// Condition interface. Complex conditions compare as bags: child order is kept
// for display but never affects Equal.
package condition

// Kind tags the variant of a condition. It is serialized as the "type" field.
type Kind string

const (
	KindSimple  Kind = "Simple"
	KindComplex Kind = "Complex"
)

// Base holds the fields shared by both condition variants. Labels are for
// display only and do not take part in equality.
type Base struct {
	ValueLabel     string `json:"valueLabel,omitempty"`
	AttributeLabel string `json:"attributeLabel,omitempty"`
	UserDefined    bool   `json:"userDefined,omitempty"`
}

// Condition is a node of the condition tree. It is implemented only by
// *Simple and *Complex.
type Condition interface {
	Kind() Kind

	// Clone returns a deep copy that shares no mutable state with the receiver.
	Clone() Condition

	// Equal reports structural equality. Labels are ignored.
	Equal(other Condition) bool

	// FirstAttribute returns the attribute of the first leaf, following the
	// first child of every complex condition on the way down.
	FirstAttribute() (string, error)

	ContainsAttribute(attribute string) bool

	// AttributeConditions collects every leaf on attribute, at any depth.
	AttributeConditions(attribute string) []*Simple

	base() *Base
}

// BaseOf returns the shared fields of c, or nil when c is nil.
func BaseOf(c Condition) *Base {
	if c == nil {
		return nil
	}
	return c.base()
}

// WalkFunc is called for each visited condition. Returning false skips the
// children of a complex condition.
type WalkFunc func(c Condition, depth int) bool

// Walk visits c and its descendants in pre-order. The root has depth 0.
func Walk(c Condition, fn WalkFunc) {
	walk(c, 0, fn)
}

func walk(c Condition, depth int, fn WalkFunc) {
	if c == nil {
		return
	}
	if !fn(c, depth) {
		return
	}
	if cc, ok := c.(*Complex); ok {
		for _, sub := range cc.Conditions {
			walk(sub, depth+1, fn)
		}
	}
}

// FirstSimple returns the first leaf found depth-first, or nil if the tree has
// no leaves.
func FirstSimple(c Condition) *Simple {
	switch v := c.(type) {
	case *Simple:
		return v
	case *Complex:
		for _, sub := range v.Conditions {
			if s := FirstSimple(sub); s != nil {
				return s
			}
		}
	}
	return nil
}

// Attributes returns the distinct attributes of all leaves, in depth-first
// order of first appearance.
func Attributes(c Condition) []string {
	var attributes []string
	seen := map[string]struct{}{}
	Walk(c, func(c Condition, _ int) bool {
		if s, ok := c.(*Simple); ok {
			if _, dup := seen[s.Attribute]; !dup {
				seen[s.Attribute] = struct{}{}
				attributes = append(attributes, s.Attribute)
			}
		}
		return true
	})
	return attributes
}
