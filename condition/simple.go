package condition

import (
	"reflect"
	"time"

	"github.com/pkg/errors"
)

// Simple is a leaf: one attribute compared to one value.
type Simple struct {
	Base
	Attribute string
	Operator  Operator
	Value     any
}

// NewSimple returns a leaf with an Eq operator when op is empty.
func NewSimple(attribute string, op Operator, value any) *Simple {
	if op == "" {
		op = OperatorEq
	}
	return &Simple{Attribute: attribute, Operator: op, Value: value}
}

// WithLabels sets the display labels and returns s.
func (s *Simple) WithLabels(attributeLabel, valueLabel string) *Simple {
	s.AttributeLabel = attributeLabel
	s.ValueLabel = valueLabel
	return s
}

func (s *Simple) Kind() Kind { return KindSimple }

func (s *Simple) base() *Base { return &s.Base }

func (s *Simple) Clone() Condition {
	clone := *s
	clone.Value = cloneValue(s.Value)
	return &clone
}

func (s *Simple) Equal(other Condition) bool {
	o, ok := other.(*Simple)
	if !ok || o == nil {
		return false
	}
	return s.Attribute == o.Attribute &&
		s.Operator == o.Operator &&
		valueEqual(s.Value, o.Value)
}

func (s *Simple) FirstAttribute() (string, error) {
	return s.Attribute, nil
}

func (s *Simple) ContainsAttribute(attribute string) bool {
	return s.Attribute == attribute
}

func (s *Simple) AttributeConditions(attribute string) []*Simple {
	if s.Attribute == attribute {
		return []*Simple{s}
	}
	return nil
}

// Validate checks that s can be handed to a query layer.
func (s *Simple) Validate() error {
	if s.Attribute == "" {
		return errors.New("simple condition has no attribute")
	}
	if !s.Operator.Known() {
		return errors.Errorf("unknown operator %q for attribute %q", s.Operator, s.Attribute)
	}
	if s.Operator == OperatorBetween {
		if _, _, ok := BetweenBounds(s.Value); !ok {
			return errors.Errorf("between condition on %q needs two bounds, got %T", s.Attribute, s.Value)
		}
	}
	return nil
}

// BetweenBounds splits a two element value into its bounds.
func BetweenBounds(v any) (lower, upper any, ok bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) || rv.Len() != 2 {
		return nil, nil, false
	}
	return rv.Index(0).Interface(), rv.Index(1).Interface(), true
}

func cloneValue(v any) any {
	switch vv := v.(type) {
	case []any:
		out := make([]any, len(vv))
		for i, item := range vv {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), vv...)
	case map[string]any:
		out := make(map[string]any, len(vv))
		for k, item := range vv {
			out[k] = cloneValue(item)
		}
		return out
	}
	return v
}

// valueEqual compares values so that a tree decoded from JSON (numbers as
// float64) equals the same tree built with ints.
func valueEqual(a, b any) bool {
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.IsValid() && rb.IsValid() && isList(ra) && isList(rb) {
		if ra.Len() != rb.Len() {
			return false
		}
		for i := 0; i < ra.Len(); i++ {
			if !valueEqual(ra.Index(i).Interface(), rb.Index(i).Interface()) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func isList(v reflect.Value) bool {
	return v.Kind() == reflect.Slice || v.Kind() == reflect.Array
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
