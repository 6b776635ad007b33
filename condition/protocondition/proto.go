// Package protocondition carries condition trees through proto APIs as
// google.protobuf.Struct values.
package protocondition

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/theplant/sina/condition"
)

// ToStruct converts c to a Struct with the same shape as its JSON form.
func ToStruct(c condition.Condition) (*structpb.Struct, error) {
	if c == nil {
		return nil, nil
	}
	m, err := condition.ToMap(c)
	if err != nil {
		return nil, err
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, errors.Wrap(err, "convert condition map to struct")
	}
	return s, nil
}

// FromStruct is the reverse of ToStruct. A nil Struct yields a nil condition.
func FromStruct(s *structpb.Struct) (condition.Condition, error) {
	if s == nil {
		return nil, nil
	}
	c, err := condition.FromMap(s.AsMap())
	if err != nil {
		return nil, errors.Wrap(err, "convert struct to condition")
	}
	return c, nil
}

// FromProtoJSON decodes the protojson form of a Struct holding a condition.
func FromProtoJSON(data []byte) (condition.Condition, error) {
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(err, "unmarshal condition struct")
	}
	return FromStruct(s)
}
