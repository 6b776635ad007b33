package condition

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

var jsonConfig = jsoniter.Config{
	EscapeHTML:             true,
	ValidateJsonRawMessage: true,
}.Froze()

type simpleJSON struct {
	Type      Kind     `json:"type"`
	Attribute string   `json:"attribute"`
	Operator  Operator `json:"operator"`
	Value     any      `json:"value"`
	Base
}

type complexJSON struct {
	Type       Kind            `json:"type"`
	Operator   LogicalOperator `json:"operator"`
	Conditions []Condition     `json:"conditions"`
	Base
}

type complexRawJSON struct {
	Operator   LogicalOperator       `json:"operator"`
	Conditions []jsoniter.RawMessage `json:"conditions"`
	Base
}

// ToJSON serializes c as a tagged union on the "type" field.
func ToJSON(c Condition) ([]byte, error) {
	if c == nil {
		return nil, errors.New("condition is nil")
	}
	data, err := jsonConfig.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "marshal condition")
	}
	return data, nil
}

func (s *Simple) MarshalJSON() ([]byte, error) {
	return jsonConfig.Marshal(simpleJSON{
		Type:      KindSimple,
		Attribute: s.Attribute,
		Operator:  s.Operator,
		Value:     s.Value,
		Base:      s.Base,
	})
}

func (c *Complex) MarshalJSON() ([]byte, error) {
	conditions := c.Conditions
	if conditions == nil {
		conditions = []Condition{}
	}
	return jsonConfig.Marshal(complexJSON{
		Type:       KindComplex,
		Operator:   c.Operator.normalize(),
		Conditions: conditions,
		Base:       c.Base,
	})
}

// FromJSON decodes a condition produced by ToJSON.
func FromJSON(data []byte) (Condition, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid condition json")
	}
	kind := gjson.GetBytes(data, "type").String()
	switch Kind(kind) {
	case KindSimple:
		var v simpleJSON
		if err := jsonConfig.Unmarshal(data, &v); err != nil {
			return nil, errors.Wrap(err, "unmarshal simple condition")
		}
		if v.Attribute == "" {
			return nil, errors.New("simple condition has no attribute")
		}
		return &Simple{Base: v.Base, Attribute: v.Attribute, Operator: v.Operator, Value: v.Value}, nil
	case KindComplex:
		var v complexRawJSON
		if err := jsonConfig.Unmarshal(data, &v); err != nil {
			return nil, errors.Wrap(err, "unmarshal complex condition")
		}
		if !v.Operator.Known() {
			return nil, errors.Errorf("unknown logical operator %q", v.Operator)
		}
		c := &Complex{Base: v.Base, Operator: v.Operator.normalize()}
		for i, raw := range v.Conditions {
			sub, err := FromJSON(raw)
			if err != nil {
				return nil, errors.Wrapf(err, "conditions[%d]", i)
			}
			c.Conditions = append(c.Conditions, sub)
		}
		return c, nil
	default:
		return nil, errors.Errorf("unknown condition type %q", kind)
	}
}

func (s *Simple) UnmarshalJSON(data []byte) error {
	c, err := FromJSON(data)
	if err != nil {
		return err
	}
	v, ok := c.(*Simple)
	if !ok {
		return errors.Errorf("expected %s condition, got %s", KindSimple, c.Kind())
	}
	*s = *v
	return nil
}

func (c *Complex) UnmarshalJSON(data []byte) error {
	decoded, err := FromJSON(data)
	if err != nil {
		return err
	}
	v, ok := decoded.(*Complex)
	if !ok {
		return errors.Errorf("expected %s condition, got %s", KindComplex, decoded.Kind())
	}
	*c = *v
	return nil
}
