package condition

import (
	"github.com/pkg/errors"
)

// ToMap converts c to its JSON map form, with nil values pruned.
func ToMap(c Condition) (map[string]any, error) {
	if c == nil {
		return nil, nil
	}
	data, err := ToJSON(c)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := jsonConfig.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "unmarshal condition to map")
	}
	PruneMap(m)
	return m, nil
}

// FromMap is the reverse of ToMap.
func FromMap(m map[string]any) (Condition, error) {
	if m == nil {
		return nil, errors.New("condition map is nil")
	}
	data, err := jsonConfig.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, "marshal condition map")
	}
	return FromJSON(data)
}

// PruneMap recursively removes nil values and empty nested maps. Maps inside
// slices are pruned too, but slices are kept even when empty, since an empty
// conditions list is meaningful.
func PruneMap(m map[string]any) {
	for k, v := range m {
		switch vv := v.(type) {
		case nil:
			delete(m, k)
		case map[string]any:
			PruneMap(vv)
			if len(vv) == 0 {
				delete(m, k)
			}
		case []any:
			for _, item := range vv {
				if nested, ok := item.(map[string]any); ok {
					PruneMap(nested)
				}
			}
		}
	}
}
