package condition_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/theplant/sina/condition"
)

func TestToJSON(t *testing.T) {
	tests := []struct {
		name string
		cond condition.Condition
		want string
	}{
		{
			name: "simple",
			cond: eq("Country", "US").WithLabels("Country", "United States"),
			want: `{"type":"Simple","attribute":"Country","operator":"Eq","value":"US","valueLabel":"United States","attributeLabel":"Country"}`,
		},
		{
			name: "user defined",
			cond: &condition.Simple{
				Base:      condition.Base{UserDefined: true},
				Attribute: "Age",
				Operator:  condition.OperatorGt,
				Value:     18,
			},
			want: `{"type":"Simple","attribute":"Age","operator":"Gt","value":18,"userDefined":true}`,
		},
		{
			name: "empty complex",
			cond: condition.NewComplex(""),
			want: `{"type":"Complex","operator":"And","conditions":[]}`,
		},
		{
			name: "nested",
			cond: condition.And(condition.Or(eq("Country", "US"), eq("Country", "DE"))),
			want: `{"type":"Complex","operator":"And","conditions":[{"type":"Complex","operator":"Or","conditions":[` +
				`{"type":"Simple","attribute":"Country","operator":"Eq","value":"US"},` +
				`{"type":"Simple","attribute":"Country","operator":"Eq","value":"DE"}]}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := condition.ToJSON(tt.cond)
			require.NoError(t, err)
			require.JSONEq(t, tt.want, string(data))

			decoded, err := condition.FromJSON(data)
			require.NoError(t, err)
			require.True(t, tt.cond.Equal(decoded))
			require.Equal(t, *condition.BaseOf(tt.cond), *condition.BaseOf(decoded))
		})
	}

	_, err := condition.ToJSON(nil)
	require.Error(t, err)
}

func TestFromJSONErrors(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		wantErrMsg string
	}{
		{name: "invalid json", data: `{"type":`, wantErrMsg: "invalid condition json"},
		{name: "missing type", data: `{"attribute":"Country"}`, wantErrMsg: `unknown condition type ""`},
		{name: "unknown type", data: `{"type":"Not"}`, wantErrMsg: `unknown condition type "Not"`},
		{
			name:       "unknown logical operator",
			data:       `{"type":"Complex","operator":"Xor","conditions":[{"type":"Simple","attribute":"Country","operator":"Eq","value":"US"},{"type":"Simple","attribute":"Region","operator":"Eq","value":"EMEA"}]}`,
			wantErrMsg: `unknown logical operator "Xor"`,
		},
		{name: "simple without attribute", data: `{"type":"Simple","operator":"Eq"}`, wantErrMsg: "no attribute"},
		{
			name:       "nested error",
			data:       `{"type":"Complex","operator":"And","conditions":[{"type":"Simple","attribute":"A"},{"type":"X"}]}`,
			wantErrMsg: `conditions[1]: unknown condition type "X"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := condition.FromJSON([]byte(tt.data))
			require.ErrorContains(t, err, tt.wantErrMsg)
		})
	}
}

func TestUnmarshalJSON(t *testing.T) {
	var c condition.Complex
	err := c.UnmarshalJSON([]byte(`{"type":"Complex","conditions":[{"type":"Simple","attribute":"A","operator":"Co","value":"x"}]}`))
	require.NoError(t, err)
	require.Equal(t, condition.LogicalAnd, c.Operator)
	require.True(t, c.Equal(condition.And(condition.NewSimple("A", condition.OperatorCo, "x"))))

	var s condition.Simple
	require.ErrorContains(t, s.UnmarshalJSON([]byte(`{"type":"Complex"}`)), "expected Simple condition, got Complex")
}

func TestToMap(t *testing.T) {
	c := condition.And(condition.Or(eq("Country", nil)))

	m, err := condition.ToMap(c)
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"type":     "Complex",
		"operator": "And",
		"conditions": []any{
			map[string]any{
				"type":     "Complex",
				"operator": "Or",
				"conditions": []any{
					map[string]any{"type": "Simple", "attribute": "Country", "operator": "Eq"},
				},
			},
		},
	}, m)

	decoded, err := condition.FromMap(m)
	require.NoError(t, err)
	require.True(t, c.Equal(decoded))

	m, err = condition.ToMap(nil)
	require.NoError(t, err)
	require.Nil(t, m)
}

func TestPruneMap(t *testing.T) {
	m := map[string]any{
		"a": nil,
		"b": map[string]any{"c": nil},
		"d": []any{},
		"e": []any{map[string]any{"f": nil, "g": 1}},
		"h": "x",
	}
	condition.PruneMap(m)
	require.Equal(t, map[string]any{
		"d": []any{},
		"e": []any{map[string]any{"g": 1}},
		"h": "x",
	}, m)
}
