package protocondition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/theplant/sina/condition"
	"github.com/theplant/sina/condition/protocondition"
)

func TestStructRoundTrip(t *testing.T) {
	root := condition.And(
		condition.Or(
			condition.NewSimple("Country", condition.OperatorEq, "US").WithLabels("Country", "United States"),
			condition.NewSimple("Country", condition.OperatorEq, "DE"),
		),
		condition.Or(condition.NewSimple("Price", condition.OperatorBetween, []any{10, 20})),
		condition.Or(),
	)

	s, err := protocondition.ToStruct(root)
	require.NoError(t, err)

	fields := s.GetFields()
	assert.Equal(t, "Complex", fields["type"].GetStringValue())
	assert.Equal(t, "And", fields["operator"].GetStringValue())
	assert.Len(t, fields["conditions"].GetListValue().GetValues(), 3)

	got, err := protocondition.FromStruct(s)
	require.NoError(t, err)
	assert.True(t, root.Equal(got))

	leaves := got.AttributeConditions("Country")
	require.Len(t, leaves, 2)
	assert.Equal(t, "United States", leaves[0].ValueLabel)
}

func TestProtoJSON(t *testing.T) {
	root := condition.And(condition.Or(condition.NewSimple("Region", condition.OperatorCo, "EM")))
	s, err := protocondition.ToStruct(root)
	require.NoError(t, err)

	data, err := protojson.Marshal(s)
	require.NoError(t, err)

	got, err := protocondition.FromProtoJSON(data)
	require.NoError(t, err)
	assert.True(t, root.Equal(got))

	_, err = protocondition.FromProtoJSON([]byte(`{"type": "Unknown"}`))
	require.ErrorContains(t, err, `unknown condition type "Unknown"`)

	_, err = protocondition.FromProtoJSON([]byte(`[1]`))
	require.ErrorContains(t, err, "unmarshal condition struct")
}

func TestNil(t *testing.T) {
	s, err := protocondition.ToStruct(nil)
	require.NoError(t, err)
	assert.Nil(t, s)

	c, err := protocondition.FromStruct(nil)
	require.NoError(t, err)
	assert.Nil(t, c)
}
