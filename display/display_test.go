package display_test

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theplant/sina/condition"
	"github.com/theplant/sina/display"
)

func leaf(attribute, valueLabel string) *condition.Simple {
	return condition.NewSimple(attribute, condition.OperatorEq, valueLabel).WithLabels("", valueLabel)
}

var facets = []display.Facet{
	{Dimension: "Region", Items: []display.FacetItem{{Label: "EMEA"}, {Label: "APJ"}}},
	{Dimension: "Country", Items: []display.FacetItem{{Label: "US"}, {Label: "DE"}, {Label: "FR"}}},
	{Dimension: "Folder", Hierarchy: true, Items: []display.FacetItem{{Label: "a"}, {Label: "b"}}},
}

func valueLabels(c *condition.Complex) []string {
	return lo.Map(c.Conditions, func(sub condition.Condition, _ int) string {
		return condition.BaseOf(sub).ValueLabel
	})
}

func TestSortForDisplay(t *testing.T) {
	root := condition.And(
		condition.Or(leaf("Unknown", "x")),
		condition.Or(leaf("Folder", "b"), leaf("Folder", "a")),
		condition.Or(leaf("Country", "FR"), leaf("Country", "other"), leaf("Country", "US")),
		condition.Or(leaf("Region", "APJ"), leaf("Region", "EMEA")),
		condition.Or(leaf("Misc", "y")),
	)
	before := root.Clone()

	sorted := display.SortForDisplay(root, facets)
	require.NotNil(t, sorted)

	assert.Equal(t, []string{"Region", "Country", "Folder", "Unknown", "Misc"}, condition.Attributes(sorted))
	assert.Equal(t, []string{"EMEA", "APJ"}, valueLabels(sorted.Conditions[0].(*condition.Complex)))
	assert.Equal(t, []string{"US", "FR", "other"}, valueLabels(sorted.Conditions[1].(*condition.Complex)))
	assert.Equal(t, []string{"b", "a"}, valueLabels(sorted.Conditions[2].(*condition.Complex)))

	assert.True(t, sorted.Equal(root))
	assert.Equal(t, before, condition.Condition(root))
	assert.Equal(t, []string{"Unknown", "Folder", "Country", "Region", "Misc"}, condition.Attributes(root))
}

func TestSortForDisplayEdgeCases(t *testing.T) {
	assert.Nil(t, display.SortForDisplay(nil, facets))

	empty := display.SortForDisplay(condition.And(), facets)
	assert.Empty(t, empty.Conditions)

	noFacets := display.SortForDisplay(condition.And(
		condition.Or(leaf("Country", "US")),
		condition.Or(leaf("Region", "EMEA")),
	), nil)
	assert.Equal(t, []string{"Country", "Region"}, condition.Attributes(noFacets))
}

func TestLabels(t *testing.T) {
	root := condition.And(
		condition.Or(leaf("Country", "DE"), condition.NewSimple("Country", condition.OperatorEq, "US").WithLabels("Country", "")),
		condition.Or(condition.NewSimple("Region", condition.OperatorEq, "EMEA").WithLabels("Sales Region", "Europe")),
	)

	chips := display.Labels(root, facets)
	require.Len(t, chips, 3)

	got := lo.Map(chips, func(c display.Chip, _ int) []string {
		return []string{c.Attribute, c.AttributeLabel, c.ValueLabel}
	})
	assert.Equal(t, [][]string{
		{"Region", "Sales Region", "Europe"},
		{"Country", "Country", "DE"},
		{"Country", "Country", "US"},
	}, got)
	assert.Equal(t, "EMEA", chips[0].Condition.Value)

	assert.Nil(t, display.Labels(nil, facets))
}
