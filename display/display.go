// Package display orders a condition tree the way facets are shown, for
// filter bars and other read-only summaries of a search.
package display

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/theplant/sina/condition"
)

// FacetItem is one selectable value of a facet.
type FacetItem struct {
	Label string `json:"label"`
}

// Facet is a displayed attribute and its values in display order.
type Facet struct {
	Dimension string      `json:"dimension"`
	Hierarchy bool        `json:"hierarchy,omitempty"`
	Items     []FacetItem `json:"items"`
}

// SortForDisplay returns a sorted copy of root; root itself is left as is.
// Top-level conditions follow the order of their attribute in facets and
// the conditions inside each of them follow the order of their value label in
// the facet items. Conditions unknown to facets keep their relative order at
// the end. Hierarchy facets keep the order they were built in.
func SortForDisplay(root *condition.Complex, facets []Facet) *condition.Complex {
	if root == nil {
		return nil
	}
	sorted := root.CloneComplex()

	facetIndex := func(c condition.Condition) int {
		s := condition.FirstSimple(c)
		if s == nil {
			return -1
		}
		return lo.IndexOf(lo.Map(facets, func(f Facet, _ int) string { return f.Dimension }), s.Attribute)
	}
	slices.SortStableFunc(sorted.Conditions, func(a, b condition.Condition) int {
		return compareIndex(facetIndex(a), facetIndex(b))
	})

	for _, sub := range sorted.Conditions {
		group, ok := sub.(*condition.Complex)
		if !ok {
			continue
		}
		i := facetIndex(group)
		if i < 0 || facets[i].Hierarchy {
			continue
		}
		labels := lo.Map(facets[i].Items, func(item FacetItem, _ int) string { return item.Label })
		slices.SortStableFunc(group.Conditions, func(a, b condition.Condition) int {
			return compareIndex(
				lo.IndexOf(labels, condition.BaseOf(a).ValueLabel),
				lo.IndexOf(labels, condition.BaseOf(b).ValueLabel),
			)
		})
	}
	return sorted
}

// compareIndex orders positions ascending with -1 last.
func compareIndex(a, b int) int {
	switch {
	case a == b:
		return 0
	case a < 0:
		return 1
	case b < 0:
		return -1
	case a < b:
		return -1
	default:
		return 1
	}
}

// Chip is one removable entry of a filter bar.
type Chip struct {
	Attribute      string
	AttributeLabel string
	ValueLabel     string
	Condition      *condition.Simple
}

// Labels lists the leaves of root as chips in display order. Missing labels
// fall back to the attribute id and the formatted value.
func Labels(root *condition.Complex, facets []Facet) []Chip {
	if root == nil {
		return nil
	}
	var chips []Chip
	condition.Walk(SortForDisplay(root, facets), func(c condition.Condition, _ int) bool {
		s, ok := c.(*condition.Simple)
		if !ok {
			return true
		}
		chips = append(chips, Chip{
			Attribute:      s.Attribute,
			AttributeLabel: lo.CoalesceOrEmpty(s.AttributeLabel, s.Attribute),
			ValueLabel:     lo.CoalesceOrEmpty(s.ValueLabel, fmt.Sprint(s.Value)),
			Condition:      s,
		})
		return true
	})
	return chips
}
