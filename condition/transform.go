package condition

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/theplant/sina/internal/hook"
)

// TransformInput describes one leaf during Transform.
type TransformInput struct {
	Path      []int    // child indexes from the root down to the leaf
	Condition *Simple  // a cloned leaf, safe to modify
	Parent    *Complex // nil when the root itself is the leaf
}

// TransformFunc rewrites one leaf. Returning a nil leaf drops it.
type TransformFunc func(input *TransformInput) (*Simple, error)

func keepCondition(input *TransformInput) (*Simple, error) {
	return input.Condition, nil
}

// Transform rewrites a clone of c leaf by leaf through hooks, the first hook
// being the outermost. Complex conditions emptied by dropped leaves are
// pruned. The result is nil when every leaf was dropped from a simple root.
func Transform(c Condition, hooks ...func(next TransformFunc) TransformFunc) (Condition, error) {
	if c == nil {
		return nil, nil
	}
	transform := hook.Wrap(hook.Prepend(nil, hooks...), TransformFunc(keepCondition))

	switch root := c.Clone().(type) {
	case *Simple:
		return transformLeaf(root, nil, nil, transform)
	case *Complex:
		if err := transformComplex(root, nil, transform); err != nil {
			return nil, err
		}
		root.Cleanup()
		return root, nil
	default:
		return nil, errors.Errorf("unexpected condition type %T", c)
	}
}

func transformComplex(c *Complex, path []int, transform TransformFunc) error {
	kept := c.Conditions[:0]
	for i, sub := range c.Conditions {
		subPath := appendPath(path, i)
		switch v := sub.(type) {
		case *Complex:
			if err := transformComplex(v, subPath, transform); err != nil {
				return err
			}
			kept = append(kept, v)
		case *Simple:
			leaf, err := transformLeaf(v, c, subPath, transform)
			if err != nil {
				return err
			}
			if leaf != nil {
				kept = append(kept, leaf)
			}
		default:
			return errors.Errorf("unexpected condition type %T at %s", sub, pathString(subPath))
		}
	}
	c.Conditions = kept
	return nil
}

func transformLeaf(s *Simple, parent *Complex, path []int, transform TransformFunc) (Condition, error) {
	leaf, err := transform(&TransformInput{Path: path, Condition: s, Parent: parent})
	if err != nil {
		return nil, errors.Wrapf(err, "transform condition %s on %q", pathString(path), s.Attribute)
	}
	if leaf == nil {
		return nil, nil
	}
	return leaf, nil
}

func appendPath(parent []int, i int) []int {
	result := make([]int, len(parent), len(parent)+1)
	copy(result, parent)
	return append(result, i)
}

func pathString(path []int) string {
	if len(path) == 0 {
		return "root"
	}
	return strings.Join(lo.Map(path, func(i int, _ int) string {
		return fmt.Sprintf("[%d]", i)
	}), "")
}

// Capitalize upper-cases the first letter only.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var acronyms = map[string]struct{}{
	"id": {}, "uid": {}, "uuid": {}, "url": {}, "uri": {}, "api": {},
	"http": {}, "https": {}, "html": {}, "xml": {}, "json": {}, "sql": {},
	"ip": {}, "dns": {}, "cpu": {}, "os": {}, "ui": {}, "db": {}, "iso": {},
}

// SmartPascalCase converts an attribute id such as "categoryId" to a Go style
// field name such as "CategoryID".
func SmartPascalCase(s string) string {
	var b strings.Builder
	for _, word := range lo.Words(s) {
		lower := strings.ToLower(word)
		if _, ok := acronyms[lower]; ok {
			b.WriteString(strings.ToUpper(lower))
			continue
		}
		b.WriteString(Capitalize(lower))
	}
	return b.String()
}

// WithSmartPascalCase returns a transform hook that renames each attribute
// with SmartPascalCase.
func WithSmartPascalCase() func(next TransformFunc) TransformFunc {
	return WithAttributeMapper(SmartPascalCase)
}

// WithAttributeMapper returns a transform hook that renames each attribute
// with fn. An empty result drops the leaf.
func WithAttributeMapper(fn func(attribute string) string) func(next TransformFunc) TransformFunc {
	return func(next TransformFunc) TransformFunc {
		return func(input *TransformInput) (*Simple, error) {
			attribute := fn(input.Condition.Attribute)
			if attribute == "" {
				return nil, nil
			}
			input.Condition.Attribute = attribute
			return next(input)
		}
	}
}
