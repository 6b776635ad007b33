// Package sina holds the search Filter: one data source, a free text search
// term and a condition tree built from facet selections.
//
// A Filter never mutates a root condition it has handed out. Every mutator
// works on a clone and swaps it in, so a root captured through RootCondition
// stays a stable snapshot for concurrent readers.
package sina

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/tidwall/sjson"

	"github.com/theplant/sina/condition"
)

// Filter is the search query built by the query-building layer.
type Filter struct {
	dataSource DataSource
	searchTerm string
	root       condition.Condition

	config Config
	logger *slog.Logger
	text   TextResolver
}

// Option configures a Filter.
type Option func(*Filter)

func WithDataSource(ds DataSource) Option {
	return func(f *Filter) { f.dataSource = ds }
}

func WithSearchTerm(term string) Option {
	return func(f *Filter) { f.searchTerm = term }
}

// WithRootCondition sets the initial root. The Filter takes ownership of root.
func WithRootCondition(root condition.Condition) Option {
	return func(f *Filter) { f.root = root }
}

func WithConfig(cfg Config) Option {
	return func(f *Filter) { f.config = cfg }
}

func WithLogger(logger *slog.Logger) Option {
	return func(f *Filter) { f.logger = logger }
}

func WithTextResolver(text TextResolver) Option {
	return func(f *Filter) { f.text = text }
}

// New returns a Filter with an empty And root unless WithRootCondition says
// otherwise.
func New(opts ...Option) *Filter {
	f := &Filter{}
	for _, opt := range opts {
		opt(f)
	}
	f.root = rootOrEmpty(f.root)
	if f.logger == nil {
		f.logger = slog.Default()
	}
	if f.text == nil {
		f.text = KeyTextResolver
	}
	return f
}

func (f *Filter) DataSource() DataSource { return f.dataSource }

// SetDataSource binds f to ds. Conditions belong to one data source, so
// switching to another one resets the root.
func (f *Filter) SetDataSource(ds DataSource) {
	if sameDataSource(f.dataSource, ds) {
		f.dataSource = ds
		return
	}
	f.logger.Debug("data source changed, resetting conditions",
		"from", dataSourceID(f.dataSource), "to", dataSourceID(ds))
	f.dataSource = ds
	f.root = condition.And()
}

func (f *Filter) SearchTerm() string { return f.searchTerm }

func (f *Filter) SetSearchTerm(term string) { f.searchTerm = term }

// RootCondition returns the current root. It is never mutated by f later.
func (f *Filter) RootCondition() condition.Condition { return f.root }

// SetRootCondition replaces the root. A nil root becomes an empty And.
func (f *Filter) SetRootCondition(root condition.Condition) {
	f.root = rootOrEmpty(root)
}

// rootOrEmpty maps nil roots, typed or not, to an empty And.
func rootOrEmpty(root condition.Condition) condition.Condition {
	switch v := root.(type) {
	case nil:
		return condition.And()
	case *condition.Complex:
		if v == nil {
			return condition.And()
		}
	case *condition.Simple:
		if v == nil {
			return condition.And()
		}
	}
	return root
}

func (f *Filter) Config() Config { return f.config }

// Clone returns a Filter sharing the data source and a deep copy of the root.
func (f *Filter) Clone() *Filter {
	clone := *f
	clone.root = f.root.Clone()
	return &clone
}

// Equal reports whether f and other express the same query.
func (f *Filter) Equal(other *Filter) bool {
	if other == nil {
		return false
	}
	return sameDataSource(f.dataSource, other.dataSource) &&
		f.searchTerm == other.searchTerm &&
		f.root.Equal(other.root)
}

func (f *Filter) rootComplex() (*condition.Complex, error) {
	root, ok := f.root.(*condition.Complex)
	if !ok || root == nil {
		return nil, errors.Wrapf(ErrConsistency, "root condition is %T, not a complex condition", f.root)
	}
	return root, nil
}

// AutoInsertCondition adds c to the attribute group of its attribute: an Or
// condition directly below the root. The group is created if missing, and c
// is not added twice. Only the first level below the root is searched for the
// group, while AutoRemoveCondition searches the whole tree.
func (f *Filter) AutoInsertCondition(c condition.Condition) error {
	root, err := f.rootComplex()
	if err != nil {
		return err
	}
	leaf := condition.FirstSimple(c)
	if leaf == nil || leaf.Attribute == "" {
		return errors.Wrap(ErrConsistency, "condition to insert has no attribute")
	}
	attribute := leaf.Attribute

	next := root.CloneComplex()
	index := lo.IndexOf(lo.Map(next.Conditions, func(sub condition.Condition, _ int) string {
		if s := condition.FirstSimple(sub); s != nil {
			return s.Attribute
		}
		return ""
	}), attribute)

	newGroup := index < 0
	if newGroup {
		next.AddCondition(condition.Or(c.Clone()))
	} else {
		switch existing := next.Conditions[index].(type) {
		case *condition.Complex:
			if lo.ContainsBy(existing.Conditions, c.Equal) {
				f.logger.Debug("condition already present", "attribute", attribute)
				return nil
			}
			existing.AddCondition(c.Clone())
		default:
			// a bare leaf below the root becomes a group of its own
			if existing.Equal(c) {
				f.logger.Debug("condition already present", "attribute", attribute)
				return nil
			}
			next.Conditions[index] = condition.Or(existing, c.Clone())
		}
	}

	if err := condition.CheckComplexity(next, f.config.Limits()); err != nil {
		return errors.Wrapf(err, "insert condition on %q", attribute)
	}

	f.logger.Debug("condition inserted", "attribute", attribute, "newGroup", newGroup)
	f.root = next
	return nil
}

// AutoRemoveCondition removes the first condition equal to c found anywhere
// in the tree. Complex conditions emptied by the removal are removed too.
// It reports whether a condition was removed.
func (f *Filter) AutoRemoveCondition(c condition.Condition) (bool, error) {
	root, err := f.rootComplex()
	if err != nil {
		return false, err
	}
	next := root.CloneComplex()
	if !next.RemoveCondition(c) {
		return false, nil
	}
	f.logger.Debug("condition removed", "kind", c.Kind())
	f.root = next
	return true, nil
}

// RemoveAttributeConditions removes every condition on attribute and prunes
// the groups left empty.
func (f *Filter) RemoveAttributeConditions(attribute string) (condition.RemoveResult, error) {
	root, err := f.rootComplex()
	if err != nil {
		return condition.RemoveResult{}, err
	}
	next := root.CloneComplex()
	result := next.RemoveAttributeConditions(attribute)
	if result.Deleted {
		f.root = next
	}
	return result, nil
}

// ResetConditions replaces the root with an empty complex condition of the
// same operator.
func (f *Filter) ResetConditions() {
	op := condition.LogicalAnd
	if root, ok := f.root.(*condition.Complex); ok && root != nil {
		op = root.Operator
	}
	f.root = condition.NewComplex(op)
}

// ToJSON serializes f for the query-execution layer.
func (f *Filter) ToJSON() ([]byte, error) {
	dataSource := []byte("null")
	if f.dataSource != nil {
		var err error
		dataSource, err = f.dataSource.ToJSON()
		if err != nil {
			return nil, err
		}
	}
	root, err := condition.ToJSON(f.root)
	if err != nil {
		return nil, err
	}

	data, err := sjson.SetRawBytes([]byte("{}"), "dataSource", dataSource)
	if err != nil {
		return nil, errors.Wrap(err, "set dataSource")
	}
	data, err = sjson.SetBytes(data, "searchTerm", f.searchTerm)
	if err != nil {
		return nil, errors.Wrap(err, "set searchTerm")
	}
	data, err = sjson.SetRawBytes(data, "rootCondition", root)
	if err != nil {
		return nil, errors.Wrap(err, "set rootCondition")
	}
	return data, nil
}

func dataSourceID(ds DataSource) string {
	if ds == nil {
		return ""
	}
	return ds.ID()
}
