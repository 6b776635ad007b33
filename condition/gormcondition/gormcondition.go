// Package gormcondition applies a condition tree to a GORM query as a WHERE
// expression. Attributes resolve to fields of the query model and, with
// WithJSONColumn, to keys of a JSON column for the remaining ones.
package gormcondition

import (
	"cmp"
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"github.com/theplant/sina/condition"
	"github.com/theplant/sina/internal/hook"
)

// BuildInput is the leaf being translated.
type BuildInput struct {
	Statement *gorm.Statement
	Condition *condition.Simple
	// Column is the resolved model column, or nil when the attribute matches
	// no field of the model.
	Column any
	Fold   bool
}

type BuildFunc func(input *BuildInput) (clause.Expression, error)

type Options struct {
	JSONColumn string
	Fold       bool
	BuildHook  func(next BuildFunc) BuildFunc
}

type Option func(*Options)

// WithJSONColumn resolves attributes without a model field to keys of the
// JSON column.
func WithJSONColumn(column string) Option {
	return func(opts *Options) {
		opts.JSONColumn = column
	}
}

// WithFold compares strings case-insensitively.
func WithFold() Option {
	return func(opts *Options) {
		opts.Fold = true
	}
}

// WithBuildHook adds hooks around the translation of each leaf, for computed
// columns or custom operators.
func WithBuildHook(hooks ...func(next BuildFunc) BuildFunc) Option {
	return func(opts *Options) {
		opts.BuildHook = hook.Prepend(opts.BuildHook, hooks...)
	}
}

func Scope(c condition.Condition, opts ...Option) func(db *gorm.DB) *gorm.DB {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	return func(db *gorm.DB) *gorm.DB {
		if db == nil {
			return nil
		}
		cdb, err := addCondition(db, c, options)
		if err != nil {
			db.AddError(err)
			return db
		}
		return cdb
	}
}

func addCondition(db *gorm.DB, c condition.Condition, opts *Options) (*gorm.DB, error) {
	if c == nil {
		return db, nil
	}

	model := cmp.Or(db.Statement.Model, db.Statement.Dest)
	if model == nil {
		return nil, errors.New("model is nil")
	}
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return nil, errors.Wrap(err, "parse schema with db")
	}

	b := &builder{stmt: stmt, opts: opts}
	b.build = hook.Wrap(opts.BuildHook, BuildFunc(b.buildDefault))
	expr, err := b.buildExpr(c)
	if err != nil {
		return nil, err
	}
	if expr != nil {
		db = db.Where(expr)
	}
	return db, nil
}

type builder struct {
	stmt  *gorm.Statement
	opts  *Options
	build BuildFunc
}

func (b *builder) buildExpr(c condition.Condition) (clause.Expression, error) {
	switch v := c.(type) {
	case *condition.Simple:
		return b.buildSimpleExpr(v)
	case *condition.Complex:
		if !v.Operator.Known() {
			return nil, errors.Errorf("unknown logical operator %q", v.Operator)
		}
		var exprs []clause.Expression
		for i, sub := range v.Conditions {
			expr, err := b.buildExpr(sub)
			if err != nil {
				return nil, errors.Wrapf(err, "conditions[%d]", i)
			}
			if expr != nil {
				exprs = append(exprs, expr)
			}
		}
		switch len(exprs) {
		case 0:
			return nil, nil
		case 1:
			return exprs[0], nil
		}
		if v.Operator == condition.LogicalOr {
			return clause.Or(exprs...), nil
		}
		return clause.And(exprs...), nil
	default:
		return nil, errors.Errorf("unknown condition type %T", c)
	}
}

func (b *builder) buildSimpleExpr(s *condition.Simple) (clause.Expression, error) {
	input := &BuildInput{
		Statement: b.stmt,
		Condition: s,
		Fold:      b.opts.Fold && isString(s.Value),
	}
	if field := lookupField(b.stmt.Schema, s.Attribute); field != nil {
		var column any = clause.Column{Table: b.stmt.Table, Name: field.DBName}
		if input.Fold {
			column = clause.Expr{SQL: fmt.Sprintf(`LOWER(%s)`, b.stmt.Quote(column))}
		}
		input.Column = column
	}
	return b.build(input)
}

func (b *builder) buildDefault(input *BuildInput) (clause.Expression, error) {
	if input.Column == nil {
		if b.opts.JSONColumn != "" {
			return buildJSONExpr(b.opts.JSONColumn, input.Condition)
		}
		return nil, errors.Errorf("missing field %q in schema", input.Condition.Attribute)
	}
	return buildFieldExpr(input)
}

func buildFieldExpr(input *BuildInput) (clause.Expression, error) {
	s := input.Condition
	column := input.Column
	value := foldValue(s.Value, input.Fold)

	switch s.Operator {
	case condition.OperatorEq:
		return clause.Eq{Column: column, Value: value}, nil
	case condition.OperatorNe:
		return clause.Neq{Column: column, Value: value}, nil
	case condition.OperatorGt:
		return clause.Gt{Column: column, Value: value}, nil
	case condition.OperatorGe:
		return clause.Gte{Column: column, Value: value}, nil
	case condition.OperatorLt:
		return clause.Lt{Column: column, Value: value}, nil
	case condition.OperatorLe:
		return clause.Lte{Column: column, Value: value}, nil
	case condition.OperatorBetween:
		lower, upper, ok := condition.BetweenBounds(value)
		if !ok {
			return nil, errors.Errorf("invalid BETWEEN value for attribute %q", s.Attribute)
		}
		return clause.And(
			clause.Gte{Column: column, Value: lower},
			clause.Lte{Column: column, Value: upper},
		), nil
	case condition.OperatorBw, condition.OperatorEw, condition.OperatorCo, condition.OperatorNc:
		str, ok := value.(string)
		if !ok {
			return nil, errors.Errorf("invalid %s value for attribute %q", s.Operator, s.Attribute)
		}
		var expr clause.Expression = clause.Like{Column: column, Value: likePattern(s.Operator, str)}
		if s.Operator == condition.OperatorNc {
			expr = clause.Not(expr)
		}
		return expr, nil
	default:
		return nil, errors.Errorf("unsupported operator %s for attribute %q", s.Operator, s.Attribute)
	}
}

func buildJSONExpr(column string, s *condition.Simple) (clause.Expression, error) {
	switch s.Operator {
	case condition.OperatorEq:
		return datatypes.JSONQuery(column).Equals(s.Value, s.Attribute), nil
	case condition.OperatorNe:
		return clause.Not(datatypes.JSONQuery(column).Equals(s.Value, s.Attribute)), nil
	default:
		return nil, errors.Errorf("unsupported operator %s for json attribute %q", s.Operator, s.Attribute)
	}
}

func likePattern(op condition.Operator, str string) string {
	switch op {
	case condition.OperatorBw:
		return str + "%"
	case condition.OperatorEw:
		return "%" + str
	default:
		return "%" + str + "%"
	}
}

func foldValue(value any, fold bool) any {
	if str, ok := value.(string); ok && fold {
		return strings.ToLower(str)
	}
	return value
}

func isString(value any) bool {
	_, ok := value.(string)
	return ok
}

var (
	fieldCache     *lru.Cache[fieldCacheKey, *schema.Field]
	fieldCacheOnce sync.Once
)

// The same model parses to different fields under another naming strategy.
type fieldCacheKey struct {
	schema    *schema.Schema
	attribute string
}

func getFieldCache() *lru.Cache[fieldCacheKey, *schema.Field] {
	fieldCacheOnce.Do(func() {
		cache, err := lru.New[fieldCacheKey, *schema.Field](4096)
		if err != nil {
			panic(err)
		}
		fieldCache = cache
	})
	return fieldCache
}

// lookupField finds the field of attribute by Go name, by column name and by
// the Go name derived from a camelCase attribute id, in that order.
func lookupField(s *schema.Schema, attribute string) *schema.Field {
	if s == nil || attribute == "" {
		return nil
	}
	key := fieldCacheKey{schema: s, attribute: attribute}
	cache := getFieldCache()
	if field, ok := cache.Get(key); ok {
		return field
	}

	field, ok := s.FieldsByName[attribute]
	if !ok {
		field, ok = s.FieldsByDBName[attribute]
	}
	if !ok {
		field = s.FieldsByName[condition.SmartPascalCase(attribute)]
	}
	cache.Add(key, field)
	return field
}
