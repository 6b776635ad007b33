package sina

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrConsistency marks a filter in a state the caller should never have
	// produced, such as a root condition that is not a complex condition.
	ErrConsistency = errors.New("filter consistency violation")

	// ErrInternal marks missing metadata the filter needs, such as a folder
	// attribute on a data source without hierarchy.
	ErrInternal = errors.New("internal invariant violation")
)

// InternalError is an ErrInternal carrying the text key of its message.
type InternalError struct {
	Key     string
	Message string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, ErrInternal)
}

func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}

// TextResolver resolves message keys to display texts.
type TextResolver interface {
	Text(key string, args ...any) string
}

// TextResolverFunc adapts a function to TextResolver.
type TextResolverFunc func(key string, args ...any) string

func (f TextResolverFunc) Text(key string, args ...any) string {
	return f(key, args...)
}

// KeyTextResolver returns the key itself, followed by the args if any.
var KeyTextResolver TextResolver = TextResolverFunc(func(key string, args ...any) string {
	if len(args) == 0 {
		return key
	}
	return fmt.Sprintf("%s %v", key, args)
})

func (f *Filter) internalError(key string, args ...any) error {
	return errors.WithStack(&InternalError{Key: key, Message: f.text.Text(key, args...)})
}
