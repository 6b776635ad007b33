package hook

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fn func(s string) string

func tag(name string) func(next fn) fn {
	return func(next fn) fn {
		return func(s string) string {
			return name + "(" + next(s) + ")"
		}
	}
}

func TestPrepend(t *testing.T) {
	identity := fn(func(s string) string { return s })

	h := Prepend(tag("base"), tag("a"), tag("b"))
	require.Equal(t, "a(b(base(x)))", h(identity)("x"))

	h = Prepend(h, tag("c"))
	require.Equal(t, "c(a(b(base(x))))", h(identity)("x"))

	h = Prepend[fn](nil, tag("a"))
	require.Equal(t, "a(x)", h(identity)("x"))

	require.Nil(t, Prepend[fn](nil))
}

func TestWrap(t *testing.T) {
	identity := fn(func(s string) string { return s })

	require.Equal(t, "x", Wrap[fn](nil, identity)("x"))
	require.Equal(t, "a(x)", Wrap(tag("a"), identity)("x"))
}
