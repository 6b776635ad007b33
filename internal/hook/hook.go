package hook

// Prepend returns a hook that runs hooks around base. The first hook is the
// outermost one, and base sits closest to the wrapped function.
func Prepend[F any](base func(next F) F, hooks ...func(next F) F) func(next F) F {
	if len(hooks) == 0 {
		return base
	}
	return func(next F) F {
		if base != nil {
			next = base(next)
		}
		for i := len(hooks) - 1; i >= 0; i-- {
			if hooks[i] != nil {
				next = hooks[i](next)
			}
		}
		return next
	}
}

// Wrap applies h to next, returning next untouched when h is nil.
func Wrap[F any](h func(next F) F, next F) F {
	if h == nil {
		return next
	}
	return h(next)
}
