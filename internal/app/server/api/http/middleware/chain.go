// Package middleware composes the huma middleware groups that route handlers are registered with.
package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

type Func = func(ctx huma.Context, next func(huma.Context))

// Chain is an ordered middleware list. Then never modifies the receiver, so one chain can be the common
// prefix of several groups.
type Chain struct {
	mws huma.Middlewares
}

func New(mws ...Func) Chain {
	return Chain{}.Then(mws...)
}

func (c Chain) Then(mws ...Func) Chain {
	out := make(huma.Middlewares, 0, len(c.mws)+len(mws))
	out = append(out, c.mws...)
	for _, mw := range mws {
		out = append(out, mw)
	}

	return Chain{mws: out}
}

// Middlewares is the list in registration order, ready for huma.Operation.Middlewares.
func (c Chain) Middlewares() huma.Middlewares {
	out := make(huma.Middlewares, len(c.mws))
	copy(out, c.mws)

	return out
}
