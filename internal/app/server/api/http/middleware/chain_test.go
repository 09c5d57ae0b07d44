package middleware

import (
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
)

func recorder(trace *[]string, name string) Func {
	return func(ctx huma.Context, next func(huma.Context)) {
		*trace = append(*trace, name)
		next(ctx)
	}
}

func TestChain_ThenKeepsPrefix(t *testing.T) {
	var trace []string
	base := New(recorder(&trace, "log"))

	public := base.Then(recorder(&trace, "json"))
	authed := base.Then(recorder(&trace, "auth"))
	subs := authed.Then(recorder(&trace, "json"))

	assert.Len(t, base.Middlewares(), 1)
	assert.Len(t, public.Middlewares(), 2)
	assert.Len(t, authed.Middlewares(), 2)
	assert.Len(t, subs.Middlewares(), 3)

	ctx := humatest.NewContext(nil, nil, nil)
	run(subs.Middlewares(), ctx)
	assert.Equal(t, []string{"log", "auth", "json"}, trace)

	trace = nil
	run(public.Middlewares(), ctx)
	assert.Equal(t, []string{"log", "json"}, trace)
}

func TestChain_MiddlewaresIsACopy(t *testing.T) {
	var trace []string
	c := New(recorder(&trace, "a"))

	mws := c.Middlewares()
	mws[0] = recorder(&trace, "b")

	run(c.Middlewares(), humatest.NewContext(nil, nil, nil))
	assert.Equal(t, []string{"a"}, trace)
}

func run(mws huma.Middlewares, ctx huma.Context) {
	mws.Handler(func(huma.Context) {})(ctx)
}
