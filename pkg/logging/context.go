package logging

import (
	"context"
)

type ctxKeyDetails struct{}

type ctxValue struct {
	Super   *ctxValue
	Details []Detail
}

// ContextWith attaches logging details to the context,
// so every entry logged under it carries them, like the CLI's command name
// on the lines a view writes during a lookup.
func ContextWith(ctx context.Context, lds ...Detail) context.Context {
	if len(lds) == 0 {
		return ctx
	}
	var v ctxValue
	if prev, ok := lookupValue(ctx); ok {
		v.Super = prev
	}
	v.Details = lds
	return context.WithValue(ctx, ctxKeyDetails{}, &v)
}

// getLoggingDetailsFromContext collects the details of ctx, outermost first.
func getLoggingDetailsFromContext(ctx context.Context) []Detail {
	if ctx == nil {
		return nil
	}
	var chain []*ctxValue
	for v, ok := lookupValue(ctx); ok && v != nil; v = v.Super {
		chain = append(chain, v)
	}
	var details []Detail
	for i := len(chain) - 1; 0 <= i; i-- {
		details = append(details, chain[i].Details...)
	}
	return details
}

func lookupValue(ctx context.Context) (*ctxValue, bool) {
	if ptr, ok := ctx.Value(ctxKeyDetails{}).(*ctxValue); ok {
		return ptr, true
	}
	return nil, false
}
