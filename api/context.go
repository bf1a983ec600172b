package api

import (
	"context"
)

type keyType string

const (
	operatorKey keyType = "operator"
)

// ctxWithOperator records the authenticated operator on the request context
func ctxWithOperator(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, operatorKey, subject)
}

// ctxGetOperator returns the operator set by the auth middleware, if any
func ctxGetOperator(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(operatorKey).(string)
	return subject, ok && subject != ""
}
