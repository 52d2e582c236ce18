// Package reqctx carries per-request transport facts through context.Context
// so that code below the HTTP layer can read them without depending on gin.
package reqctx

import "context"

type ctxKey string

const secureKey = ctxKey("secure")

// WithSecure records whether the inbound request arrived over an encrypted transport.
func WithSecure(ctx context.Context, secure bool) context.Context {
	return context.WithValue(ctx, secureKey, secure)
}

// IsSecure reports the recorded transport flag. Absent means insecure.
func IsSecure(ctx context.Context) bool {
	v, ok := ctx.Value(secureKey).(bool)
	return ok && v
}
