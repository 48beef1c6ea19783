package ordering

import "context"

// ctxKey is unexported so no other package can collide with these keys.
type ctxKey string

const (
	ctxKeyToken          ctxKey = "bearer_token"
	ctxKeyIdempotencyKey ctxKey = "idempotency_key"
)

// WithToken attaches the session's bearer token to the context. Port
// implementations send it as the Authorization header; calls without it go
// out unauthenticated and the platform decides whether that is acceptable.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKeyToken, token)
}

// TokenFromContext returns the attached bearer token, empty when absent.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(ctxKeyToken).(string)
	return token
}

// WithIdempotencyKey attaches an idempotency key forwarded to the platform
// on order submission, so a retried submit cannot create a duplicate order.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, ctxKeyIdempotencyKey, key)
}

// IdempotencyKeyFromContext returns the attached key, empty when absent.
func IdempotencyKeyFromContext(ctx context.Context) string {
	key, _ := ctx.Value(ctxKeyIdempotencyKey).(string)
	return key
}
