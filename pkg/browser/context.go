package browser

import "context"

type signatureContextKey struct{}

// SetSignatureToContext stores a browser signature in the context
func SetSignatureToContext(ctx context.Context, signature string) context.Context {
	return context.WithValue(ctx, signatureContextKey{}, signature)
}

// GetSignatureFromContext returns the browser signature stored in the
// context, or the empty string when none is present
func GetSignatureFromContext(ctx context.Context) string {
	signature, _ := ctx.Value(signatureContextKey{}).(string)
	return signature
}
