package browser

import "net/http"

// Middleware computes the browser signature once per request and attaches
// it to the request context
func Middleware(p *Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := SetSignatureToContext(r.Context(), p.Signature(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
