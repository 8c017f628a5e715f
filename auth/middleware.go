package auth

import (
	"net/http"

	"github.com/jonwraymond/healthjson/observe"
)

// Middleware authenticates each request and attaches the resulting identity
// to its context. Requests without usable credentials continue with an
// anonymous identity; they are never rejected here.
//
// Usage:
//
//	mux.Handle("/health", auth.Middleware(authn, logger)(handler))
func Middleware(authn Authenticator, logger observe.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = observe.NopLogger()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			id := AnonymousIdentity()

			req := &AuthRequest{Headers: r.Header}
			if authn != nil && authn.Supports(req) {
				result, err := authn.Authenticate(ctx, req)
				switch {
				case err != nil:
					logger.Error(ctx, "authentication error",
						observe.F("authenticator", authn.Name()),
						observe.F("error", err.Error()),
					)
				case !result.Authenticated:
					logger.Warn(ctx, "authentication failed",
						observe.F("method", result.Method),
						observe.F("reason", errString(result.Error)),
					)
				default:
					id = result.Identity
				}
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, id)))
		})
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
