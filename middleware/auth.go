package middleware

import (
	"context"
	"net/http"

	"go-storefront/adminguard"
	"go-storefront/identity"
	"go-storefront/session"
	"go-storefront/utils"

	"github.com/gorilla/mux"
)

// Key type for context
type contextKey string

const (
	IdentityContextKey = contextKey("identity")
	AdminContextKey    = contextKey("admin")
)

// LoginPath is where shoppers are sent when no identity resolves
const LoginPath = "/login"

// IdentityFrom returns the shopper attached by RequireShopper
func IdentityFrom(ctx context.Context) (identity.Identity, bool) {
	id, ok := ctx.Value(IdentityContextKey).(identity.Identity)
	return id, ok
}

// AdminHintFrom returns the unverified admin claims attached by AdminGuard
func AdminHintFrom(ctx context.Context) (adminguard.ClientHintOnly, bool) {
	h, ok := ctx.Value(AdminContextKey).(adminguard.ClientHintOnly)
	return h, ok
}

// RequireShopper resolves the active shopper and attaches it to the request context
func RequireShopper(resolver *identity.Resolver) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := session.FromContext(r.Context())
			if !ok {
				utils.WriteError(w, http.StatusUnauthorized, "Please login first", LoginPath)
				return
			}
			id, ok := resolver.Resolve(r.Context(), sess)
			if !ok {
				utils.WriteError(w, http.StatusUnauthorized, "Please login first", LoginPath)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityContextKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminGuard keeps callers without a usable admin token out of admin routes.
// It only steers navigation; the backend verifies the token on every call.
func AdminGuard(guard *adminguard.Guard) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminguard.Exempt(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			sess, ok := session.FromContext(r.Context())
			if !ok {
				utils.WriteError(w, http.StatusUnauthorized, adminguard.LoginRequired, adminguard.LoginPath)
				return
			}

			d := guard.Check(r.Context(), sess)
			switch {
			case d.State == adminguard.Authorized:
				ctx := context.WithValue(r.Context(), AdminContextKey, d.Hint)
				next.ServeHTTP(w, r.WithContext(ctx))
			case d.Redirect == adminguard.HomePath:
				utils.WriteError(w, http.StatusForbidden, d.Message, d.Redirect)
			default:
				utils.WriteError(w, http.StatusUnauthorized, d.Message, d.Redirect)
			}
		})
	}
}
