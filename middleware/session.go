package middleware

import (
	"net/http"
	"time"

	"go-storefront/session"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// SessionOptions configures the session cookie
type SessionOptions struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Session attaches the caller's session to the request, issuing a fresh
// random id when the cookie is missing or not one of ours
func Session(store session.Store, opts SessionOptions, log zerolog.Logger) mux.MiddlewareFunc {
	if opts.CookieName == "" {
		opts.CookieName = "sid"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sid string
			if c, err := r.Cookie(opts.CookieName); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					sid = c.Value
				}
			}
			if sid == "" {
				sid = uuid.NewString()
			}

			// refresh on every request so the cookie slides with the store TTL
			http.SetCookie(w, &http.Cookie{
				Name:     opts.CookieName,
				Value:    sid,
				Path:     "/",
				MaxAge:   int(opts.TTL.Seconds()),
				HttpOnly: true,
				Secure:   opts.Secure,
				SameSite: http.SameSiteLaxMode,
			})

			sess := session.New(sid, store, log)
			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), sess)))
		})
	}
}
