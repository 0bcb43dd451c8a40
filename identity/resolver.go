package identity

import (
	"context"
	"time"

	"go-storefront/session"
	"go-storefront/utils"
)

// Source tells where the active shopper's email came from
type Source string

const (
	SourceProvider Source = "provider"
	SourceStored   Source = "stored"
)

// Identity is the active shopper. Email keys every cart and order call.
type Identity struct {
	Email  string
	Source Source
}

// Resolver picks the active shopper from the session
type Resolver struct {
	now func() time.Time
}

func NewResolver() *Resolver {
	return &Resolver{now: time.Now}
}

// Resolve prefers the third-party session's email and falls back to the email
// stored at manual login. Malformed or expired stored state resolves to
// "nobody" rather than an error.
func (r *Resolver) Resolve(ctx context.Context, s *session.Session) (Identity, bool) {
	if s == nil {
		return Identity{}, false
	}

	if email := s.ProviderEmail(ctx); utils.IsEmail(email) {
		return Identity{Email: email, Source: SourceProvider}, true
	}

	email := s.UserEmail(ctx)
	if !utils.IsEmail(email) {
		return Identity{}, false
	}

	if token := s.AuthToken(ctx); token != "" {
		claims, err := utils.DecodeUnverified(token)
		if err != nil || claims.ExpiredAt(r.now()) {
			return Identity{}, false
		}
	}
	return Identity{Email: email, Source: SourceStored}, true
}
