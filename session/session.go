package session

import (
	"context"
	"encoding/json"
	"strconv"

	"go-storefront/models"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

// Session is one shopper's view of the store. Reads that fail are logged and
// treated as absent so a broken store degrades to "logged out", never to an error page.
type Session struct {
	ID    string
	store Store
	log   zerolog.Logger
}

func New(id string, store Store, log zerolog.Logger) *Session {
	return &Session{ID: id, store: store, log: log}
}

// WithSession attaches s to ctx
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session attached by the session middleware
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

func (s *Session) get(ctx context.Context, key string) string {
	v, ok, err := s.store.Get(ctx, s.ID, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("session read failed")
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

func (s *Session) set(ctx context.Context, key, value string) error {
	return s.store.Set(ctx, s.ID, key, value)
}

func (s *Session) clear(ctx context.Context, keys ...string) error {
	return s.store.Delete(ctx, s.ID, keys...)
}

func (s *Session) AuthToken(ctx context.Context) string     { return s.get(ctx, KeyAuthToken) }
func (s *Session) UserEmail(ctx context.Context) string     { return s.get(ctx, KeyUserEmail) }
func (s *Session) ProviderEmail(ctx context.Context) string { return s.get(ctx, KeyProviderEmail) }
func (s *Session) AdminToken(ctx context.Context) string    { return s.get(ctx, KeyAdminToken) }

// AdminUser decodes the stored admin profile; a malformed value reads as absent
func (s *Session) AdminUser(ctx context.Context) (models.AdminUser, bool) {
	raw := s.get(ctx, KeyAdminUser)
	if raw == "" {
		return models.AdminUser{}, false
	}
	var u models.AdminUser
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return models.AdminUser{}, false
	}
	return u, true
}

// CartCount reads the cart mirror; a missing or malformed value is zero
func (s *Session) CartCount(ctx context.Context) int {
	n, err := strconv.Atoi(s.get(ctx, KeyCart))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SetShopper records a manual login or registration
func (s *Session) SetShopper(ctx context.Context, email, token string) error {
	if token != "" {
		if err := s.set(ctx, KeyAuthToken, token); err != nil {
			return err
		}
	}
	return s.set(ctx, KeyUserEmail, email)
}

// SetProviderShopper records a third-party sign-in. The email is also stored
// as userEmail so the shopper stays known if the provider session goes away.
func (s *Session) SetProviderShopper(ctx context.Context, email, token string) error {
	if err := s.set(ctx, KeyProviderEmail, email); err != nil {
		return err
	}
	return s.SetShopper(ctx, email, token)
}

// ClearShopper forgets the shopper identity
func (s *Session) ClearShopper(ctx context.Context) error {
	return s.clear(ctx, KeyAuthToken, KeyUserEmail, KeyProviderEmail)
}

// SetAdmin records an admin login
func (s *Session) SetAdmin(ctx context.Context, token string, admin models.AdminUser) error {
	b, err := json.Marshal(admin)
	if err != nil {
		return err
	}
	if err := s.set(ctx, KeyAdminToken, token); err != nil {
		return err
	}
	return s.set(ctx, KeyAdminUser, string(b))
}

// ClearAdmin forgets the admin token and profile
func (s *Session) ClearAdmin(ctx context.Context) error {
	return s.clear(ctx, KeyAdminToken, KeyAdminUser)
}

// SetCartCount rewrites the cart mirror
func (s *Session) SetCartCount(ctx context.Context, n int) error {
	return s.set(ctx, KeyCart, strconv.Itoa(n))
}

// ClearCart drops the cart mirror
func (s *Session) ClearCart(ctx context.Context) error {
	return s.clear(ctx, KeyCart)
}
