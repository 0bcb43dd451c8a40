package cart

import (
	"context"

	"go-storefront/session"
)

// Mirror is the single writer of the session's cart key, which holds the line
// count shown on the navigation badge.
type Mirror struct{}

func (m *Mirror) record(ctx context.Context, sess *session.Session, snap Snapshot) {
	if sess == nil {
		return
	}
	_ = sess.SetCartCount(ctx, snap.Count)
}

// Clear drops the mirror. Checkout and logout call it; the server-side cart is
// not touched.
func (m *Mirror) Clear(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return nil
	}
	return sess.ClearCart(ctx)
}
