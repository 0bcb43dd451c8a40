package cart

import (
	"context"
	"errors"
	"strings"

	"go-storefront/metrics"
	"go-storefront/models"
	"go-storefront/session"
	"go-storefront/utils"

	"github.com/rs/zerolog"
)

// ErrQuantityTooLow rejects updates below one; removal has its own call
var ErrQuantityTooLow = errors.New("quantity must be at least 1")

var (
	errMissingSize  = utils.Invalid("Please select a size before adding to cart")
	errMissingColor = utils.Invalid("Please select a color before adding to cart")
)

// API is the cart surface of the commerce API. Every call returns the
// authoritative cart after the operation.
type API interface {
	GetCart(ctx context.Context, email string) ([]models.CartItem, error)
	AddCartItem(ctx context.Context, req models.AddToCartRequest) ([]models.CartItem, error)
	UpdateCartItem(ctx context.Context, email, itemID string, quantity int) ([]models.CartItem, error)
	RemoveCartItem(ctx context.Context, email, itemID string) ([]models.CartItem, error)
}

// Publisher receives one signal per successful mutation
type Publisher interface {
	Publish(email string) int
}

// AddInput is one product selection
type AddInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// Validate rejects incomplete selections before any call is made
func (in AddInput) Validate() error {
	if strings.TrimSpace(in.Size) == "" {
		return errMissingSize
	}
	if strings.TrimSpace(in.Color) == "" {
		return errMissingColor
	}
	if !utils.IsObjectID(in.ProductID) {
		return utils.Invalid("Invalid product ID format")
	}
	if in.Quantity < 1 {
		return utils.Invalid("Quantity must be at least 1")
	}
	return nil
}

// Accessor reads and mutates a shopper's server-side cart. Results are never
// patched locally: each call hands back the backend's snapshot whole.
type Accessor struct {
	api    API
	bus    Publisher
	mirror *Mirror
	log    zerolog.Logger
}

func NewAccessor(api API, bus Publisher, log zerolog.Logger) *Accessor {
	return &Accessor{
		api:    api,
		bus:    bus,
		mirror: &Mirror{},
		log:    log.With().Str("component", "cart").Logger(),
	}
}

// Mirror exposes the cart mirror writer for flows that must clear it
func (a *Accessor) Mirror() *Mirror {
	return a.mirror
}

// Fetch returns the cart of email. On any failure the snapshot is empty and
// the error is returned for the caller to surface.
func (a *Accessor) Fetch(ctx context.Context, sess *session.Session, email string) (Snapshot, error) {
	items, err := a.api.GetCart(ctx, email)
	if err != nil {
		a.log.Warn().Err(err).Str("email", email).Msg("fetch cart failed")
		return Snapshot{Items: []models.CartItem{}}, err
	}
	snap := NewSnapshot(items)
	a.mirror.record(ctx, sess, snap)
	return snap, nil
}

// Add puts a selection in the cart
func (a *Accessor) Add(ctx context.Context, sess *session.Session, email string, in AddInput) (Snapshot, error) {
	if err := in.Validate(); err != nil {
		return Snapshot{}, err
	}

	items, err := a.api.AddCartItem(ctx, models.AddToCartRequest{
		Email:     email,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Size:      strings.TrimSpace(in.Size),
		Color:     strings.TrimSpace(in.Color),
	})
	if err != nil {
		return Snapshot{}, err
	}
	return a.mutated(ctx, sess, email, "add", items), nil
}

// Update sets a line's quantity. Quantities below one never reach the backend.
func (a *Accessor) Update(ctx context.Context, sess *session.Session, email, itemID string, quantity int) (Snapshot, error) {
	if quantity < 1 {
		return Snapshot{}, ErrQuantityTooLow
	}
	if strings.TrimSpace(itemID) == "" {
		return Snapshot{}, utils.Invalid("Missing cart item")
	}

	items, err := a.api.UpdateCartItem(ctx, email, itemID, quantity)
	if err != nil {
		return Snapshot{}, err
	}
	return a.mutated(ctx, sess, email, "update", items), nil
}

// Remove deletes a line
func (a *Accessor) Remove(ctx context.Context, sess *session.Session, email, itemID string) (Snapshot, error) {
	if strings.TrimSpace(itemID) == "" {
		return Snapshot{}, utils.Invalid("Missing cart item")
	}

	items, err := a.api.RemoveCartItem(ctx, email, itemID)
	if err != nil {
		return Snapshot{}, err
	}
	return a.mutated(ctx, sess, email, "remove", items), nil
}

func (a *Accessor) mutated(ctx context.Context, sess *session.Session, email, op string, items []models.CartItem) Snapshot {
	snap := NewSnapshot(items)
	a.mirror.record(ctx, sess, snap)

	if a.bus != nil {
		if a.bus.Publish(email) > 0 {
			metrics.CartSignal("delivered")
		} else {
			metrics.CartSignal("no_listener")
		}
	}
	a.log.Debug().Str("email", email).Str("op", op).Int("lines", snap.Count).Msg("cart changed")
	return snap
}
