package checkout

import (
	"context"
	"errors"
	"strings"

	"go-storefront/cart"
	"go-storefront/metrics"
	"go-storefront/models"
	"go-storefront/session"

	"github.com/rs/zerolog"
)

// ErrEmptyCart refuses checkout of a cart with no lines
var ErrEmptyCart = errors.New("Your cart is empty")

// OrdersRedirect is where the shopper lands after a successful checkout
const OrdersRedirect = "/orders"

// CartReader fetches the shopper's current cart
type CartReader interface {
	Fetch(ctx context.Context, sess *session.Session, email string) (cart.Snapshot, error)
}

// MirrorClearer drops the session's cart mirror
type MirrorClearer interface {
	Clear(ctx context.Context, sess *session.Session) error
}

// OrderAPI submits orders to the commerce API
type OrderAPI interface {
	CreateOrder(ctx context.Context, req models.OrderRequest) (models.Order, error)
}

// Notifier is told about every order the backend accepts. Failures are logged, not surfaced.
type Notifier interface {
	OrderPlaced(ctx context.Context, email string, order models.Order) error
}

// Quote is the checkout view before submission
type Quote struct {
	Items     []models.CartItem      `json:"items"`
	Subtotal  int64                  `json:"subtotal"`
	Shipping  int64                  `json:"shipping"`
	Total     int64                  `json:"total"`
	Cities    []string               `json:"cities"`
	Districts []string               `json:"districts"`
	Payment   []models.PaymentMethod `json:"paymentMethods"`
}

// Result is a placed order plus where to send the shopper next
type Result struct {
	Order       models.Order `json:"order"`
	ClientTotal int64        `json:"clientTotal"`
	Redirect    string       `json:"redirect"`
}

// Aggregator turns the shopper's cart and shipping form into an order
type Aggregator struct {
	cart      CartReader
	mirror    MirrorClearer
	orders    OrderAPI
	notifiers []Notifier
	log       zerolog.Logger
}

func NewAggregator(cart CartReader, mirror MirrorClearer, orders OrderAPI, log zerolog.Logger, notifiers ...Notifier) *Aggregator {
	return &Aggregator{
		cart:      cart,
		mirror:    mirror,
		orders:    orders,
		notifiers: notifiers,
		log:       log.With().Str("component", "checkout").Logger(),
	}
}

// Total is the plain sum of price times quantity
func Total(items []models.CartItem) int64 {
	return cart.Subtotal(items)
}

// BuildOrder maps every cart line into the order payload
func BuildOrder(email string, items []models.CartItem, form ShippingForm) models.OrderRequest {
	lines := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, models.OrderItem{
			Product:  it.Product.ID,
			Title:    it.Product.Title,
			Price:    it.Product.Price,
			Quantity: it.Quantity,
			Size:     it.Size,
			Color:    it.Color,
			Image:    it.Product.FirstImage(),
		})
	}

	return models.OrderRequest{
		UserEmail:       email,
		Items:           lines,
		ShippingAddress: form.ShippingAddress(),
		TotalAmount:     Total(items),
		Notes:           strings.TrimSpace(form.Notes),
	}
}

// Quote loads the cart for the checkout view
func (a *Aggregator) Quote(ctx context.Context, sess *session.Session, email string) (Quote, error) {
	snap, err := a.cart.Fetch(ctx, sess, email)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Items:     snap.Items,
		Subtotal:  snap.Subtotal,
		Total:     snap.Subtotal,
		Cities:    Cities,
		Districts: Districts,
		Payment:   models.PaymentMethods,
	}, nil
}

// Place submits the shopper's cart as an order. On failure nothing local
// changes and nothing is retried.
func (a *Aggregator) Place(ctx context.Context, sess *session.Session, email string, form ShippingForm) (Result, error) {
	snap, err := a.cart.Fetch(ctx, sess, email)
	if err != nil {
		metrics.CheckoutResult("cart_unavailable")
		return Result{}, err
	}
	if snap.Empty() {
		metrics.CheckoutResult("empty_cart")
		return Result{}, ErrEmptyCart
	}
	if err := form.Validate().Err("Please fix the highlighted fields"); err != nil {
		metrics.CheckoutResult("invalid_form")
		return Result{}, err
	}

	req := BuildOrder(email, snap.Items, form)
	order, err := a.orders.CreateOrder(ctx, req)
	if err != nil {
		metrics.CheckoutResult("rejected")
		a.log.Error().Err(err).Str("email", email).Int64("total", req.TotalAmount).Msg("placing order failed")
		return Result{}, err
	}
	metrics.CheckoutResult("placed")

	// The backend's figure is authoritative; a mismatch means it repriced.
	if order.TotalAmount != 0 && order.TotalAmount != req.TotalAmount {
		a.log.Warn().
			Str("order_number", order.OrderNumber).
			Int64("client_total", req.TotalAmount).
			Int64("backend_total", order.TotalAmount).
			Msg("order total diverges from cart total")
	}

	if err := a.mirror.Clear(ctx, sess); err != nil {
		a.log.Warn().Err(err).Msg("clearing cart mirror failed")
	}

	for _, n := range a.notifiers {
		if err := n.OrderPlaced(ctx, email, order); err != nil {
			a.log.Error().Err(err).Str("order_number", order.OrderNumber).Msg("order notification failed")
		}
	}

	a.log.Info().Str("email", email).Str("order_number", order.OrderNumber).Int("lines", len(req.Items)).Msg("order placed")
	return Result{Order: order, ClientTotal: req.TotalAmount, Redirect: OrdersRedirect}, nil
}
