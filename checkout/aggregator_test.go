package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-storefront/cart"
	"go-storefront/models"
	"go-storefront/session"
	"go-storefront/utils"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productID = "64b7f0c2a1e4d3f5b6c7d8e9"

type fakeCartAPI struct {
	items []models.CartItem
	err   error
}

func (f *fakeCartAPI) GetCart(context.Context, string) ([]models.CartItem, error) {
	return f.items, f.err
}

func (f *fakeCartAPI) AddCartItem(context.Context, models.AddToCartRequest) ([]models.CartItem, error) {
	return f.items, f.err
}

func (f *fakeCartAPI) UpdateCartItem(context.Context, string, string, int) ([]models.CartItem, error) {
	return f.items, f.err
}

func (f *fakeCartAPI) RemoveCartItem(context.Context, string, string) ([]models.CartItem, error) {
	return f.items, f.err
}

type fakeOrders struct {
	calls int
	got   models.OrderRequest
	order models.Order
	err   error
}

func (f *fakeOrders) CreateOrder(_ context.Context, req models.OrderRequest) (models.Order, error) {
	f.calls++
	f.got = req
	return f.order, f.err
}

type recordingNotifier struct {
	orders []models.Order
	err    error
}

func (n *recordingNotifier) OrderPlaced(_ context.Context, _ string, order models.Order) error {
	n.orders = append(n.orders, order)
	return n.err
}

func validForm() ShippingForm {
	return ShippingForm{
		FullName:   "Rahim Uddin",
		Phone:      "01712-345678",
		Address:    "House 12, Road 4",
		City:       "Dhaka",
		PostalCode: "1205",
		District:   "Dhaka",
		Notes:      " leave at gate ",
	}
}

func shirt(price int64, qty int, images ...string) models.CartItem {
	return models.CartItem{
		ID:       "c1",
		Product:  models.CartProduct{ID: productID, Title: "Oxford Shirt", Price: price, Images: images},
		Quantity: qty,
		Size:     "L",
		Color:    "White",
	}
}

type fixture struct {
	agg      *Aggregator
	cartAPI  *fakeCartAPI
	orders   *fakeOrders
	notifier *recordingNotifier
	sess     *session.Session
}

func newFixture(t *testing.T, items ...models.CartItem) fixture {
	t.Helper()
	cartAPI := &fakeCartAPI{items: items}
	orders := &fakeOrders{order: models.Order{ID: "o1", OrderNumber: "ORD-1001", OrderStatus: models.OrderPending}}
	notifier := &recordingNotifier{}
	accessor := cart.NewAccessor(cartAPI, nil, zerolog.Nop())
	sess := session.New("sid-1", session.NewMemoryStore(time.Hour), zerolog.Nop())
	return fixture{
		agg:      NewAggregator(accessor, accessor.Mirror(), orders, zerolog.Nop(), notifier),
		cartAPI:  cartAPI,
		orders:   orders,
		notifier: notifier,
		sess:     sess,
	}
}

func TestTotalSumsPriceTimesQuantity(t *testing.T) {
	assert.Equal(t, int64(2400), Total([]models.CartItem{shirt(1200, 2)}))
	assert.Equal(t, int64(3100), Total([]models.CartItem{shirt(1200, 2), shirt(350, 2)}))
	assert.Equal(t, int64(0), Total(nil))
}

func TestBuildOrderMapsEveryLine(t *testing.T) {
	items := []models.CartItem{shirt(1200, 2, "https://cdn/1.jpg", "https://cdn/2.jpg"), shirt(500, 1)}

	req := BuildOrder("a@b.co", items, validForm())

	assert.Equal(t, "a@b.co", req.UserEmail)
	assert.Equal(t, int64(2900), req.TotalAmount)
	require.Len(t, req.Items, 2)
	assert.Equal(t, models.OrderItem{
		Product:  productID,
		Title:    "Oxford Shirt",
		Price:    1200,
		Quantity: 2,
		Size:     "L",
		Color:    "White",
		Image:    "https://cdn/1.jpg",
	}, req.Items[0])
	assert.Equal(t, "", req.Items[1].Image)
	assert.Equal(t, "01712-345678", req.ShippingAddress.Phone)
	assert.Equal(t, "House 12, Road 4", req.ShippingAddress.Address)
	assert.Equal(t, "leave at gate", req.Notes)
}

func TestShippingFormValidate(t *testing.T) {
	assert.Empty(t, validForm().Validate())

	errs := ShippingForm{Phone: "12345"}.Validate()
	assert.Equal(t, "Invalid phone number", errs["phone"])
	for _, field := range []string{"fullName", "address", "city", "postalCode", "district"} {
		assert.Contains(t, errs, field)
	}

	errs = ShippingForm{}.Validate()
	assert.Equal(t, "Phone number is required", errs["phone"])

	form := validForm()
	form.Phone = "017123456789"
	assert.Contains(t, form.Validate(), "phone")
}

func TestPlaceSubmitsAndClearsMirror(t *testing.T) {
	f := newFixture(t, shirt(1200, 2))
	ctx := context.Background()
	require.NoError(t, f.sess.SetCartCount(ctx, 1))
	f.orders.order.TotalAmount = 2400

	res, err := f.agg.Place(ctx, f.sess, "a@b.co", validForm())
	require.NoError(t, err)

	assert.Equal(t, 1, f.orders.calls)
	assert.Equal(t, int64(2400), f.orders.got.TotalAmount)
	assert.Equal(t, "ORD-1001", res.Order.OrderNumber)
	assert.Equal(t, OrdersRedirect, res.Redirect)
	assert.Equal(t, int64(2400), res.ClientTotal)
	assert.Equal(t, 0, f.sess.CartCount(ctx))
	assert.Len(t, f.notifier.orders, 1)
}

func TestPlaceRefusesEmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.agg.Place(context.Background(), f.sess, "a@b.co", validForm())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, f.orders.calls)
}

func TestPlaceRejectsInvalidFormWithoutCall(t *testing.T) {
	f := newFixture(t, shirt(1200, 2))
	form := validForm()
	form.District = ""

	_, err := f.agg.Place(context.Background(), f.sess, "a@b.co", form)

	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "district")
	assert.Equal(t, 0, f.orders.calls)
}

func TestPlaceFailureLeavesMirror(t *testing.T) {
	f := newFixture(t, shirt(1200, 2))
	ctx := context.Background()
	f.orders.err = errors.New("Insufficient stock")

	_, err := f.agg.Place(ctx, f.sess, "a@b.co", validForm())
	require.Error(t, err)

	assert.Equal(t, 1, f.orders.calls)
	assert.Equal(t, 1, f.sess.CartCount(ctx))
	assert.Empty(t, f.notifier.orders)
}

func TestPlaceCartFetchFailure(t *testing.T) {
	f := newFixture(t)
	f.cartAPI.err = errors.New("down")

	_, err := f.agg.Place(context.Background(), f.sess, "a@b.co", validForm())
	assert.EqualError(t, err, "down")
	assert.Equal(t, 0, f.orders.calls)
}

func TestPlaceNotifierFailureDoesNotFailCheckout(t *testing.T) {
	f := newFixture(t, shirt(1200, 2))
	f.notifier.err = errors.New("smtp down")

	res, err := f.agg.Place(context.Background(), f.sess, "a@b.co", validForm())
	require.NoError(t, err)
	assert.Equal(t, "ORD-1001", res.Order.OrderNumber)
}

func TestQuote(t *testing.T) {
	f := newFixture(t, shirt(1200, 2), shirt(300, 1))

	q, err := f.agg.Quote(context.Background(), f.sess, "a@b.co")
	require.NoError(t, err)
	assert.Len(t, q.Items, 2)
	assert.Equal(t, int64(2700), q.Subtotal)
	assert.Equal(t, int64(2700), q.Total)
	assert.Contains(t, q.Cities, "Mymensingh")
	assert.Contains(t, q.Districts, "Coxs Bazar")
	assert.Equal(t, []models.PaymentMethod{models.PaymentCashOnDelivery}, q.Payment)
}
