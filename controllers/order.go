package controllers

import (
	"context"
	"net/http"

	"go-storefront/checkout"
	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/session"
	"go-storefront/utils"

	"github.com/rs/zerolog"
)

// OrderHistory lists a shopper's past orders
type OrderHistory interface {
	UserOrders(ctx context.Context, email string) ([]models.Order, error)
}

// OrderController handles checkout and order history
type OrderController struct {
	Checkout *checkout.Aggregator
	History  OrderHistory
	log      zerolog.Logger
}

// NewOrderController creates a new OrderController
func NewOrderController(agg *checkout.Aggregator, history OrderHistory, log zerolog.Logger) *OrderController {
	return &OrderController{Checkout: agg, History: history, log: log}
}

// GetCheckout returns the cart and form choices for the checkout view
func (oc *OrderController) GetCheckout(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())
	sess, _ := session.FromContext(r.Context())

	quote, err := oc.Checkout.Quote(r.Context(), sess, id.Email)
	if err != nil {
		respondError(w, oc.log, err)
		return
	}
	utils.WriteData(w, http.StatusOK, quote)
}

// CreateOrder places the shopper's cart as an order
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())
	sess, _ := session.FromContext(r.Context())

	var form checkout.ShippingForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, oc.log, err)
		return
	}

	res, err := oc.Checkout.Place(r.Context(), sess, id.Email, form)
	if err != nil {
		respondError(w, oc.log, err)
		return
	}
	utils.WriteData(w, http.StatusCreated, res)
}

// GetOrders lists the shopper's orders
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())

	orders, err := oc.History.UserOrders(r.Context(), id.Email)
	if err != nil {
		respondError(w, oc.log, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	utils.WriteData(w, http.StatusOK, orders)
}
