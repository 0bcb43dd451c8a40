package controllers

import (
	"fmt"
	"net/http"
	"time"

	"go-storefront/cart"
	"go-storefront/events"
	"go-storefront/middleware"
	"go-storefront/session"
	"go-storefront/utils"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// keepAlive is how often an idle event stream gets a comment line
var keepAlive = 25 * time.Second

// CartController handles cart-related requests
type CartController struct {
	Cart *cart.Accessor
	Bus  *events.Bus
	log  zerolog.Logger
}

// NewCartController creates a new CartController
func NewCartController(accessor *cart.Accessor, bus *events.Bus, log zerolog.Logger) *CartController {
	return &CartController{Cart: accessor, Bus: bus, log: log}
}

// GetCart returns the shopper's cart
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())
	sess, _ := session.FromContext(r.Context())

	snap, err := cc.Cart.Fetch(r.Context(), sess, id.Email)
	if err != nil {
		respondError(w, cc.log, err)
		return
	}
	utils.WriteData(w, http.StatusOK, snap.View())
}

// AddToCart adds a product selection to the shopper's cart
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())
	sess, _ := session.FromContext(r.Context())

	var in cart.AddInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, cc.log, err)
		return
	}

	snap, err := cc.Cart.Add(r.Context(), sess, id.Email, in)
	if err != nil {
		respondError(w, cc.log, err)
		return
	}
	utils.WriteData(w, http.StatusOK, snap.View())
}

// UpdateCartItem sets the quantity of one line
func (cc *CartController) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())
	sess, _ := session.FromContext(r.Context())

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, cc.log, err)
		return
	}

	snap, err := cc.Cart.Update(r.Context(), sess, id.Email, mux.Vars(r)["itemId"], body.Quantity)
	if err != nil {
		respondError(w, cc.log, err)
		return
	}
	utils.WriteData(w, http.StatusOK, snap.View())
}

// RemoveFromCart deletes one line
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())
	sess, _ := session.FromContext(r.Context())

	snap, err := cc.Cart.Remove(r.Context(), sess, id.Email, mux.Vars(r)["itemId"])
	if err != nil {
		respondError(w, cc.log, err)
		return
	}
	utils.WriteData(w, http.StatusOK, snap.View())
}

// Count returns the mirrored line count for the navigation badge
func (cc *CartController) Count(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	utils.WriteData(w, http.StatusOK, map[string]int{"count": sess.CartCount(r.Context())})
}

// Events streams a "cart" event every time the shopper's cart changes
func (cc *CartController) Events(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.WriteError(w, http.StatusInternalServerError, "Streaming unsupported", "")
		return
	}

	signals, cancel := cc.Bus.Subscribe(id.Email)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-signals:
			fmt.Fprint(w, "event: cart\ndata: {}\n\n")
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		}
	}
}
