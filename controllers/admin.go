package controllers

import (
	"net/http"

	"go-storefront/admin"
	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/session"
	"go-storefront/utils"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// AdminController handles the back office
type AdminController struct {
	Admin *admin.Service
	log   zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(svc *admin.Service, log zerolog.Logger) *AdminController {
	return &AdminController{Admin: svc, log: log}
}

// audit logs a back-office change with the acting admin as the token claims it
func (ac *AdminController) audit(r *http.Request, action, target string) {
	actor := "unknown"
	if hint, ok := middleware.AdminHintFrom(r.Context()); ok && hint.Email() != "" {
		actor = hint.Email()
	}
	ac.log.Info().Str("actor", actor).Str("action", action).Str("target", target).Msg("admin change")
}

// Login signs an admin in
func (ac *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	var creds models.AdminCredentials
	if err := decodeJSON(r, &creds); err != nil {
		respondError(w, ac.log, err)
		return
	}

	user, err := ac.Admin.Login(r.Context(), sess, creds)
	if err != nil {
		respondError(w, ac.log, err)
		return
	}
	utils.WriteData(w, http.StatusOK, map[string]any{"admin": user, "redirect": "/admin/manage-products"})
}

// Logout signs the admin out
func (ac *AdminController) Logout(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	if err := ac.Admin.Logout(r.Context(), sess); err != nil {
		respondError(w, ac.log, err)
		return
	}
	utils.WriteData(w, http.StatusOK, map[string]string{"redirect": "/admin/login"})
}

// Dashboard returns stats and recent orders
func (ac *AdminController) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	d, err := ac.Admin.Dashboard(r.Context(), sess)
	if err != nil {
		respondError(w, ac.log, err)
		return
	}
	utils.WriteData(w, http.StatusOK, d)
}

// GetProducts lists products, filtered by search and category
func (ac *AdminController) GetProducts(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	q := r.URL.Query()
	products, err := ac.Admin.Products(r.Context(), sess, q.Get("search"), q.Get("category"))
	if err != nil {
		respondError(w, ac.log, err)
		return
	}
	utils.WriteData(w, http.StatusOK, products)
}

// CreateProduct handles adding a new product
func (ac *AdminController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	var in models.ProductInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, ac.log, err)
		return
	}

	p, err := ac.Admin.CreateProduct(r.Context(), sess, in)
	if err != nil {
		respondError(w, ac.log, err)
		return
	}
	ac.audit(r, "product.create", p.ID)
	utils.WriteData(w, http.StatusCreated, p)
}

// UpdateProduct handles editing a product
func (ac *AdminController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	var in models.ProductInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, ac.log, err)
		return
	}

	p, err := ac.Admin.UpdateProduct(r.Context(), sess, mux.Vars(r)["id"], in)
	if err != nil {
		respondError(w, ac.log, err)
		return
	}
	ac.audit(r, "product.update", p.ID)
	utils.WriteData(w, http.StatusOK, p)
}

// DeleteProduct handles deleting a product
func (ac *AdminController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	if err := ac.Admin.DeleteProduct(r.Context(), sess, mux.Vars(r)["id"]); err != nil {
		respondError(w, ac.log, err)
		return
	}
	ac.audit(r, "product.delete", mux.Vars(r)["id"])
	utils.WriteJSON(w, http.StatusOK, models.Envelope{Status: models.StatusSuccess, Message: "Product deleted"})
}

// GetOrders lists every order
func (ac *AdminController) GetOrders(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	orders, err := ac.Admin.Orders(r.Context(), sess)
	if err != nil {
		respondError(w, ac.log, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	utils.WriteData(w, http.StatusOK, orders)
}

// UpdateOrderStatus moves an order through its lifecycle
func (ac *AdminController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	var body models.UpdateOrderStatusRequest
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, ac.log, err)
		return
	}

	order, err := ac.Admin.UpdateOrderStatus(r.Context(), sess, mux.Vars(r)["id"], body.OrderStatus)
	if err != nil {
		respondError(w, ac.log, err)
		return
	}
	ac.audit(r, "order.status", mux.Vars(r)["id"])
	utils.WriteData(w, http.StatusOK, order)
}
