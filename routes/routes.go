package routes

import (
	"net/http"

	"go-storefront/controllers"
	"go-storefront/utils"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Guards are the route-level middlewares
type Guards struct {
	Shopper mux.MiddlewareFunc
	Admin   mux.MiddlewareFunc
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, guards Guards, userController *controllers.UserController, productController *controllers.ProductController, cartController *controllers.CartController, orderController *controllers.OrderController, adminController *controllers.AdminController) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteData(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	// Product routes
	api.HandleFunc("/products", productController.GetProducts).Methods("GET")
	api.HandleFunc("/products/featured", productController.GetFeatured).Methods("GET")
	api.HandleFunc("/products/{id}", productController.GetProductByID).Methods("GET")

	// Auth routes
	api.HandleFunc("/auth/register", userController.Register).Methods("POST")
	api.HandleFunc("/auth/login", userController.Login).Methods("POST")
	api.HandleFunc("/auth/google", userController.GoogleSignIn).Methods("POST")
	api.HandleFunc("/auth/logout", userController.Logout).Methods("POST")
	api.HandleFunc("/auth/me", userController.Me).Methods("GET")
	api.HandleFunc("/cart/count", cartController.Count).Methods("GET")

	// Shopper routes
	shopper := api.NewRoute().Subrouter()
	shopper.Use(guards.Shopper)
	shopper.HandleFunc("/cart", cartController.GetCart).Methods("GET")
	shopper.HandleFunc("/cart", cartController.AddToCart).Methods("POST")
	shopper.HandleFunc("/cart/events", cartController.Events).Methods("GET")
	shopper.HandleFunc("/cart/{itemId}", cartController.UpdateCartItem).Methods("PUT")
	shopper.HandleFunc("/cart/{itemId}", cartController.RemoveFromCart).Methods("DELETE")
	shopper.HandleFunc("/checkout", orderController.GetCheckout).Methods("GET")
	shopper.HandleFunc("/checkout", orderController.CreateOrder).Methods("POST")
	shopper.HandleFunc("/orders", orderController.GetOrders).Methods("GET")

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(guards.Admin)
	admin.HandleFunc("/login", adminController.Login).Methods("POST")
	admin.HandleFunc("/logout", adminController.Logout).Methods("POST")
	admin.HandleFunc("/dashboard", adminController.Dashboard).Methods("GET")
	admin.HandleFunc("/products", adminController.GetProducts).Methods("GET")
	admin.HandleFunc("/products", adminController.CreateProduct).Methods("POST")
	admin.HandleFunc("/products/{id}", adminController.UpdateProduct).Methods("PUT")
	admin.HandleFunc("/products/{id}", adminController.DeleteProduct).Methods("DELETE")
	admin.HandleFunc("/orders", adminController.GetOrders).Methods("GET")
	admin.HandleFunc("/orders/{id}", adminController.UpdateOrderStatus).Methods("PUT")
}
