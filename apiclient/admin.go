package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"go-storefront/models"
)

// AdminLogin exchanges admin credentials for a bearer token carrying the isAdmin claim
func (c *Client) AdminLogin(ctx context.Context, creds models.AdminCredentials) (models.AdminLoginResult, error) {
	var res models.AdminLoginResult
	_, err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/admin/login",
		endpoint: "/admin/login",
		body:     creds,
	}, &res)
	return res, err
}

// AdminStats retrieves back-office counters
func (c *Client) AdminStats(ctx context.Context, token string) (models.AdminStats, error) {
	var stats models.AdminStats
	_, err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/admin/stats",
		endpoint: "/admin/stats",
		token:    token,
	}, &stats)
	return stats, err
}

// AdminOrders retrieves every order
func (c *Client) AdminOrders(ctx context.Context, token string) ([]models.Order, error) {
	orders := []models.Order{}
	_, err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/admin/orders",
		endpoint: "/admin/orders",
		token:    token,
	}, &orders)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus requests a status change; the backend decides whether it is allowed
func (c *Client) UpdateOrderStatus(ctx context.Context, token, orderID string, status models.OrderStatus) (models.Order, error) {
	var order models.Order
	_, err := c.do(ctx, call{
		method:   http.MethodPut,
		path:     "/admin/orders/" + url.PathEscape(orderID),
		endpoint: "/admin/orders/:id",
		token:    token,
		body:     models.UpdateOrderStatusRequest{OrderStatus: status},
	}, &order)
	return order, err
}

// CreateProduct adds a product to the catalog
func (c *Client) CreateProduct(ctx context.Context, token string, in models.ProductInput) (models.Product, error) {
	var product models.Product
	_, err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/admin/products",
		endpoint: "/admin/products",
		token:    token,
		body:     in,
	}, &product)
	return product, err
}

// UpdateProduct replaces a product's editable fields
func (c *Client) UpdateProduct(ctx context.Context, token, id string, in models.ProductInput) (models.Product, error) {
	var product models.Product
	_, err := c.do(ctx, call{
		method:   http.MethodPut,
		path:     "/admin/products/" + url.PathEscape(id),
		endpoint: "/admin/products/:id",
		token:    token,
		body:     in,
	}, &product)
	return product, err
}

// DeleteProduct removes a product from the catalog
func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, call{
		method:   http.MethodDelete,
		path:     "/admin/products/" + url.PathEscape(id),
		endpoint: "/admin/products/:id",
		token:    token,
	}, nil)
	return err
}
