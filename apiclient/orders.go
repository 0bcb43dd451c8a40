package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"go-storefront/models"
)

// CreateOrder submits an order and returns the backend's record of it
func (c *Client) CreateOrder(ctx context.Context, req models.OrderRequest) (models.Order, error) {
	var order models.Order
	_, err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/orders",
		endpoint: "/orders",
		body:     req,
	}, &order)
	return order, err
}

// UserOrders retrieves the order history of email
func (c *Client) UserOrders(ctx context.Context, email string) ([]models.Order, error) {
	orders := []models.Order{}
	_, err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/orders/user/" + url.PathEscape(email),
		endpoint: "/orders/user/:email",
	}, &orders)
	if err != nil {
		return nil, err
	}
	return orders, nil
}
