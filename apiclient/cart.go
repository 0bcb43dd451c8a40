package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"go-storefront/models"
)

func cartPath(email string) string {
	return "/auth/cart/" + url.PathEscape(email)
}

func cartItemPath(email, itemID string) string {
	return cartPath(email) + "/" + url.PathEscape(itemID)
}

// GetCart retrieves the cart lines of email
func (c *Client) GetCart(ctx context.Context, email string) ([]models.CartItem, error) {
	return c.cartCall(ctx, call{
		method:   http.MethodGet,
		path:     cartPath(email),
		endpoint: "/auth/cart/:email",
	})
}

// AddCartItem adds a product selection and returns the resulting cart
func (c *Client) AddCartItem(ctx context.Context, req models.AddToCartRequest) ([]models.CartItem, error) {
	return c.cartCall(ctx, call{
		method:   http.MethodPost,
		path:     "/auth/cart",
		endpoint: "/auth/cart",
		body:     req,
	})
}

// UpdateCartItem sets a line's quantity and returns the resulting cart
func (c *Client) UpdateCartItem(ctx context.Context, email, itemID string, quantity int) ([]models.CartItem, error) {
	return c.cartCall(ctx, call{
		method:   http.MethodPut,
		path:     cartItemPath(email, itemID),
		endpoint: "/auth/cart/:email/:itemId",
		body:     models.UpdateCartRequest{Quantity: quantity},
	})
}

// RemoveCartItem deletes a line and returns the resulting cart
func (c *Client) RemoveCartItem(ctx context.Context, email, itemID string) ([]models.CartItem, error) {
	return c.cartCall(ctx, call{
		method:   http.MethodDelete,
		path:     cartItemPath(email, itemID),
		endpoint: "/auth/cart/:email/:itemId",
	})
}

func (c *Client) cartCall(ctx context.Context, cl call) ([]models.CartItem, error) {
	items := []models.CartItem{}
	if _, err := c.do(ctx, cl, &items); err != nil {
		return nil, err
	}
	return items, nil
}
