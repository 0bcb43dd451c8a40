package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"go-storefront/models"
	"go-storefront/utils"
)

// ErrInvalidProductID is returned before any request when an id is not 24 hex characters
var ErrInvalidProductID = errors.New("invalid product ID format")

// ProductQuery filters GET /products. Zero values add no filter.
type ProductQuery struct {
	Category string
	Search   string
	Featured bool
	Limit    int
}

func (q ProductQuery) encode() string {
	v := url.Values{}
	if q.Category != "" && q.Category != "all" {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Featured {
		v.Set("featured", "true")
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// ListProducts retrieves products matching q
func (c *Client) ListProducts(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	products := []models.Product{}
	_, err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/products" + q.encode(),
		endpoint: "/products",
	}, &products)
	if err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct retrieves a single product by id
func (c *Client) GetProduct(ctx context.Context, id string) (models.Product, error) {
	if !utils.IsObjectID(id) {
		return models.Product{}, ErrInvalidProductID
	}

	var product models.Product
	_, err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/products/" + id,
		endpoint: "/products/:id",
	}, &product)
	return product, err
}
