package catalog

import (
	"context"
	"sort"
	"strings"

	"go-storefront/apiclient"
	"go-storefront/models"
	"go-storefront/utils"

	"github.com/rs/zerolog"
)

// DefaultFeaturedLimit is how many featured products the home page shows
const DefaultFeaturedLimit = 6

// Sort orders applied to a listing after it is fetched
const (
	SortFeatured  = "featured"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortNewest    = "newest"
)

// Categories maps shop filter slugs to the backend's category names.
// "all" and unknown slugs add no filter.
var Categories = map[string]string{
	"shirt":       "Full Shirt",
	"trouser":     "Trouser",
	"jacket":      "Jacket",
	"sweater":     "Sweater",
	"blazer":      "Blazer",
	"coat":        "Coat",
	"accessories": "Accessories",
}

// API is the product surface of the commerce API
type API interface {
	ListProducts(ctx context.Context, q apiclient.ProductQuery) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (models.Product, error)
}

// Query is a shop listing request
type Query struct {
	Category string
	Search   string
	Featured bool
	Limit    int
	Sort     string
}

func (q Query) backend() apiclient.ProductQuery {
	return apiclient.ProductQuery{
		Category: Categories[strings.ToLower(strings.TrimSpace(q.Category))],
		Search:   strings.TrimSpace(q.Search),
		Featured: q.Featured,
		Limit:    q.Limit,
	}
}

type Catalog struct {
	api API
	log zerolog.Logger
}

func New(api API, log zerolog.Logger) *Catalog {
	return &Catalog{api: api, log: log.With().Str("component", "catalog").Logger()}
}

// List fetches products and orders them locally
func (c *Catalog) List(ctx context.Context, q Query) ([]models.Product, error) {
	products, err := c.api.ListProducts(ctx, q.backend())
	if err != nil {
		c.log.Warn().Err(err).Str("category", q.Category).Msg("list products failed")
		return []models.Product{}, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return SortProducts(products, q.Sort), nil
}

// Featured fetches up to limit featured products
func (c *Catalog) Featured(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	return c.List(ctx, Query{Featured: true, Limit: limit})
}

// Get fetches one product for its detail page
func (c *Catalog) Get(ctx context.Context, id string) (models.ProductDetail, error) {
	id = strings.TrimSpace(id)
	if !utils.IsObjectID(id) {
		return models.ProductDetail{}, apiclient.ErrInvalidProductID
	}

	p, err := c.api.GetProduct(ctx, id)
	if err != nil {
		return models.ProductDetail{}, err
	}
	return models.ProductDetail{
		Product:         p,
		DisplayPrice:    p.DisplayPrice(),
		DiscountPercent: p.DiscountPercent(),
		InStock:         p.InStock(),
	}, nil
}

// SortProducts returns a sorted copy. Unknown orders keep the backend's order.
func SortProducts(products []models.Product, order string) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)

	switch order {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out
}
