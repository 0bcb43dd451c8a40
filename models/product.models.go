package models

import "time"

// Color is a named product color swatch
type Color struct {
	Name    string `json:"name"`
	HexCode string `json:"hexCode"`
}

// Product represents a catalog product as served by the commerce API.
// Prices are whole currency units; the currency has no minor unit.
type Product struct {
	ID               string    `json:"_id"`
	Title            string    `json:"title"`
	ShortDescription string    `json:"shortDescription,omitempty"`
	FullDescription  string    `json:"fullDescription,omitempty"`
	Category         string    `json:"category,omitempty"`
	Price            int64     `json:"price"`
	DiscountPrice    int64     `json:"discountPrice,omitempty"`
	Sizes            []string  `json:"sizes,omitempty"`
	Colors           []Color   `json:"colors,omitempty"`
	Images           []string  `json:"images,omitempty"`
	Stock            int       `json:"stock"`
	Featured         bool      `json:"featured,omitempty"`
	CreatedAt        time.Time `json:"createdAt,omitempty"`
}

// DisplayPrice returns the discount price when one is set
func (p Product) DisplayPrice() int64 {
	if p.DiscountPrice > 0 {
		return p.DiscountPrice
	}
	return p.Price
}

// DiscountPercent returns the rounded saving against the list price, or 0
func (p Product) DiscountPercent() int {
	if p.DiscountPrice <= 0 || p.Price <= 0 {
		return 0
	}
	saved := float64(p.Price-p.DiscountPrice) / float64(p.Price) * 100
	return int(saved + 0.5)
}

// InStock reports whether at least one unit is available
func (p Product) InStock() bool {
	return p.Stock > 0
}

// ProductInput is the admin create/update payload
type ProductInput struct {
	Title            string   `json:"title"`
	ShortDescription string   `json:"shortDescription"`
	FullDescription  string   `json:"fullDescription"`
	Category         string   `json:"category"`
	Price            int64    `json:"price"`
	DiscountPrice    int64    `json:"discountPrice"`
	Sizes            []string `json:"sizes"`
	Colors           []Color  `json:"colors"`
	Images           []string `json:"images"`
	Stock            int      `json:"stock"`
	Featured         bool     `json:"featured"`
}

// ProductDetail is the product page view
type ProductDetail struct {
	Product         Product `json:"product"`
	DisplayPrice    int64   `json:"displayPrice"`
	DiscountPercent int     `json:"discountPercent"`
	InStock         bool    `json:"inStock"`
}
