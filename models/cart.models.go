package models

// CartProduct is the denormalized product snapshot embedded in a cart line
type CartProduct struct {
	ID     string   `json:"_id"`
	Title  string   `json:"title"`
	Price  int64    `json:"price"`
	Images []string `json:"images,omitempty"`
}

// FirstImage returns the primary image URL or ""
func (p CartProduct) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// CartItem represents one size/color/quantity selection of a product
type CartItem struct {
	ID       string      `json:"_id"`
	Product  CartProduct `json:"product"`
	Quantity int         `json:"quantity"`
	Size     string      `json:"size"`
	Color    string      `json:"color"`
}

// LineTotal is price times quantity
func (i CartItem) LineTotal() int64 {
	return i.Product.Price * int64(i.Quantity)
}

// AddToCartRequest is the body of POST /auth/cart
type AddToCartRequest struct {
	Email     string `json:"email"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// UpdateCartRequest is the body of PUT /auth/cart/:email/:itemId
type UpdateCartRequest struct {
	Quantity int `json:"quantity"`
}

// CartView is the cart page view. Items always holds the backend's snapshot.
type CartView struct {
	Items    []CartItem `json:"items"`
	Count    int        `json:"count"`
	Subtotal int64      `json:"subtotal"`
	Shipping int64      `json:"shipping"`
	Total    int64      `json:"total"`
}
