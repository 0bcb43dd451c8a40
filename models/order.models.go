package models

import "time"

// OrderStatus is the closed set of states an order moves through.
// Only admin action changes it; the storefront never computes transitions.
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// OrderStatuses lists every valid status in lifecycle order
var OrderStatuses = []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

// Valid reports whether s is in the closed status set
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ShippingAddress represents the delivery details captured at checkout
type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	District   string `json:"district"`
}

// OrderItem is an immutable snapshot of one cart line
type OrderItem struct {
	Product  string `json:"product"`
	Title    string `json:"title"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Size     string `json:"size"`
	Color    string `json:"color"`
	Image    string `json:"image"`
}

// OrderRequest is the body of POST /orders
type OrderRequest struct {
	UserEmail       string          `json:"userEmail"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	TotalAmount     int64           `json:"totalAmount"`
	Notes           string          `json:"notes,omitempty"`
}

// Order represents a placed order
type Order struct {
	ID              string          `json:"_id"`
	OrderNumber     string          `json:"orderNumber"`
	UserEmail       string          `json:"userEmail,omitempty"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     int64           `json:"totalAmount"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	OrderStatus     OrderStatus     `json:"orderStatus"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// UpdateOrderStatusRequest is the body of PUT /admin/orders/:id
type UpdateOrderStatusRequest struct {
	OrderStatus OrderStatus `json:"orderStatus"`
}
