package cart

import "go-storefront/models"

// Snapshot is the cart exactly as the backend last reported it
type Snapshot struct {
	Items    []models.CartItem
	Count    int
	Subtotal int64
}

func NewSnapshot(items []models.CartItem) Snapshot {
	if items == nil {
		items = []models.CartItem{}
	}
	return Snapshot{
		Items:    items,
		Count:    len(items),
		Subtotal: Subtotal(items),
	}
}

// Subtotal sums price times quantity over every line
func Subtotal(items []models.CartItem) int64 {
	var total int64
	for _, it := range items {
		total += it.LineTotal()
	}
	return total
}

// Empty reports whether the cart has no lines
func (s Snapshot) Empty() bool {
	return len(s.Items) == 0
}

// View renders the cart page. Shipping is free.
func (s Snapshot) View() models.CartView {
	items := s.Items
	if items == nil {
		items = []models.CartItem{}
	}
	return models.CartView{
		Items:    items,
		Count:    s.Count,
		Subtotal: s.Subtotal,
		Shipping: 0,
		Total:    s.Subtotal,
	}
}
