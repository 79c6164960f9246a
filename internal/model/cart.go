package model

// CartLineItem is one (product, size) entry in a cart.
// Identity key is (ProductID, Size); at most one line item exists per key,
// and repeat adds of the same key merge by summing quantities.
type CartLineItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Size      string  `json:"size,omitempty"`
	Quantity  int     `json:"quantity"`
	ImageRef  string  `json:"imageRef,omitempty"`
}

// SameIdentity reports whether two line items share the (productID, size) key.
func (it *CartLineItem) SameIdentity(productID int64, size string) bool {
	return it.ProductID == productID && it.Size == size
}

// LineTotal returns unit price times quantity for this line item.
func (it *CartLineItem) LineTotal() float64 {
	return it.UnitPrice * float64(it.Quantity)
}
