package models

// CartItem is a checkout-time line item. It only exists in memory while an
// order is being placed; the persisted form is OrderItem.
type CartItem struct {
	Food     FoodItem `json:"food"`
	Quantity int      `json:"quantity"`
	Notes    string   `json:"notes,omitempty"`
}
