package domain

import "time"

// CartLine is one row of a user's cart: N units of one product, with the
// product's name, price and image copied in at add time. Pricing is
// add-time pricing; a later catalog price change does not reprice the line.
type CartLine struct {
	ID              string    `bson:"_id" json:"id"`
	UserID          string    `bson:"user_id" json:"user_id"`
	ProductID       string    `bson:"product_id" json:"product_id"`
	Quantity        int       `bson:"quantity" json:"quantity"`
	ProductName     string    `bson:"product_name" json:"product_name"`
	ProductPrice    float64   `bson:"product_price" json:"product_price"`
	ProductImageURL string    `bson:"product_image_url" json:"product_image_url"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// Subtotal is the line's contribution to the cart total, from the snapshot price.
func (l CartLine) Subtotal() float64 {
	return l.ProductPrice * float64(l.Quantity)
}

// Cart is the computed view of a user's cart. ItemCount counts units, not
// distinct lines.
type Cart struct {
	UserID    string     `json:"user_id"`
	Lines     []CartLine `json:"lines"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"item_count"`
}

// NewCart builds the cart view from its lines.
func NewCart(userID string, lines []CartLine) *Cart {
	if lines == nil {
		lines = []CartLine{}
	}
	cart := &Cart{
		UserID: userID,
		Lines:  lines,
	}
	for _, line := range lines {
		cart.Total += line.Subtotal()
		cart.ItemCount += line.Quantity
	}
	return cart
}
