package domain

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Snapshot captures the fields copied onto a cart line when a product is
// added. The line keeps these values even if the catalog changes later.
func (p Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		Name:     p.Name,
		Price:    p.Price,
		ImageURL: p.ImageURL,
	}
}

type ProductSnapshot struct {
	Name     string
	Price    float64
	ImageURL string
}
