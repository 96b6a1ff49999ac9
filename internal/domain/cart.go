package domain

import "time"

// CartLine is one product's aggregated entry in a session cart. Product is
// a snapshot taken when the line was first added, it is not re-fetched on
// later mutations so checkout records the price the customer saw.
type CartLine struct {
	Product Product `json:"product"`
	// Quantity counts orders of the product, never weighted by UnitQuantity.
	Quantity int `json:"quantity"`
	// UnitQuantity is the amount per order for continuous units (0.5 kg per
	// bag). Defaults to 1 and is ignored for discrete items.
	UnitQuantity float64   `json:"unit_quantity"`
	LineTotal    float64   `json:"line_total"`
	AddedAt      time.Time `json:"added_at"`
}
