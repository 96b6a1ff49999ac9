package domain

import (
	"time"

	"github.com/google/uuid"
)

type Sale struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     string    `json:"owner_id"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// SaleItem records one cart line at checkout time. Name and prices are
// snapshots so later catalog edits do not rewrite history.
type SaleItem struct {
	SaleID      uuid.UUID `json:"sale_id"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	PriceAtSale float64   `json:"price_at_sale"`
	CostAtSale  float64   `json:"cost_at_sale"`
}
