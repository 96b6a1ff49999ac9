package domain

import "time"

// UnitKind is the pricing mode of a product: discrete items are priced
// per order, continuous units (weight/volume) are priced per order times
// the unit quantity chosen at add time.
type UnitKind string

const (
	UnitItem       UnitKind = "item"
	UnitKilogram   UnitKind = "kg"
	UnitGram       UnitKind = "g"
	UnitLiter      UnitKind = "l"
	UnitMilliliter UnitKind = "ml"
)

// Continuous reports whether the unit carries a per-order quantity.
func (u UnitKind) Continuous() bool {
	return u != UnitItem
}

type Product struct {
	ID           int64    `json:"id"`
	OwnerID      string   `json:"owner_id"`
	Name         string   `json:"name"`
	SellingPrice float64  `json:"selling_price"`
	CostPrice    float64  `json:"cost_price"`
	Unit         UnitKind `json:"unit"`
	// StockQuantity is nil for products whose stock is not tracked.
	StockQuantity *int64    `json:"stock_quantity"`
	LowStockAlert *int64    `json:"low_stock_alert,omitempty"`
	CategoryID    *int64    `json:"category_id,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// StockTracked reports whether stock deductions apply to this product.
func (p *Product) StockTracked() bool {
	return p.StockQuantity != nil
}
