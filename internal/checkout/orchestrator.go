package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/NEXESMISSION/KESTI-sub001/internal/domain"
	"github.com/NEXESMISSION/KESTI-sub001/internal/sales"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
)

// SaleRecorder is the slice of the sales repository checkout needs.
type SaleRecorder interface {
	CreateSale(ctx context.Context, sale *domain.Sale, idempotencyKey string) error
	InsertSaleItems(ctx context.Context, items []domain.SaleItem) error
	GetSaleByIdempotencyKey(ctx context.Context, key string) (*domain.Sale, error)
	AppendOutboxEvent(ctx context.Context, aggregateID, eventType string, payload []byte) error
}

// StockUpdater applies a stock level for one product. The catalog service
// implementation also invalidates the owner's cached catalog, which is
// how displayed stock reflects the deduction.
type StockUpdater interface {
	UpdateStock(ctx context.Context, ownerID string, productID int64, newStock int64) error
}

// CartSource is the slice of the session cart store checkout needs.
type CartSource interface {
	Snapshot(sessionID string) ([]domain.CartLine, float64)
	Clear(sessionID string)
}

// Orchestrator turns a populated session cart into a durable sale, its
// item rows and the matching stock deductions.
//
// The sequence is deliberately not atomic across storage calls: a sale
// created without items, or without all stock deducted, stays as is. The
// idempotency key is the guard the caller gets instead — retrying with
// the same key replays the recorded sale rather than creating another.
type Orchestrator struct {
	sales   SaleRecorder
	stock   StockUpdater
	carts   CartSource
	breaker *gobreaker.CircuitBreaker[any]
}

func NewOrchestrator(saleRecorder SaleRecorder, stock StockUpdater, carts CartSource) *Orchestrator {
	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name: "stock-updates",
	})
	return &Orchestrator{
		sales:   saleRecorder,
		stock:   stock,
		carts:   carts,
		breaker: breaker,
	}
}

// Checkout records the session's cart as a sale. An empty cart returns
// (nil, nil) without touching any backend. On success the session cart is
// cleared and the created sale returned.
func (o *Orchestrator) Checkout(ctx context.Context, tenant domain.Tenant, sessionID, idempotencyKey string) (*domain.Sale, error) {
	lines, total := o.carts.Snapshot(sessionID)
	if len(lines) == 0 {
		return nil, nil
	}

	existing, err := o.sales.GetSaleByIdempotencyKey(ctx, idempotencyKey)
	if err != nil && !errors.Is(err, sales.ErrSaleNotFound) {
		return nil, fmt.Errorf("failed to check idempotency: %w", err)
	}
	if existing != nil {
		log.Printf("duplicate checkout detected idempotency_key = %v with sale_id = %v", idempotencyKey, existing.ID)
		return existing, nil
	}

	sale := &domain.Sale{
		ID:          uuid.New(),
		OwnerID:     tenant.OwnerID,
		TotalAmount: total,
		CreatedAt:   time.Now(),
	}
	if err := o.sales.CreateSale(ctx, sale, idempotencyKey); err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}

	items := make([]domain.SaleItem, len(lines))
	for i, line := range lines {
		items[i] = domain.SaleItem{
			SaleID:      sale.ID,
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Quantity:    line.Quantity,
			PriceAtSale: line.Product.SellingPrice,
			CostAtSale:  line.Product.CostPrice,
		}
	}
	if err := o.sales.InsertSaleItems(ctx, items); err != nil {
		// The sale header is already durable with no items attached.
		// Accepted: no compensating delete, the caller sees the failure
		// and the cart stays intact for a retry under a fresh key.
		return nil, fmt.Errorf("insert sale items: %w", err)
	}

	o.appendSaleCompletedEvent(ctx, sale, items)
	o.deductStock(ctx, tenant, lines)
	o.carts.Clear(sessionID)

	return sale, nil
}

// deductStock subtracts the order quantity from every stock-tracked line,
// floored at zero. The per-order unit quantity is not factored in: stock
// for weight/volume products is counted in orders, not in kg or liters.
// Failures are logged and skipped, the sale is already complete here.
func (o *Orchestrator) deductStock(ctx context.Context, tenant domain.Tenant, lines []domain.CartLine) {
	for _, line := range lines {
		if !line.Product.StockTracked() {
			continue
		}

		newStock := *line.Product.StockQuantity - int64(line.Quantity)
		if newStock < 0 {
			newStock = 0
		}

		productID := line.Product.ID
		_, err := o.breaker.Execute(func() (any, error) {
			return nil, o.stock.UpdateStock(ctx, tenant.OwnerID, productID, newStock)
		})
		if err != nil {
			log.Printf("stock update failed for product %d: %v", productID, err)
		}
	}
}

type saleCompletedItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	PriceAtSale float64 `json:"price_at_sale"`
	CostAtSale  float64 `json:"cost_at_sale"`
}

// appendSaleCompletedEvent queues a sale-completed event for the outbox
// publisher. Best effort: a write failure costs the event, not the sale.
func (o *Orchestrator) appendSaleCompletedEvent(ctx context.Context, sale *domain.Sale, items []domain.SaleItem) {
	eventItems := make([]saleCompletedItem, len(items))
	for i, item := range items {
		eventItems[i] = saleCompletedItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			PriceAtSale: item.PriceAtSale,
			CostAtSale:  item.CostAtSale,
		}
	}

	payload := map[string]interface{}{
		"sale_id":      sale.ID,
		"owner_id":     sale.OwnerID,
		"items":        eventItems,
		"total_amount": sale.TotalAmount,
		"completed_at": time.Now(),
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		log.Printf("failed to marshal sale payload: %v", err)
		return
	}

	if err := o.sales.AppendOutboxEvent(ctx, sale.ID.String(), "sale-completed", payloadJSON); err != nil {
		log.Printf("failed to append outbox event for sale %v: %v", sale.ID, err)
	}
}
