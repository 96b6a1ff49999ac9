package sales

import (
	"context"
	"errors"
	"time"

	"github.com/NEXESMISSION/KESTI-sub001/internal/domain"
)

var (
	ErrSaleNotFound = errors.New("sale not found")
	ErrDuplicateKey = errors.New("sale for this idempotency key already exists")
)

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

// OutboxEvent is one pending publication row. Payload is already JSON,
// written in the same database as the sale it describes.
type OutboxEvent struct {
	ID          int64
	AggregateID string
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// SaleRepository is the durable side of checkout: the sale header, its
// item rows and the outbox of completed-sale events.
type SaleRepository interface {
	CreateSale(ctx context.Context, sale *domain.Sale, idempotencyKey string) error
	InsertSaleItems(ctx context.Context, items []domain.SaleItem) error
	GetSaleByIdempotencyKey(ctx context.Context, key string) (*domain.Sale, error)
	ListSalesByOwner(ctx context.Context, ownerID string) ([]*domain.Sale, error)
	AppendOutboxEvent(ctx context.Context, aggregateID, eventType string, payload []byte) error
	GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkEventAsProcessed(ctx context.Context, id int64) error
	RunMigrations(*Credentials) error
	Close() error
}
