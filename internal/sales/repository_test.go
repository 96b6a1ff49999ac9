package sales

import (
	"context"
	"testing"
	"time"

	"github.com/NEXESMISSION/KESTI-sub001/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	creds := &Credentials{
		Host:              host,
		Port:              port.Int(),
		User:              "testuser",
		Password:          "testpass",
		DBName:            "testdb",
		MigrationsDirPath: "./migrations",
	}

	repo, err := NewRepository(creds)
	require.NoError(t, err)

	err = repo.RunMigrations(creds)
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return repo, cleanup
}

func newSale(owner string, total float64) *domain.Sale {
	return &domain.Sale{
		ID:          uuid.New(),
		OwnerID:     owner,
		TotalAmount: total,
	}
}

func TestCreateSale_And_GetByIdempotencyKey(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	sale := newSale("o1", 30.00)

	err := repo.CreateSale(ctx, sale, "key-1")
	require.NoError(t, err)

	got, err := repo.GetSaleByIdempotencyKey(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, sale.ID, got.ID)
	assert.Equal(t, "o1", got.OwnerID)
	assert.InDelta(t, 30.00, got.TotalAmount, 1e-9)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGetSaleByIdempotencyKey_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetSaleByIdempotencyKey(context.Background(), "nonexistent-key")
	assert.ErrorIs(t, err, ErrSaleNotFound)
}

func TestCreateSale_DuplicateIdempotencyKey(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, repo.CreateSale(ctx, newSale("o1", 10.00), "key-dup"))

	err := repo.CreateSale(ctx, newSale("o1", 20.00), "key-dup")
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestInsertSaleItems_Bulk(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	sale := newSale("o1", 39.00)
	require.NoError(t, repo.CreateSale(ctx, sale, "key-items"))

	items := []domain.SaleItem{
		{SaleID: sale.ID, ProductID: 1, ProductName: "coffee", Quantity: 3, PriceAtSale: 10.00, CostAtSale: 5.00},
		{SaleID: sale.ID, ProductID: 2, ProductName: "beans", Quantity: 2, PriceAtSale: 4.50, CostAtSale: 2.25},
	}
	require.NoError(t, repo.InsertSaleItems(ctx, items))

	var count int
	err := repo.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sale_items WHERE sale_id = $1`, sale.ID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestInsertSaleItems_EmptySliceIsNoOp(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.InsertSaleItems(context.Background(), nil))
}

func TestListSalesByOwner(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, repo.CreateSale(ctx, newSale("o1", 10.00), "key-a"))
	require.NoError(t, repo.CreateSale(ctx, newSale("o1", 20.00), "key-b"))
	require.NoError(t, repo.CreateSale(ctx, newSale("o2", 30.00), "key-c"))

	list, err := repo.ListSalesByOwner(ctx, "o1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestOutbox_AppendPollMark(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	saleID := uuid.New().String()
	payload := []byte(`{"sale_id":"` + saleID + `","total_amount":30}`)

	require.NoError(t, repo.AppendOutboxEvent(ctx, saleID, "sale-completed", payload))

	events, err := repo.GetUnprocessedEvents(ctx, 100)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, saleID, events[0].AggregateID)
	assert.Equal(t, "sale-completed", events[0].EventType)
	assert.JSONEq(t, string(payload), string(events[0].Payload))
	assert.Nil(t, events[0].ProcessedAt)

	require.NoError(t, repo.MarkEventAsProcessed(ctx, events[0].ID))

	events, err = repo.GetUnprocessedEvents(ctx, 100)
	require.NoError(t, err)
	assert.Empty(t, events)
}
