package orders

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/northlight-prints/storefront-backend/pkg/db/models"
	"github.com/northlight-prints/storefront-backend/pkg/enums"
	"github.com/northlight-prints/storefront-backend/pkg/types"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	ordersTable := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  customer_email TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  shipping_address TEXT,
  billing_address TEXT,
  subtotal_cents INTEGER NOT NULL,
  shipping_cents INTEGER NOT NULL,
  tax_cents INTEGER NOT NULL,
  total_cents INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  stripe_payment_intent_id TEXT,
  payment TEXT,
  marketing TEXT,
  metadata TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	lineItems := `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  size TEXT NOT NULL,
  qty INTEGER NOT NULL,
  unit_price_cents INTEGER NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(ordersTable).Error)
	require.NoError(t, db.Exec(lineItems).Error)

	t.Cleanup(func() {
		db.Exec("DELETE FROM order_line_items")
		db.Exec("DELETE FROM orders")
	})

	return db
}

func sampleOrder(id string) *models.Order {
	return &models.Order{
		ID:            id,
		CustomerEmail: "avery@example.com",
		CustomerName:  "Avery Stone",
		ShippingAddress: types.Address{
			Name:     "Avery Stone",
			Address1: "12 Gallery Row",
			City:     "Portland",
			Region:   "OR",
			Postal:   "97201",
			Country:  "US",
		},
		SubtotalCents: 3000,
		ShippingCents: 995,
		TaxCents:      180,
		TotalCents:    4175,
		Status:        enums.OrderStatusPending,
		Items: []models.OrderLineItem{
			{
				ID:             uuid.New(),
				OrderID:        id,
				ProductID:      "print-1",
				Name:           "Dune Light",
				Size:           enums.PrintSize8x10,
				Qty:            2,
				UnitPriceCents: 1500,
			},
		},
	}
}

func TestRepositoryCreateAndFindByID(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleOrder("ord_repo1")))

	found, err := repo.FindByID(ctx, "ord_repo1")
	require.NoError(t, err)
	assert.Equal(t, "ord_repo1", found.ID)
	assert.Equal(t, enums.OrderStatusPending, found.Status)
	assert.Equal(t, "Portland", found.ShippingAddress.City)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Dune Light", found.Items[0].Name)

	_, err = repo.FindByID(ctx, "ord_missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryFindByPaymentIntent(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := sampleOrder("ord_repo2")
	intent := "pi_123"
	order.StripePaymentIntentID = &intent
	require.NoError(t, repo.Create(ctx, order))

	found, err := repo.FindByPaymentIntent(ctx, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, "ord_repo2", found.ID)

	_, err = repo.FindByPaymentIntent(ctx, "pi_other")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryUpdate(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleOrder("ord_repo3")))
	require.NoError(t, repo.Update(ctx, "ord_repo3", map[string]any{
		"status":                   enums.OrderStatusPaid,
		"stripe_payment_intent_id": "pi_up",
	}))

	found, err := repo.FindByID(ctx, "ord_repo3")
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPaid, found.Status)
	require.NotNil(t, found.StripePaymentIntentID)
	assert.Equal(t, "pi_up", *found.StripePaymentIntentID)
}

func TestRepositoryListRecent(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, sampleOrder(fmt.Sprintf("ord_list%d", i))))
	}

	out, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestRepositoryListByEmail(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	mine := sampleOrder("ord_mail1")
	mine.CustomerEmail = "avery@example.com"
	require.NoError(t, repo.Create(ctx, mine))

	other := sampleOrder("ord_mail2")
	other.CustomerEmail = "river@example.com"
	require.NoError(t, repo.Create(ctx, other))

	out, err := repo.ListByEmail(ctx, "avery@example.com", 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "ord_mail1", out[0].ID)

	out, err = repo.ListByEmail(ctx, "nobody@example.com", 10)
	require.NoError(t, err)
	assert.Empty(t, out)
}
