package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/northlight-prints/storefront-backend/pkg/db/models"
)

// Repository defines persistence operations for the orders tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	FindByPaymentIntent(ctx context.Context, intentID string) (*models.Order, error)
	Update(ctx context.Context, id string, updates map[string]any) error
	ListRecent(ctx context.Context, limit int) ([]models.Order, error)
	ListByEmail(ctx context.Context, email string, limit int) ([]models.Order, error)
}
