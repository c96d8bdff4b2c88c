// Package orders owns the persisted order lifecycle. Records are written
// once at checkout and only their status moves afterwards, always forward:
// a replayed transition is a no-op, a backward one is a conflict.
package orders

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/northlight-prints/storefront-backend/pkg/db/models"
	"github.com/northlight-prints/storefront-backend/pkg/enums"
	"github.com/northlight-prints/storefront-backend/pkg/errors"
	"github.com/northlight-prints/storefront-backend/pkg/logger"
	"github.com/northlight-prints/storefront-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams wires the order service dependencies.
type ServiceParams struct {
	Repo Repository
	Tx   txRunner
	Logg *logger.Logger
}

// Service enforces the one-directional status machine on top of the
// repository. Status checks and writes share a transaction.
type Service struct {
	repo Repository
	tx   txRunner
	logg *logger.Logger
}

// NewService validates and wires the order service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("order service requires a repository")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("order service requires a transaction runner")
	}
	if params.Logg == nil {
		return nil, fmt.Errorf("order service requires a logger")
	}
	return &Service{repo: params.Repo, tx: params.Tx, logg: params.Logg}, nil
}

// Create persists a new order record with its line items.
func (s *Service) Create(ctx context.Context, order *models.Order) error {
	if order == nil {
		return errors.New(errors.CodeValidation, "order is required")
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "create order")
	}
	return nil
}

// Get loads an order with its line items.
func (s *Service) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("order %s not found", id))
	}
	return order, nil
}

// Recent lists the newest orders for the operator view.
func (s *Service) Recent(ctx context.Context, limit int) ([]models.Order, error) {
	out, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "list orders")
	}
	return out, nil
}

// ByEmail lists a customer's orders, newest first.
func (s *Service) ByEmail(ctx context.Context, email string, limit int) ([]models.Order, error) {
	out, err := s.repo.ListByEmail(ctx, email, limit)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "list orders by email")
	}
	return out, nil
}

// UpdateStatusByID moves the order to the target status and merges meta into
// its metadata document. Applying the current status again is a no-op.
func (s *Service) UpdateStatusByID(ctx context.Context, id string, status enums.OrderStatus, meta map[string]any) (*models.Order, error) {
	return s.transition(ctx, status, meta, nil, func(repo Repository) (*models.Order, error) {
		return repo.FindByID(ctx, id)
	}, fmt.Sprintf("order %s not found", id))
}

// CompleteFromSession marks the order completed and records the payment
// intent reported by the checkout session.
func (s *Service) CompleteFromSession(ctx context.Context, orderID, paymentIntentID string) (*models.Order, error) {
	var intent *string
	if paymentIntentID != "" {
		intent = &paymentIntentID
	}
	return s.transition(ctx, enums.OrderStatusCompleted, nil, intent, func(repo Repository) (*models.Order, error) {
		return repo.FindByID(ctx, orderID)
	}, fmt.Sprintf("order %s not found", orderID))
}

// UpdateStatusByPaymentIntent resolves the order through its recorded
// payment intent and applies the transition.
func (s *Service) UpdateStatusByPaymentIntent(ctx context.Context, intentID string, status enums.OrderStatus, meta map[string]any) (*models.Order, error) {
	return s.transition(ctx, status, meta, nil, func(repo Repository) (*models.Order, error) {
		return repo.FindByPaymentIntent(ctx, intentID)
	}, fmt.Sprintf("no order for payment intent %s", intentID))
}

func (s *Service) transition(
	ctx context.Context,
	status enums.OrderStatus,
	meta map[string]any,
	paymentIntentID *string,
	find func(Repository) (*models.Order, error),
	missingMsg string,
) (*models.Order, error) {
	var out *models.Order

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := find(repo)
		if err != nil {
			return notFoundOr(err, missingMsg)
		}

		// Redelivered events land here: the move already happened.
		if order.Status == status {
			out = order
			return nil
		}
		if !order.Status.CanTransition(status) {
			return errors.New(errors.CodeStateConflict,
				fmt.Sprintf("order %s cannot move from %s to %s", order.ID, order.Status, status))
		}

		updates := map[string]any{"status": status}
		if paymentIntentID != nil {
			updates["stripe_payment_intent_id"] = *paymentIntentID
		}
		if len(meta) > 0 {
			updates["metadata"] = mergedMetadata(order.Metadata, meta)
		}

		if err := repo.Update(ctx, order.ID, updates); err != nil {
			return errors.Wrap(errors.CodeInternal, err, "update order status")
		}

		order.Status = status
		if paymentIntentID != nil {
			order.StripePaymentIntentID = paymentIntentID
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithOrderID(ctx, out.ID),
		fmt.Sprintf("order %s is %s", out.ID, out.Status))
	return out, nil
}

func mergedMetadata(existing *types.JSONMap, meta map[string]any) types.JSONMap {
	merged := types.JSONMap{}
	if existing != nil {
		for k, v := range *existing {
			merged[k] = v
		}
	}
	for k, v := range meta {
		merged[k] = v
	}
	return merged
}

func notFoundOr(err error, msg string) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.New(errors.CodeNotFound, msg)
	}
	if appErr := errors.As(err); appErr != nil {
		return appErr
	}
	return errors.Wrap(errors.CodeInternal, err, "load order")
}
