package usecase

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/maxbelov/shopgate/internal/domain/errors"
	"github.com/maxbelov/shopgate/internal/domain/model"
	"github.com/maxbelov/shopgate/internal/domain/repository"
)

// OrderAdminUseCase serves the admin order surface and the sweep query.
type OrderAdminUseCase struct {
	orders repository.OrderRepository
}

// NewOrderAdminUseCase constructs OrderAdminUseCase.
func NewOrderAdminUseCase(orders repository.OrderRepository) *OrderAdminUseCase {
	return &OrderAdminUseCase{orders: orders}
}

// ListRecent returns the most recently created orders.
func (u *OrderAdminUseCase) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	return u.orders.ListRecent(ctx, limit)
}

// Get returns a single order.
func (u *OrderAdminUseCase) Get(ctx context.Context, id string) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// AdvanceFulfillment moves an order along the fulfillment workflow. The
// payment-driven statuses cannot be reached this way.
func (u *OrderAdminUseCase) AdvanceFulfillment(ctx context.Context, id string, target model.OrderStatus) error {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !order.Status.CanFulfillTransition(target) {
		return fmt.Errorf("%w: %s -> %s", domainErrors.ErrInvalidTransition, order.Status, target)
	}
	return u.orders.UpdateFulfillment(ctx, id, order.Status, target)
}

// PendingForSweep returns orders whose payment outcome is overdue.
func (u *OrderAdminUseCase) PendingForSweep(ctx context.Context, age time.Duration, limit int) ([]model.Order, error) {
	return u.orders.ListPendingOlderThan(ctx, age, limit)
}
