package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maxbelov/shopgate/internal/domain/model"
	"github.com/maxbelov/shopgate/internal/domain/repository"
	"github.com/maxbelov/shopgate/internal/metrics"
)

// ReconcileUseCase applies payment events to order records.
type ReconcileUseCase struct {
	orders  repository.OrderRepository
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewReconcileUseCase constructs ReconcileUseCase.
func NewReconcileUseCase(orders repository.OrderRepository, m *metrics.Metrics, logger *slog.Logger) *ReconcileUseCase {
	return &ReconcileUseCase{orders: orders, metrics: m, logger: logger}
}

// Apply locates the orders correlated with the event and moves them into the
// status the event drives, in one atomic batch. A missing order is not an
// error: the delivery is acknowledged so the processor stops retrying a race
// this system cannot resolve. Returns the number of orders actually updated.
func (u *ReconcileUseCase) Apply(ctx context.Context, event model.PaymentEvent) (int, error) {
	target, ok := event.Type.TargetStatus()
	if !ok {
		return 0, nil
	}

	orders, err := u.orders.FindByPaymentReference(ctx, event.PaymentReference)
	if err != nil {
		return 0, fmt.Errorf("locate orders for %s: %w", event.PaymentReference, err)
	}

	if len(orders) == 0 {
		u.metrics.OrderMissing()
		u.logger.Warn("no order matches payment reference",
			slog.String("event_id", event.ID),
			slog.String("event_type", string(event.Type)),
			slog.String("payment_reference", event.PaymentReference),
		)
		return 0, nil
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	var reason *string
	if target == model.OrderStatusPaymentFailed {
		reason = event.FailureReason
	}

	updated, err := u.orders.ApplyPaymentStatus(ctx, ids, target, reason, event.OccurredAt)
	if err != nil {
		return 0, fmt.Errorf("apply %s to orders of %s: %w", target, event.PaymentReference, err)
	}

	u.metrics.OrdersReconciled(string(target), updated)

	if updated < len(ids) {
		// Guarded rows: terminal status or an already-applied newer event.
		u.logger.Info("payment event skipped for guarded orders",
			slog.String("event_id", event.ID),
			slog.String("payment_reference", event.PaymentReference),
			slog.Int("matched", len(ids)),
			slog.Int("updated", updated),
		)
	}

	return updated, nil
}
