package repository

import (
	"context"
	"time"

	"github.com/maxbelov/shopgate/internal/domain/model"
)

// OrderRepository persists orders and applies status transitions.
type OrderRepository interface {
	// CreateCheckout decrements stock for every item and inserts the order
	// with its items in a single transaction.
	CreateCheckout(ctx context.Context, order *model.Order, items []model.OrderItem) error

	// FindByPaymentReference returns every order correlated with the payment
	// reference. An empty slice is a valid outcome.
	FindByPaymentReference(ctx context.Context, reference string) ([]model.Order, error)

	// ApplyPaymentStatus sets status, failure reason and the event timestamp
	// on all given orders inside one transaction. Rows already in a terminal
	// state or carrying a newer event timestamp are skipped. Returns the
	// number of rows actually updated.
	ApplyPaymentStatus(ctx context.Context, orderIDs []string, status model.OrderStatus, reason *string, eventAt time.Time) (int, error)

	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListRecent(ctx context.Context, limit int) ([]model.Order, error)

	// ListPendingOlderThan returns orders still Pending whose creation is
	// older than the given age, for the payment sweeper.
	ListPendingOlderThan(ctx context.Context, age time.Duration, limit int) ([]model.Order, error)

	// UpdateFulfillment moves an order between fulfillment statuses with a
	// compare-and-swap on the expected current status.
	UpdateFulfillment(ctx context.Context, id string, from, to model.OrderStatus) error
}
