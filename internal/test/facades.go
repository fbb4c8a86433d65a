package test

import (
	"context"
	"sync"
	"time"

	"github.com/stripe/stripe-go/v81"

	"github.com/maxbelov/shopgate/internal/domain/model"
)

// VerifierStub provides controllable signature verification for handler tests.
type VerifierStub struct {
	Event    stripe.Event
	Err      error
	VerifyFn func(payload []byte, header string) (stripe.Event, error)
}

// Verify delegates to the configured function or returns stored values.
func (s VerifierStub) Verify(payload []byte, header string) (stripe.Event, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(payload, header)
	}
	return s.Event, s.Err
}

// WebhookFacadeStub simulates payment event reconciliation.
type WebhookFacadeStub struct {
	ReconcileFn func(context.Context, model.PaymentEvent) (int, error)
}

// ReconcilePayment delegates to the configured function or reports one update.
func (s WebhookFacadeStub) ReconcilePayment(ctx context.Context, event model.PaymentEvent) (int, error) {
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx, event)
	}
	return 1, nil
}

// CheckoutFacadeStub simulates checkout.
type CheckoutFacadeStub struct {
	CheckoutFn func(context.Context, []model.CheckoutItem) (*model.Order, string, error)
}

// Checkout delegates to the configured function or returns a default order.
func (s CheckoutFacadeStub) Checkout(ctx context.Context, items []model.CheckoutItem) (*model.Order, string, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, items)
	}
	return &model.Order{ID: "order-1", PaymentReference: "pi_1", Status: model.OrderStatusPending}, "cs_test", nil
}

// CatalogFacadeStub simulates catalog operations.
type CatalogFacadeStub struct {
	ProductsFn func(context.Context) ([]model.Product, error)
	CreateFn   func(context.Context, string, string, int64, string, int64) (*model.Product, error)
}

// Products returns configured products.
func (s CatalogFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return []model.Product{{ID: "prod-1", SKU: "sku-1", Name: "Widget", PriceMinor: 100, Currency: "usd", Stock: 5}}, nil
}

// CreateProduct delegates to the configured function or echoes the input.
func (s CatalogFacadeStub) CreateProduct(ctx context.Context, sku, name string, priceMinor int64, currency string, stock int64) (*model.Product, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, sku, name, priceMinor, currency, stock)
	}
	return &model.Product{ID: "prod-1", SKU: sku, Name: name, PriceMinor: priceMinor, Currency: currency, Stock: stock}, nil
}

// OrderFacadeStub simulates order administration.
type OrderFacadeStub struct {
	OrdersFn  func(context.Context, int) ([]model.Order, error)
	OrderFn   func(context.Context, string) (*model.Order, error)
	AdvanceFn func(context.Context, string, model.OrderStatus) error
}

// Orders returns configured orders.
func (s OrderFacadeStub) Orders(ctx context.Context, limit int) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, limit)
	}
	return []model.Order{{ID: "order-1", Status: model.OrderStatusPending}}, nil
}

// Order returns a configured order.
func (s OrderFacadeStub) Order(ctx context.Context, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return &model.Order{ID: id, Status: model.OrderStatusPending}, nil
}

// AdvanceFulfillment delegates to the configured function.
func (s OrderFacadeStub) AdvanceFulfillment(ctx context.Context, id string, target model.OrderStatus) error {
	if s.AdvanceFn != nil {
		return s.AdvanceFn(ctx, id, target)
	}
	return nil
}

// HealthFacadeStub simulates health checks.
type HealthFacadeStub struct {
	PingFn func(context.Context) error
}

// Ping delegates to the configured function.
func (s HealthFacadeStub) Ping(ctx context.Context) error {
	if s.PingFn != nil {
		return s.PingFn(ctx)
	}
	return nil
}

// StoreFacadeStub aggregates the full set of operations used across handlers.
type StoreFacadeStub struct {
	WebhookFacadeStub
	CheckoutFacadeStub
	CatalogFacadeStub
	OrderFacadeStub
	HealthFacadeStub
}

// SweepCall stores information about ReconcilePayment invocations.
type SweepCall struct {
	Event model.PaymentEvent
}

// SweeperFacadeStub mimics sweeper interactions with the store facade.
type SweeperFacadeStub struct {
	Pending    [][]model.Order
	PendingFn  func(context.Context, time.Duration, int) ([]model.Order, error)
	CheckFn    func(context.Context, string) (*model.PaymentEvent, error)
	ReconcileFn func(context.Context, model.PaymentEvent) (int, error)
	Reconciled []SweepCall

	mu               sync.Mutex
	pendingCallCount int
}

// Lock exposes internal mutex for external synchronization.
func (s *SweeperFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *SweeperFacadeStub) Unlock() { s.mu.Unlock() }

// PendingPayments returns batches from the configured queue.
func (s *SweeperFacadeStub) PendingPayments(ctx context.Context, age time.Duration, limit int) ([]model.Order, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, age, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingCallCount < len(s.Pending) {
		batch := s.Pending[s.pendingCallCount]
		s.pendingCallCount++
		return batch, nil
	}
	return nil, nil
}

// CheckPayment returns configured payment outcome.
func (s *SweeperFacadeStub) CheckPayment(ctx context.Context, reference string) (*model.PaymentEvent, error) {
	if s.CheckFn != nil {
		return s.CheckFn(ctx, reference)
	}
	return &model.PaymentEvent{
		ID:               "poll_" + reference,
		Type:             model.PaymentEventSucceeded,
		PaymentReference: reference,
		OccurredAt:       time.Now().UTC(),
	}, nil
}

// ReconcilePayment records reconcile requests.
func (s *SweeperFacadeStub) ReconcilePayment(ctx context.Context, event model.PaymentEvent) (int, error) {
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx, event)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reconciled = append(s.Reconciled, SweepCall{Event: event})
	return 1, nil
}
