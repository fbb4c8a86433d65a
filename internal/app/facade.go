package app

import (
	"context"
	"time"

	"github.com/maxbelov/shopgate/internal/domain/model"
	"github.com/maxbelov/shopgate/internal/usecase"
)

// PaymentChecker polls the processor for the outcome of a payment attempt.
type PaymentChecker interface {
	CheckPayment(ctx context.Context, reference string) (*model.PaymentEvent, error)
}

// HealthChecker verifies backing storage connectivity.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// StoreFacade aggregates the full set of operations used across handlers
// and the payment sweeper.
type StoreFacade struct {
	reconcile *usecase.ReconcileUseCase
	checkout  *usecase.CheckoutUseCase
	catalog   *usecase.CatalogUseCase
	orders    *usecase.OrderAdminUseCase
	payments  PaymentChecker
	health    HealthChecker
}

// NewStoreFacade constructs StoreFacade.
func NewStoreFacade(
	reconcile *usecase.ReconcileUseCase,
	checkout *usecase.CheckoutUseCase,
	catalog *usecase.CatalogUseCase,
	orders *usecase.OrderAdminUseCase,
	payments PaymentChecker,
	health HealthChecker,
) *StoreFacade {
	return &StoreFacade{
		reconcile: reconcile,
		checkout:  checkout,
		catalog:   catalog,
		orders:    orders,
		payments:  payments,
		health:    health,
	}
}

func (f *StoreFacade) ReconcilePayment(ctx context.Context, event model.PaymentEvent) (int, error) {
	return f.reconcile.Apply(ctx, event)
}

func (f *StoreFacade) Checkout(ctx context.Context, items []model.CheckoutItem) (*model.Order, string, error) {
	return f.checkout.Checkout(ctx, items)
}

func (f *StoreFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.catalog.ListProducts(ctx)
}

func (f *StoreFacade) CreateProduct(ctx context.Context, sku, name string, priceMinor int64, currency string, stock int64) (*model.Product, error) {
	return f.catalog.CreateProduct(ctx, sku, name, priceMinor, currency, stock)
}

func (f *StoreFacade) Orders(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.ListRecent(ctx, limit)
}

func (f *StoreFacade) Order(ctx context.Context, id string) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

func (f *StoreFacade) AdvanceFulfillment(ctx context.Context, id string, target model.OrderStatus) error {
	return f.orders.AdvanceFulfillment(ctx, id, target)
}

func (f *StoreFacade) PendingPayments(ctx context.Context, age time.Duration, limit int) ([]model.Order, error) {
	return f.orders.PendingForSweep(ctx, age, limit)
}

func (f *StoreFacade) CheckPayment(ctx context.Context, reference string) (*model.PaymentEvent, error) {
	return f.payments.CheckPayment(ctx, reference)
}

func (f *StoreFacade) Ping(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
