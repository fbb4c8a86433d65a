package test

import (
	"context"
	"time"

	domainErrors "github.com/maxbelov/shopgate/internal/domain/errors"
	"github.com/maxbelov/shopgate/internal/domain/model"
)

// OrderRepositoryStub implements repository.OrderRepository with pluggable behavior.
type OrderRepositoryStub struct {
	CreateCheckoutFn    func(context.Context, *model.Order, []model.OrderItem) error
	FindByReferenceFn   func(context.Context, string) ([]model.Order, error)
	ApplyPaymentFn      func(context.Context, []string, model.OrderStatus, *string, time.Time) (int, error)
	GetByIDFn           func(context.Context, string) (*model.Order, error)
	ListRecentFn        func(context.Context, int) ([]model.Order, error)
	ListPendingFn       func(context.Context, time.Duration, int) ([]model.Order, error)
	UpdateFulfillmentFn func(context.Context, string, model.OrderStatus, model.OrderStatus) error
}

func (s OrderRepositoryStub) CreateCheckout(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	if s.CreateCheckoutFn != nil {
		return s.CreateCheckoutFn(ctx, order, items)
	}
	return nil
}

func (s OrderRepositoryStub) FindByPaymentReference(ctx context.Context, reference string) ([]model.Order, error) {
	if s.FindByReferenceFn != nil {
		return s.FindByReferenceFn(ctx, reference)
	}
	return nil, nil
}

func (s OrderRepositoryStub) ApplyPaymentStatus(ctx context.Context, orderIDs []string, status model.OrderStatus, reason *string, eventAt time.Time) (int, error) {
	if s.ApplyPaymentFn != nil {
		return s.ApplyPaymentFn(ctx, orderIDs, status, reason, eventAt)
	}
	return len(orderIDs), nil
}

func (s OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

func (s OrderRepositoryStub) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	if s.ListRecentFn != nil {
		return s.ListRecentFn(ctx, limit)
	}
	return nil, nil
}

func (s OrderRepositoryStub) ListPendingOlderThan(ctx context.Context, age time.Duration, limit int) ([]model.Order, error) {
	if s.ListPendingFn != nil {
		return s.ListPendingFn(ctx, age, limit)
	}
	return nil, nil
}

func (s OrderRepositoryStub) UpdateFulfillment(ctx context.Context, id string, from, to model.OrderStatus) error {
	if s.UpdateFulfillmentFn != nil {
		return s.UpdateFulfillmentFn(ctx, id, from, to)
	}
	return nil
}

// ProductRepositoryStub implements repository.ProductRepository with pluggable behavior.
type ProductRepositoryStub struct {
	CreateFn  func(context.Context, *model.Product) error
	ListFn    func(context.Context) ([]model.Product, error)
	GetByIDFn func(context.Context, string) (*model.Product, error)
}

func (s ProductRepositoryStub) Create(ctx context.Context, product *model.Product) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, product)
	}
	return nil
}

func (s ProductRepositoryStub) List(ctx context.Context) ([]model.Product, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return nil, nil
}

func (s ProductRepositoryStub) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

// PaymentGatewayStub implements usecase.PaymentGateway.
type PaymentGatewayStub struct {
	CreateIntentFn func(context.Context, int64, string) (*model.PaymentIntentRef, error)
}

func (s PaymentGatewayStub) CreateIntent(ctx context.Context, amountMinor int64, currency string) (*model.PaymentIntentRef, error) {
	if s.CreateIntentFn != nil {
		return s.CreateIntentFn(ctx, amountMinor, currency)
	}
	return &model.PaymentIntentRef{ID: "pi_test", ClientSecret: "cs_test"}, nil
}

// PaymentClientStub implements the full payment processor client surface.
type PaymentClientStub struct {
	PaymentGatewayStub
	PaymentCheckerStub
}

// PaymentCheckerStub implements app.PaymentChecker.
type PaymentCheckerStub struct {
	CheckFn func(context.Context, string) (*model.PaymentEvent, error)
}

func (s PaymentCheckerStub) CheckPayment(ctx context.Context, reference string) (*model.PaymentEvent, error) {
	if s.CheckFn != nil {
		return s.CheckFn(ctx, reference)
	}
	return nil, nil
}

// HealthCheckerStub implements app.HealthChecker.
type HealthCheckerStub struct {
	HealthCheckFn func(context.Context) error
}

func (s HealthCheckerStub) HealthCheck(ctx context.Context) error {
	if s.HealthCheckFn != nil {
		return s.HealthCheckFn(ctx)
	}
	return nil
}
