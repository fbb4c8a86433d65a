package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/maxbelov/shopgate/internal/domain/model"
	"github.com/maxbelov/shopgate/internal/metrics"
	testhelpers "github.com/maxbelov/shopgate/internal/test"
	"github.com/maxbelov/shopgate/internal/usecase"
)

func newTestFacade(t *testing.T, orders testhelpers.OrderRepositoryStub, products testhelpers.ProductRepositoryStub, checker testhelpers.PaymentCheckerStub, health testhelpers.HealthCheckerStub) *StoreFacade {
	t.Helper()
	logger := appLogger()
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	return NewStoreFacade(
		usecase.NewReconcileUseCase(orders, m, logger),
		usecase.NewCheckoutUseCase(orders, products, testhelpers.PaymentGatewayStub{}, logger),
		usecase.NewCatalogUseCase(products),
		usecase.NewOrderAdminUseCase(orders),
		checker,
		health,
	)
}

func TestStoreFacadeReconcilePayment(t *testing.T) {
	orders := testhelpers.OrderRepositoryStub{
		FindByReferenceFn: func(ctx context.Context, reference string) ([]model.Order, error) {
			return []model.Order{{ID: "order-1", Status: model.OrderStatusPending}}, nil
		},
	}
	facade := newTestFacade(t, orders, testhelpers.ProductRepositoryStub{}, testhelpers.PaymentCheckerStub{}, testhelpers.HealthCheckerStub{})

	updated, err := facade.ReconcilePayment(context.Background(), model.PaymentEvent{
		ID:               "evt_1",
		Type:             model.PaymentEventSucceeded,
		PaymentReference: "pi_1",
		OccurredAt:       time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 1 {
		t.Fatalf("expected 1 updated, got %d", updated)
	}
}

func TestStoreFacadeCheckoutAndCatalog(t *testing.T) {
	products := testhelpers.ProductRepositoryStub{
		GetByIDFn: func(ctx context.Context, id string) (*model.Product, error) {
			return &model.Product{ID: id, SKU: "widget", PriceMinor: 100, Currency: "usd"}, nil
		},
		ListFn: func(ctx context.Context) ([]model.Product, error) {
			return []model.Product{{ID: "prod-1"}}, nil
		},
	}
	facade := newTestFacade(t, testhelpers.OrderRepositoryStub{}, products, testhelpers.PaymentCheckerStub{}, testhelpers.HealthCheckerStub{})

	order, secret, err := facade.Checkout(context.Background(), []model.CheckoutItem{{ProductID: "prod-1", Quantity: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.AmountMinor != 200 || secret == "" {
		t.Fatalf("unexpected checkout result %+v secret=%q", order, secret)
	}

	list, err := facade.Products(context.Background())
	if err != nil || len(list) != 1 {
		t.Fatalf("unexpected products %v err=%v", list, err)
	}

	created, err := facade.CreateProduct(context.Background(), "gadget", "Gadget", 500, "usd", 3)
	if err != nil || created.SKU != "gadget" {
		t.Fatalf("unexpected create result %+v err=%v", created, err)
	}
}

func TestStoreFacadeOrdersAndSweep(t *testing.T) {
	orders := testhelpers.OrderRepositoryStub{
		ListRecentFn: func(ctx context.Context, limit int) ([]model.Order, error) {
			return []model.Order{{ID: "order-1"}}, nil
		},
		GetByIDFn: func(ctx context.Context, id string) (*model.Order, error) {
			return &model.Order{ID: id, Status: model.OrderStatusProcessing}, nil
		},
		ListPendingFn: func(ctx context.Context, age time.Duration, limit int) ([]model.Order, error) {
			return []model.Order{{ID: "order-2", Status: model.OrderStatusPending}}, nil
		},
	}
	facade := newTestFacade(t, orders, testhelpers.ProductRepositoryStub{}, testhelpers.PaymentCheckerStub{}, testhelpers.HealthCheckerStub{})

	if list, err := facade.Orders(context.Background(), 10); err != nil || len(list) != 1 {
		t.Fatalf("unexpected orders %v err=%v", list, err)
	}
	if order, err := facade.Order(context.Background(), "order-1"); err != nil || order.ID != "order-1" {
		t.Fatalf("unexpected order %v err=%v", order, err)
	}
	if err := facade.AdvanceFulfillment(context.Background(), "order-1", model.OrderStatusShipped); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pending, err := facade.PendingPayments(context.Background(), time.Minute, 10); err != nil || len(pending) != 1 {
		t.Fatalf("unexpected pending %v err=%v", pending, err)
	}
}

func TestStoreFacadeCheckPaymentAndPing(t *testing.T) {
	checker := testhelpers.PaymentCheckerStub{
		CheckFn: func(ctx context.Context, reference string) (*model.PaymentEvent, error) {
			return &model.PaymentEvent{ID: "poll_" + reference, Type: model.PaymentEventSucceeded, PaymentReference: reference}, nil
		},
	}
	health := testhelpers.HealthCheckerStub{
		HealthCheckFn: func(ctx context.Context) error { return errors.New("down") },
	}
	facade := newTestFacade(t, testhelpers.OrderRepositoryStub{}, testhelpers.ProductRepositoryStub{}, checker, health)

	event, err := facade.CheckPayment(context.Background(), "pi_1")
	if err != nil || event == nil || event.PaymentReference != "pi_1" {
		t.Fatalf("unexpected event %v err=%v", event, err)
	}
	if err := facade.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error")
	}
}
