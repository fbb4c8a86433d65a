package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/maxbelov/shopgate/internal/domain/errors"
	"github.com/maxbelov/shopgate/internal/domain/model"
	"github.com/maxbelov/shopgate/internal/test"
)

func catalogStub() test.ProductRepositoryStub {
	products := map[string]model.Product{
		"prod-1": {ID: "prod-1", SKU: "widget", Name: "Widget", PriceMinor: 250, Currency: "usd", Stock: 10},
		"prod-2": {ID: "prod-2", SKU: "gadget", Name: "Gadget", PriceMinor: 1000, Currency: "usd", Stock: 3},
		"prod-3": {ID: "prod-3", SKU: "trinket", Name: "Trinket", PriceMinor: 500, Currency: "eur", Stock: 5},
	}
	return test.ProductRepositoryStub{
		GetByIDFn: func(ctx context.Context, id string) (*model.Product, error) {
			p, ok := products[id]
			if !ok {
				return nil, domainErrors.ErrNotFound
			}
			return &p, nil
		},
	}
}

func TestCheckoutCreatesPendingOrder(t *testing.T) {
	var (
		gotAmount   int64
		gotCurrency string
		savedOrder  *model.Order
		savedItems  []model.OrderItem
	)

	orders := test.OrderRepositoryStub{
		CreateCheckoutFn: func(ctx context.Context, order *model.Order, items []model.OrderItem) error {
			savedOrder = order
			savedItems = items
			return nil
		},
	}
	gateway := test.PaymentGatewayStub{
		CreateIntentFn: func(ctx context.Context, amountMinor int64, currency string) (*model.PaymentIntentRef, error) {
			gotAmount, gotCurrency = amountMinor, currency
			return &model.PaymentIntentRef{ID: "pi_new", ClientSecret: "cs_new"}, nil
		},
	}

	uc := NewCheckoutUseCase(orders, catalogStub(), gateway, testLogger())
	order, secret, err := uc.Checkout(context.Background(), []model.CheckoutItem{
		{ProductID: "prod-1", Quantity: 2},
		{ProductID: "prod-2", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAmount != 1500 {
		t.Errorf("expected amount 1500, got %d", gotAmount)
	}
	if gotCurrency != "usd" {
		t.Errorf("expected currency usd, got %s", gotCurrency)
	}
	if secret != "cs_new" {
		t.Errorf("expected client secret cs_new, got %s", secret)
	}
	if order.Status != model.OrderStatusPending {
		t.Errorf("expected Pending, got %s", order.Status)
	}
	if order.PaymentReference != "pi_new" {
		t.Errorf("expected reference pi_new, got %s", order.PaymentReference)
	}
	if order.ID == "" {
		t.Error("expected generated order id")
	}
	if savedOrder == nil || savedOrder.ID != order.ID {
		t.Fatalf("expected persisted order %+v", savedOrder)
	}
	if len(savedItems) != 2 {
		t.Fatalf("expected 2 items, got %d", len(savedItems))
	}
	for _, item := range savedItems {
		if item.OrderID != order.ID {
			t.Errorf("item %s not linked to order", item.ProductID)
		}
	}
	if savedItems[0].UnitPriceMinor != 250 || savedItems[1].UnitPriceMinor != 1000 {
		t.Errorf("unexpected unit prices %+v", savedItems)
	}
}

func TestCheckoutValidation(t *testing.T) {
	uc := NewCheckoutUseCase(test.OrderRepositoryStub{}, catalogStub(), test.PaymentGatewayStub{}, testLogger())

	cases := []struct {
		name  string
		items []model.CheckoutItem
		want  error
	}{
		{"empty cart", nil, domainErrors.ErrEmptyCheckout},
		{"zero quantity", []model.CheckoutItem{{ProductID: "prod-1", Quantity: 0}}, domainErrors.ErrInvalidQuantity},
		{"negative quantity", []model.CheckoutItem{{ProductID: "prod-1", Quantity: -3}}, domainErrors.ErrInvalidQuantity},
		{"unknown product", []model.CheckoutItem{{ProductID: "prod-404", Quantity: 1}}, domainErrors.ErrNotFound},
		{"currency mismatch", []model.CheckoutItem{
			{ProductID: "prod-1", Quantity: 1},
			{ProductID: "prod-3", Quantity: 1},
		}, domainErrors.ErrCurrencyMismatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := uc.Checkout(context.Background(), tc.items); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCheckoutGatewayFailure(t *testing.T) {
	gatewayErr := errors.New("processor unavailable")
	persistCalled := false

	orders := test.OrderRepositoryStub{
		CreateCheckoutFn: func(ctx context.Context, order *model.Order, items []model.OrderItem) error {
			persistCalled = true
			return nil
		},
	}
	gateway := test.PaymentGatewayStub{
		CreateIntentFn: func(ctx context.Context, amountMinor int64, currency string) (*model.PaymentIntentRef, error) {
			return nil, gatewayErr
		},
	}

	uc := NewCheckoutUseCase(orders, catalogStub(), gateway, testLogger())
	if _, _, err := uc.Checkout(context.Background(), []model.CheckoutItem{{ProductID: "prod-1", Quantity: 1}}); !errors.Is(err, gatewayErr) {
		t.Fatalf("expected gateway error, got %v", err)
	}
	if persistCalled {
		t.Error("expected no persistence after gateway failure")
	}
}

func TestCheckoutInsufficientStock(t *testing.T) {
	orders := test.OrderRepositoryStub{
		CreateCheckoutFn: func(ctx context.Context, order *model.Order, items []model.OrderItem) error {
			return domainErrors.ErrInsufficientStock
		},
	}

	uc := NewCheckoutUseCase(orders, catalogStub(), test.PaymentGatewayStub{}, testLogger())
	if _, _, err := uc.Checkout(context.Background(), []model.CheckoutItem{{ProductID: "prod-2", Quantity: 5}}); !errors.Is(err, domainErrors.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}
