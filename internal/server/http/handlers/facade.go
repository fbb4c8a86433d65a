package handlers

import (
	"context"

	"github.com/stripe/stripe-go/v81"

	"github.com/maxbelov/shopgate/internal/domain/model"
)

// EventVerifier authenticates raw webhook payloads.
type EventVerifier interface {
	Verify(payload []byte, header string) (stripe.Event, error)
}

// WebhookFacade applies payment events to orders.
type WebhookFacade interface {
	ReconcilePayment(ctx context.Context, event model.PaymentEvent) (int, error)
}

// CheckoutFacade turns carts into orders.
type CheckoutFacade interface {
	Checkout(ctx context.Context, items []model.CheckoutItem) (*model.Order, string, error)
}

// CatalogFacade manages products.
type CatalogFacade interface {
	Products(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, sku, name string, priceMinor int64, currency string, stock int64) (*model.Product, error)
}

// OrderFacade exposes order administration.
type OrderFacade interface {
	Orders(ctx context.Context, limit int) ([]model.Order, error)
	Order(ctx context.Context, id string) (*model.Order, error)
	AdvanceFulfillment(ctx context.Context, id string, target model.OrderStatus) error
}

// HealthFacade verifies backing services.
type HealthFacade interface {
	Ping(ctx context.Context) error
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	WebhookFacade
	CheckoutFacade
	CatalogFacade
	OrderFacade
	HealthFacade
}
