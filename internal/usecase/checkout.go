package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	domainErrors "github.com/maxbelov/shopgate/internal/domain/errors"
	"github.com/maxbelov/shopgate/internal/domain/model"
	"github.com/maxbelov/shopgate/internal/domain/repository"
)

// PaymentGateway registers payment intents with the processor.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string) (*model.PaymentIntentRef, error)
}

// CheckoutUseCase turns a validated cart into a Pending order with a
// processor payment intent attached.
type CheckoutUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	gateway  PaymentGateway
	logger   *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(orders repository.OrderRepository, products repository.ProductRepository, gateway PaymentGateway, logger *slog.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{orders: orders, products: products, gateway: gateway, logger: logger}
}

// Checkout prices the items, creates the payment intent and persists the
// order. The intent is created before the storage transaction so no lock is
// held across two network round-trips; stock decrement and order insert
// share one transaction. Returns the order and the intent client secret.
func (u *CheckoutUseCase) Checkout(ctx context.Context, items []model.CheckoutItem) (*model.Order, string, error) {
	if len(items) == 0 {
		return nil, "", domainErrors.ErrEmptyCheckout
	}

	var (
		amount     int64
		currency   string
		orderItems = make([]model.OrderItem, 0, len(items))
	)

	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, "", domainErrors.ErrInvalidQuantity
		}
		product, err := u.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, "", fmt.Errorf("resolve product %s: %w", item.ProductID, err)
		}
		if currency == "" {
			currency = product.Currency
		} else if currency != product.Currency {
			return nil, "", domainErrors.ErrCurrencyMismatch
		}
		amount += product.PriceMinor * item.Quantity
		orderItems = append(orderItems, model.OrderItem{
			ProductID:      product.ID,
			Quantity:       item.Quantity,
			UnitPriceMinor: product.PriceMinor,
		})
	}

	intent, err := u.gateway.CreateIntent(ctx, amount, currency)
	if err != nil {
		return nil, "", fmt.Errorf("create payment intent: %w", err)
	}

	order := &model.Order{
		ID:               uuid.NewString(),
		PaymentReference: intent.ID,
		Status:           model.OrderStatusPending,
		AmountMinor:      amount,
		Currency:         currency,
	}
	for i := range orderItems {
		orderItems[i].OrderID = order.ID
	}

	if err := u.orders.CreateCheckout(ctx, order, orderItems); err != nil {
		// The intent stays orphaned at the processor; it expires unpaid.
		u.logger.Error("persist checkout failed",
			slog.String("payment_reference", intent.ID),
			slog.String("error", err.Error()),
		)
		return nil, "", fmt.Errorf("persist checkout: %w", err)
	}

	return order, intent.ClientSecret, nil
}
