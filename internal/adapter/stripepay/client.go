package stripepay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/stripe/stripe-go/v81"
	stripeclient "github.com/stripe/stripe-go/v81/client"

	domainErrors "github.com/maxbelov/shopgate/internal/domain/errors"
	"github.com/maxbelov/shopgate/internal/domain/model"
)

// Client exposes the payment-processor operations this system consumes.
type Client interface {
	// CreateIntent registers a payment intent for the given amount.
	CreateIntent(ctx context.Context, amountMinor int64, currency string) (*model.PaymentIntentRef, error)
	// CheckPayment returns the settled outcome of a payment attempt as a
	// synthesized event, or nil when the attempt is still in flight.
	CheckPayment(ctx context.Context, reference string) (*model.PaymentEvent, error)
}

// APIClient implements Client on top of the Stripe SDK.
type APIClient struct {
	api    *stripeclient.API
	logger *slog.Logger
}

// NewAPIClient creates a Stripe-backed client. An empty key is tolerated at
// construction time; calls then fail with a configuration error so the rest
// of the service keeps working.
func NewAPIClient(apiKey string, logger *slog.Logger) *APIClient {
	var api *stripeclient.API
	if apiKey != "" {
		api = &stripeclient.API{}
		api.Init(apiKey, nil)
	}
	return &APIClient{api: api, logger: logger}
}

func (c *APIClient) CreateIntent(ctx context.Context, amountMinor int64, currency string) (*model.PaymentIntentRef, error) {
	if c.api == nil {
		return nil, domainErrors.ErrPaymentsDisabled
	}

	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	intent, err := c.api.PaymentIntents.New(params)
	if err != nil {
		c.logger.Error("create payment intent failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	return &model.PaymentIntentRef{ID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

func (c *APIClient) CheckPayment(ctx context.Context, reference string) (*model.PaymentEvent, error) {
	if c.api == nil {
		return nil, domainErrors.ErrPaymentsDisabled
	}

	params := &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}}
	intent, err := c.api.PaymentIntents.Get(reference, params)
	if err != nil {
		return nil, fmt.Errorf("fetch payment intent %s: %w", reference, err)
	}
	return eventFromIntent(intent), nil
}

// eventFromIntent maps a polled intent onto the event the webhook would have
// delivered. Indeterminate statuses map to nil.
func eventFromIntent(intent *stripe.PaymentIntent) *model.PaymentEvent {
	event := &model.PaymentEvent{
		ID:               "poll_" + intent.ID,
		PaymentReference: intent.ID,
		OccurredAt:       time.Now().UTC(),
	}

	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded:
		event.Type = model.PaymentEventSucceeded
		return event
	case stripe.PaymentIntentStatusCanceled:
		event.Type = model.PaymentEventFailed
		if intent.LastPaymentError != nil && intent.LastPaymentError.Msg != "" {
			reason := intent.LastPaymentError.Msg
			event.FailureReason = &reason
		}
		return event
	case stripe.PaymentIntentStatusRequiresPaymentMethod:
		// Reached after a declined attempt; without an error it is just an
		// intent nobody has paid yet.
		if intent.LastPaymentError == nil {
			return nil
		}
		event.Type = model.PaymentEventFailed
		if intent.LastPaymentError.Msg != "" {
			reason := intent.LastPaymentError.Msg
			event.FailureReason = &reason
		}
		return event
	}
	return nil
}
