package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v81"
)

// ErrUnexpectedPayload signals that a recognized event carried a payload
// shape this system cannot read. Such events are acknowledged without any
// order mutation.
var ErrUnexpectedPayload = errors.New("unexpected event payload shape")

// PaymentEventType enumerates processor event kinds the reconciler handles.
type PaymentEventType string

const (
	PaymentEventSucceeded PaymentEventType = PaymentEventType(stripe.EventTypePaymentIntentSucceeded)
	PaymentEventFailed    PaymentEventType = PaymentEventType(stripe.EventTypePaymentIntentPaymentFailed)
)

// TargetStatus maps the event kind onto the order status it drives.
func (t PaymentEventType) TargetStatus() (OrderStatus, bool) {
	switch t {
	case PaymentEventSucceeded:
		return OrderStatusProcessing, true
	case PaymentEventFailed:
		return OrderStatusPaymentFailed, true
	}
	return "", false
}

// PaymentEvent is the normalized form of a processor webhook event.
type PaymentEvent struct {
	ID               string
	Type             PaymentEventType
	PaymentReference string
	FailureReason    *string
	OccurredAt       time.Time
}

// paymentIntentPayload mirrors the subset of the payment_intent object this
// system reads.
type paymentIntentPayload struct {
	ID               string `json:"id"`
	LastPaymentError *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"last_payment_error"`
}

// PaymentEventFromStripe converts a verified processor event into the typed
// form. The second return is false for event kinds this system intentionally
// ignores. A recognized kind with an unreadable payload fails with
// ErrUnexpectedPayload so the caller can acknowledge without mutating.
func PaymentEventFromStripe(ev stripe.Event) (*PaymentEvent, bool, error) {
	kind := PaymentEventType(ev.Type)
	if _, handled := kind.TargetStatus(); !handled {
		return nil, false, nil
	}

	if ev.Data == nil || len(ev.Data.Raw) == 0 {
		return nil, true, fmt.Errorf("%w: empty data object", ErrUnexpectedPayload)
	}

	var intent paymentIntentPayload
	if err := json.Unmarshal(ev.Data.Raw, &intent); err != nil {
		return nil, true, fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
	}
	if intent.ID == "" {
		return nil, true, fmt.Errorf("%w: missing payment intent id", ErrUnexpectedPayload)
	}

	event := &PaymentEvent{
		ID:               ev.ID,
		Type:             kind,
		PaymentReference: intent.ID,
		OccurredAt:       time.Unix(ev.Created, 0).UTC(),
	}

	if kind == PaymentEventFailed && intent.LastPaymentError != nil {
		reason := intent.LastPaymentError.Message
		if reason == "" {
			reason = intent.LastPaymentError.Code
		}
		if reason != "" {
			event.FailureReason = &reason
		}
	}

	return event, true, nil
}
