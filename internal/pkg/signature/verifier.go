package signature

import (
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"

	domainErrors "github.com/maxbelov/shopgate/internal/domain/errors"
)

// Header carries the processor signature on webhook deliveries.
const Header = "Stripe-Signature"

// Options tune signature verification.
type Options struct {
	Tolerance time.Duration
}

// Verifier authenticates raw webhook payloads against the shared signing
// secret. Verification is byte-exact: callers must pass the body exactly as
// received, before any JSON parsing.
type Verifier struct {
	secret    string
	tolerance time.Duration
}

// NewVerifier builds Verifier with the provided secret and options.
func NewVerifier(secret string, opts Options) *Verifier {
	tolerance := opts.Tolerance
	if tolerance <= 0 {
		tolerance = webhook.DefaultTolerance
	}
	return &Verifier{secret: secret, tolerance: tolerance}
}

// Verify checks the signature header against the payload and returns the
// decoded event. Errors distinguish a missing server secret (operational
// misconfiguration) from a missing or invalid signature (bad request).
func (v *Verifier) Verify(payload []byte, header string) (stripe.Event, error) {
	if v.secret == "" {
		return stripe.Event{}, domainErrors.ErrSecretNotConfigured
	}
	if strings.TrimSpace(header) == "" {
		return stripe.Event{}, domainErrors.ErrMissingSignature
	}

	event, err := webhook.ConstructEventWithTolerance(payload, header, v.secret, v.tolerance)
	if err != nil {
		return stripe.Event{}, fmt.Errorf("%w: %v", domainErrors.ErrInvalidSignature, err)
	}
	return event, nil
}
