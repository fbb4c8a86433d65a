package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stripe/stripe-go/v81"

	domainErrors "github.com/maxbelov/shopgate/internal/domain/errors"
)

const testSecret = "whsec_test_secret"

func signedHeader(secret string, payload []byte, at time.Time) string {
	ts := at.Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func eventPayload(id string, kind string) []byte {
	return []byte(fmt.Sprintf(
		`{"id":%q,"type":%q,"api_version":%q,"created":1700000000,"data":{"object":{"id":"pi_123"}}}`,
		id, kind, stripe.APIVersion,
	))
}

func TestVerifierAcceptsValidSignature(t *testing.T) {
	v := NewVerifier(testSecret, Options{})
	payload := eventPayload("evt_1", "payment_intent.succeeded")
	header := signedHeader(testSecret, payload, time.Now())

	event, err := v.Verify(payload, header)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.ID != "evt_1" {
		t.Errorf("expected id evt_1, got %s", event.ID)
	}
	if event.Type != stripe.EventTypePaymentIntentSucceeded {
		t.Errorf("unexpected type %s", event.Type)
	}
}

func TestVerifierRejectsTamperedPayload(t *testing.T) {
	v := NewVerifier(testSecret, Options{})
	payload := eventPayload("evt_2", "payment_intent.succeeded")
	header := signedHeader(testSecret, payload, time.Now())

	tampered := eventPayload("evt_777", "payment_intent.succeeded")
	if _, err := v.Verify(tampered, header); !errors.Is(err, domainErrors.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifierRejectsWrongSecret(t *testing.T) {
	v := NewVerifier(testSecret, Options{})
	payload := eventPayload("evt_3", "payment_intent.succeeded")
	header := signedHeader("whsec_other", payload, time.Now())

	if _, err := v.Verify(payload, header); !errors.Is(err, domainErrors.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifierRejectsExpiredTimestamp(t *testing.T) {
	v := NewVerifier(testSecret, Options{Tolerance: time.Minute})
	payload := eventPayload("evt_4", "payment_intent.succeeded")
	header := signedHeader(testSecret, payload, time.Now().Add(-time.Hour))

	if _, err := v.Verify(payload, header); !errors.Is(err, domainErrors.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifierRejectsMissingHeader(t *testing.T) {
	v := NewVerifier(testSecret, Options{})
	payload := eventPayload("evt_5", "payment_intent.succeeded")

	cases := []struct {
		name   string
		header string
	}{
		{"empty", ""},
		{"whitespace", "   "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := v.Verify(payload, tc.header); !errors.Is(err, domainErrors.ErrMissingSignature) {
				t.Fatalf("expected ErrMissingSignature, got %v", err)
			}
		})
	}
}

func TestVerifierWithoutSecret(t *testing.T) {
	v := NewVerifier("", Options{})
	payload := eventPayload("evt_6", "payment_intent.succeeded")
	header := signedHeader(testSecret, payload, time.Now())

	if _, err := v.Verify(payload, header); !errors.Is(err, domainErrors.ErrSecretNotConfigured) {
		t.Fatalf("expected ErrSecretNotConfigured, got %v", err)
	}
}

func TestHeaderName(t *testing.T) {
	if Header != "Stripe-Signature" {
		t.Fatalf("unexpected header name %q", Header)
	}
}
