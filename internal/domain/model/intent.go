package model

// PaymentIntentRef identifies a payment attempt registered with the
// processor during checkout.
type PaymentIntentRef struct {
	ID           string
	ClientSecret string
}
