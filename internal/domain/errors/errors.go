package errors

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrInvalidProduct      = errors.New("invalid product")
	ErrMissingSignature    = errors.New("missing signature header")
	ErrInvalidSignature    = errors.New("invalid signature")
	ErrSecretNotConfigured = errors.New("webhook secret is not configured")
	ErrPaymentsDisabled    = errors.New("payment processor key is not configured")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrEmptyCheckout       = errors.New("checkout must contain at least one item")
	ErrInvalidQuantity     = errors.New("item quantity must be greater than zero")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrCurrencyMismatch    = errors.New("checkout items use different currencies")
)
