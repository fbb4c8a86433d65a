package dto

import "time"

// OrderResponse represents an order on the admin surface.
type OrderResponse struct {
	ID               string    `json:"id"`
	PaymentReference string    `json:"payment_reference"`
	Status           string    `json:"status"`
	AmountMinor      int64     `json:"amount_minor"`
	Currency         string    `json:"currency"`
	FailureReason    *string   `json:"failure_reason,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// OrderStatusUpdateRequest moves an order along the fulfillment workflow.
type OrderStatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}
