package model

import "time"

// OrderStatus describes order lifecycle.
type OrderStatus string

const (
	OrderStatusPending       OrderStatus = "Pending"
	OrderStatusProcessing    OrderStatus = "Processing"
	OrderStatusShipped       OrderStatus = "Shipped"
	OrderStatusDelivered     OrderStatus = "Delivered"
	OrderStatusCancelled     OrderStatus = "Cancelled"
	OrderStatusPaymentFailed OrderStatus = "PaymentFailed"
)

// IsTerminal reports whether the status must never be overwritten by a
// payment event. Shipped, Delivered and Cancelled belong to the fulfillment
// workflow.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanFulfillTransition reports whether moving from s to target is a valid
// fulfillment transition. Payment-driven statuses are excluded: only the
// reconciler produces Processing and PaymentFailed.
func (s OrderStatus) CanFulfillTransition(target OrderStatus) bool {
	switch target {
	case OrderStatusShipped:
		return s == OrderStatusProcessing
	case OrderStatusDelivered:
		return s == OrderStatusShipped
	case OrderStatusCancelled:
		return s == OrderStatusPending || s == OrderStatusProcessing || s == OrderStatusPaymentFailed
	}
	return false
}

// Order describes a purchase created by the checkout flow.
type Order struct {
	ID               string
	PaymentReference string
	Status           OrderStatus
	AmountMinor      int64
	Currency         string
	FailureReason    *string
	PaymentEventAt   *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OrderItem is a single catalog position inside an order.
type OrderItem struct {
	OrderID        string
	ProductID      string
	Quantity       int64
	UnitPriceMinor int64
}
