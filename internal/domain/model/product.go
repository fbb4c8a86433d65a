package model

import "time"

// Product is a catalog entry with available stock.
type Product struct {
	ID         string
	SKU        string
	Name       string
	PriceMinor int64
	Currency   string
	Stock      int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CheckoutItem is a requested product/quantity pair.
type CheckoutItem struct {
	ProductID string
	Quantity  int64
}
