package dto

import "time"

// ProductRequest creates a catalog entry.
type ProductRequest struct {
	SKU        string `json:"sku" binding:"required"`
	Name       string `json:"name" binding:"required"`
	PriceMinor int64  `json:"price_minor"`
	Currency   string `json:"currency" binding:"required"`
	Stock      int64  `json:"stock"`
}

// ProductResponse represents a catalog entry.
type ProductResponse struct {
	ID         string    `json:"id"`
	SKU        string    `json:"sku"`
	Name       string    `json:"name"`
	PriceMinor int64     `json:"price_minor"`
	Currency   string    `json:"currency"`
	Stock      int64     `json:"stock"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
