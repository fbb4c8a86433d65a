package dto

// CheckoutItemRequest is a product/quantity pair in a checkout.
type CheckoutItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required"`
}

// CheckoutRequest is the checkout payload.
type CheckoutRequest struct {
	Items []CheckoutItemRequest `json:"items" binding:"required"`
}

// CheckoutResponse returns the created order and the intent client secret.
type CheckoutResponse struct {
	OrderID          string `json:"order_id"`
	PaymentReference string `json:"payment_reference"`
	ClientSecret     string `json:"client_secret"`
	AmountMinor      int64  `json:"amount_minor"`
	Currency         string `json:"currency"`
}
