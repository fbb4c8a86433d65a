package dto

// AckResponse acknowledges a webhook delivery.
type AckResponse struct {
	Received bool `json:"received"`
}

// ErrorResponse carries the failure cause.
type ErrorResponse struct {
	Error string `json:"error"`
}
