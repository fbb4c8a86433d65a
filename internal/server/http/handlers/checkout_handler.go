package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/maxbelov/shopgate/internal/domain/errors"
	"github.com/maxbelov/shopgate/internal/domain/model"
	"github.com/maxbelov/shopgate/internal/server/http/dto"
)

// CheckoutHandler manages the checkout endpoint.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Checkout handles POST /api/checkout.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid checkout payload"})
		return
	}

	items := make([]model.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.CheckoutItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, clientSecret, err := h.facade.Checkout(c.Request.Context(), items)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyCheckout),
			errors.Is(err, domainErrors.ErrInvalidQuantity),
			errors.Is(err, domainErrors.ErrCurrencyMismatch):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "unknown product"})
		case errors.Is(err, domainErrors.ErrInsufficientStock):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: domainErrors.ErrInsufficientStock.Error()})
		case errors.Is(err, domainErrors.ErrPaymentsDisabled):
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: domainErrors.ErrPaymentsDisabled.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "checkout failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.CheckoutResponse{
		OrderID:          order.ID,
		PaymentReference: order.PaymentReference,
		ClientSecret:     clientSecret,
		AmountMinor:      order.AmountMinor,
		Currency:         order.Currency,
	})
}
