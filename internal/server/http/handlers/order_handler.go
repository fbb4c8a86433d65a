package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/maxbelov/shopgate/internal/domain/errors"
	"github.com/maxbelov/shopgate/internal/domain/model"
	"github.com/maxbelov/shopgate/internal/server/http/dto"
)

// OrderHandler manages the admin order endpoints.
type OrderHandler struct {
	facade       OrderFacade
	defaultLimit int
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, defaultLimit int) *OrderHandler {
	if defaultLimit <= 0 {
		defaultLimit = 100
	}
	return &OrderHandler{facade: facade, defaultLimit: defaultLimit}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	limit := h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	orders, err := h.facade.Orders(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to list orders"})
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to load order"})
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// UpdateStatus handles PATCH /api/orders/:id/status. Only fulfillment
// transitions are accepted; payment-driven statuses belong to the
// reconciler.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.OrderStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid status payload"})
		return
	}

	target := model.OrderStatus(req.Status)
	switch target {
	case model.OrderStatusShipped, model.OrderStatusDelivered, model.OrderStatusCancelled:
	default:
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "status must be Shipped, Delivered or Cancelled"})
		return
	}

	err := h.facade.AdvanceFulfillment(c.Request.Context(), c.Param("id"), target)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "order not found"})
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to update order"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:               o.ID,
		PaymentReference: o.PaymentReference,
		Status:           string(o.Status),
		AmountMinor:      o.AmountMinor,
		Currency:         o.Currency,
		FailureReason:    o.FailureReason,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}
