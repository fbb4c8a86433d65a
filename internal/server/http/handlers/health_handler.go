package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxbelov/shopgate/internal/server/http/dto"
)

// HealthHandler reports service liveness.
type HealthHandler struct {
	facade HealthFacade
}

// NewHealthHandler constructs HealthHandler.
func NewHealthHandler(facade HealthFacade) *HealthHandler {
	return &HealthHandler{facade: facade}
}

// Ping handles GET /healthz.
func (h *HealthHandler) Ping(c *gin.Context) {
	if err := h.facade.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "storage unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
