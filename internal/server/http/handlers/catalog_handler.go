package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/maxbelov/shopgate/internal/domain/errors"
	"github.com/maxbelov/shopgate/internal/domain/model"
	"github.com/maxbelov/shopgate/internal/server/http/dto"
)

// CatalogHandler manages product endpoints.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// List handles GET /api/products.
func (h *CatalogHandler) List(c *gin.Context) {
	products, err := h.facade.Products(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to list products"})
		return
	}

	response := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// Create handles POST /api/products.
func (h *CatalogHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid product payload"})
		return
	}

	product, err := h.facade.CreateProduct(c.Request.Context(), req.SKU, req.Name, req.PriceMinor, req.Currency, req.Stock)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "sku already exists"})
		case errors.Is(err, domainErrors.ErrInvalidProduct):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to create product"})
		}
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(*product))
}

func toProductResponse(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:         p.ID,
		SKU:        p.SKU,
		Name:       p.Name,
		PriceMinor: p.PriceMinor,
		Currency:   p.Currency,
		Stock:      p.Stock,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
