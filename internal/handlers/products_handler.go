package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oreline/careers-api/internal/services"
	apperrors "github.com/oreline/careers-api/pkg/errors"
)

type ProductsHandler struct {
	service services.ProductServiceInterface
}

func NewProductsHandler(service services.ProductServiceInterface) *ProductsHandler {
	return &ProductsHandler{service: service}
}

// Search handles GET /api/products/search?q=
func (h *ProductsHandler) Search(c *gin.Context) {
	products, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, apperrors.ErrUnavailable) {
			status = http.StatusBadGateway
		}
		respondError(c, status, "Failed to fetch search products", err)
		return
	}

	c.Header("Cache-Control", "public, max-age=60")
	c.JSON(http.StatusOK, products)
}
