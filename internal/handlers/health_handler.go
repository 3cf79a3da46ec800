package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	uploadsWritable func() error
}

// NewHealthHandler takes a probe that fails when CVs cannot be written
func NewHealthHandler(uploadsWritable func() error) *HealthHandler {
	return &HealthHandler{
		uploadsWritable: uploadsWritable,
	}
}

func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	if err := h.uploadsWritable(); err != nil {
		attachError(c, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"reason": "uploads directory not writable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
