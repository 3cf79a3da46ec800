package handlers

import (
	"github.com/gin-gonic/gin"
)

// attachError records err on the gin context; the observability middleware
// logs it as the request's failure reason.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck // returns *gin.Error, nothing to handle
	}
}

// respondError writes the {"error": message} body every client of this API expects
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message})
}
