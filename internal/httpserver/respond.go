package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gamestore/internal/domain"
	"gamestore/internal/provider"
)

// respondError maps service errors onto HTTP responses. Provider errors keep
// their upstream status and normalized message.
func respondError(c *gin.Context, err error) {
	if provErr, ok := provider.AsError(err); ok {
		c.JSON(provErr.Status, gin.H{"error": provErr.Message})
		return
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrBadResponse):
		c.JSON(http.StatusBadGateway, gin.H{"error": "invalid upstream response"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
