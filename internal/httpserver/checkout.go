package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gamestore/internal/domain"
)

type checkoutRequest struct {
	User domain.CheckoutUser `json:"user" binding:"required"`
}

func checkoutIdentifiersHandler(carts CartService, svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := carts.Entries(c.Request.Context(), sessionID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		if len(entries) == 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "cart is empty"})
			return
		}
		resp, err := svc.Identifiers(c.Request.Context(), entries)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func checkoutHandler(carts CartService, svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		entries, err := carts.Entries(c.Request.Context(), sessionID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		if len(entries) == 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "cart is empty"})
			return
		}

		resp, err := svc.Checkout(c.Request.Context(), entries, req.User)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
