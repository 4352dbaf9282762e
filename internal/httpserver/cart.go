package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"gamestore/internal/domain"
	"gamestore/internal/pricing"
)

type addItemRequest struct {
	ProductID        int                     `json:"product_id" binding:"required"`
	Quantity         int                     `json:"quantity"`
	CustomFields     map[string]any          `json:"custom_fields"`
	SubscriptionType domain.SubscriptionType `json:"subscription_type"`
}

type itemSelectorRequest struct {
	ProductID    int            `json:"product_id" binding:"required"`
	CustomFields map[string]any `json:"custom_fields"`
}

type updateQuantityRequest struct {
	ProductID    int            `json:"product_id" binding:"required"`
	Quantity     int            `json:"quantity"`
	CustomFields map[string]any `json:"custom_fields"`
}

type updateCustomFieldsRequest struct {
	ProductID    int            `json:"product_id" binding:"required"`
	Fields       map[string]any `json:"fields" binding:"required"`
	CustomFields map[string]any `json:"custom_fields"`
}

type updateServerSelectionRequest struct {
	ProductID    int            `json:"product_id" binding:"required"`
	ServerID     int            `json:"server_id" binding:"required"`
	CustomFields map[string]any `json:"custom_fields"`
}

type updateDonationRequest struct {
	ProductID    int            `json:"product_id" binding:"required"`
	Amount       float64        `json:"amount" binding:"required"`
	CustomFields map[string]any `json:"custom_fields"`
}

type updateSubscriptionTypeRequest struct {
	ProductID        int                     `json:"product_id" binding:"required"`
	SubscriptionType domain.SubscriptionType `json:"subscription_type" binding:"required"`
	CustomFields     map[string]any          `json:"custom_fields"`
}

func getCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.Get(c.Request.Context(), sessionID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// addItemHandler looks the product up server side so prices and stock limits
// always come from the provider, never from the request body.
func addItemHandler(store StoreService, svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product, err := store.Product(c.Request.Context(), req.ProductID, true)
		if err != nil {
			respondError(c, err)
			return
		}

		if msg, ok := validateSelections(*product, req.CustomFields); !ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg})
			return
		}

		view, err := svc.AddItem(c.Request.Context(), sessionID(c), *product, req.Quantity, req.CustomFields, req.SubscriptionType)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func removeItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req itemSelectorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		view, err := svc.RemoveItem(c.Request.Context(), sessionID(c), req.ProductID, req.CustomFields)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func removeItemByIndexHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil || index < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item index"})
			return
		}
		view, err := svc.RemoveItemByIndex(c.Request.Context(), sessionID(c), index)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func updateQuantityHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		view, err := svc.UpdateQuantity(c.Request.Context(), sessionID(c), req.ProductID, req.Quantity, req.CustomFields)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func updateCustomFieldsHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateCustomFieldsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		view, err := svc.UpdateCustomFields(c.Request.Context(), sessionID(c), req.ProductID, req.Fields, req.CustomFields)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func updateServerSelectionHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateServerSelectionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		view, err := svc.UpdateServerSelection(c.Request.Context(), sessionID(c), req.ProductID, req.ServerID, req.CustomFields)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func updateDonationHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateDonationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Amount <= 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "donation amount must be positive"})
			return
		}
		view, err := svc.UpdateDonationAmount(c.Request.Context(), sessionID(c), req.ProductID, req.Amount, req.CustomFields)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func updateSubscriptionTypeHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateSubscriptionTypeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.SubscriptionType != domain.SubscriptionOnetime && req.SubscriptionType != domain.SubscriptionRecurring {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "subscription_type must be onetime or recurring"})
			return
		}
		view, err := svc.UpdateSubscriptionType(c.Request.Context(), sessionID(c), req.ProductID, req.SubscriptionType, req.CustomFields)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func clearCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.Clear(c.Request.Context(), sessionID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// validateSelections enforces required custom fields and custom rules before
// an item enters the cart.
func validateSelections(product domain.Product, selections map[string]any) (string, bool) {
	if missing := pricing.MissingRequired(product, selections); len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, f := range missing {
			names = append(names, f.Name)
		}
		return "missing required fields: " + strings.Join(names, ", "), false
	}
	validations := pricing.ValidateRules(product.CustomRules, selections)
	if !pricing.AllRulesValid(validations) {
		return pricing.RulesErrorMessage(validations), false
	}
	return "", true
}
