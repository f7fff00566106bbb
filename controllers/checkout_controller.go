package controllers

import (
	"net/http"

	"checkout-service/models"
	"checkout-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckoutController handles checkout form submissions.
type CheckoutController struct {
	Service services.CheckoutService
	Logger  *zap.Logger
}

// NewCheckoutController creates a new CheckoutController.
func NewCheckoutController(svc services.CheckoutService, logger *zap.Logger) *CheckoutController {
	return &CheckoutController{Service: svc, Logger: logger}
}

// Submit accepts the browser checkout form and creates the gateway orders.
//
// Responses:
//   - 200 on at least one successful line item (partial success included)
//   - 400 when the product list is missing or empty
//   - 500 with per-item detail when every line item failed
//   - 500 {error, details} on anything else
func (cc *CheckoutController) Submit(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		cc.Logger.Error("Checkout body unreadable", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Order processing failed",
			"details": err.Error(),
		})
		return
	}

	cc.Logger.Info("Processing checkout",
		zap.String("email", req.Email),
		zap.Int("products", len(req.Products)),
		zap.Float64("total_amount", req.TotalAmount),
	)

	result, svcErr := cc.Service.Submit(c.Request.Context(), &req, c.ClientIP())
	if svcErr != nil {
		if result != nil {
			// Every line item failed: full per-item detail so the front end
			// can render what happened.
			c.JSON(svcErr.StatusCode, gin.H{
				"success": false,
				"message": svcErr.Message,
				"orders":  result.Orders,
			})
			return
		}
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, result)
}
