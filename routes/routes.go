package routes

import (
	"net/http"
	"time"

	"checkout-service/controllers"
	"checkout-service/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RegisterRoutes wires all HTTP routes. Debug routes are only registered
// when debug is true (non-production).
func RegisterRoutes(r *gin.Engine, cc *controllers.CheckoutController, wc *controllers.WebhookController, dc *controllers.DebugController, debug bool) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	api := r.Group("/api")

	api.POST("/checkout", middleware.RateLimit(rate.Every(time.Minute/100), 50), cc.Submit)

	webhooks := api.Group("/webhooks")
	webhooks.POST("/gateway", wc.Receive)
	webhooks.GET("/gateway", wc.Verify)

	if debug {
		dbg := api.Group("/debug")
		dbg.POST("/test-connection", dc.TestConnection)
		dbg.POST("/test-order", dc.TestOrder)
	}
}
