package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"checkout-service/config"
	"checkout-service/models"
	"checkout-service/providers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DebugController exposes gateway-probing endpoints used while integrating
// against the (poorly documented) order API. Routes are only registered
// outside production.
type DebugController struct {
	Config  *config.Config
	Gateway providers.OrderGateway
	Logger  *zap.Logger

	httpClient *http.Client
}

// NewDebugController creates a new DebugController.
func NewDebugController(cfg *config.Config, gateway providers.OrderGateway, logger *zap.Logger) *DebugController {
	return &DebugController{
		Config:  cfg,
		Gateway: gateway,
		Logger:  logger,
		httpClient: &http.Client{
			Timeout: cfg.GatewayTimeout,
		},
	}
}

// TestConnection probes the gateway's read-only discovery endpoints with the
// configured credentials and reports per-endpoint status.
func (dc *DebugController) TestConnection(c *gin.Context) {
	if !dc.Config.HasGatewayCredentials() {
		c.JSON(http.StatusOK, gin.H{
			"error":    "API credentials not found in environment variables",
			"username": credentialState(dc.Config.GatewayUsername),
			"password": credentialState(dc.Config.GatewayPassword),
		})
		return
	}

	endpoints := []string{
		strings.TrimRight(dc.Config.GatewayURL, "/") + "/campaign_find",
		strings.TrimRight(dc.Config.GatewayURL, "/") + "/product_index",
	}

	tests := make([]gin.H, 0, len(endpoints))
	for _, endpoint := range endpoints {
		tests = append(tests, dc.probe(c.Request.Context(), endpoint))
	}

	c.JSON(http.StatusOK, gin.H{
		"credentials": gin.H{
			"username":       dc.Config.GatewayUsername,
			"passwordLength": len(dc.Config.GatewayPassword),
		},
		"tests": tests,
	})
}

func (dc *DebugController) probe(ctx context.Context, endpoint string) gin.H {
	payload, _ := json.Marshal(map[string]string{
		"start_date": "2025-01-01",
		"end_date":   "2025-12-31",
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(payload)))
	if err != nil {
		return gin.H{"endpoint": endpoint, "error": err.Error()}
	}
	req.SetBasicAuth(dc.Config.GatewayUsername, dc.Config.GatewayPassword)
	req.Header.Set("Content-Type", "application/json")

	resp, err := dc.httpClient.Do(req)
	if err != nil {
		return gin.H{"endpoint": endpoint, "error": err.Error()}
	}
	defer resp.Body.Close()

	var decoded interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		decoded = "unparsable response body"
	}

	return gin.H{
		"endpoint": endpoint,
		"status":   resp.StatusCode,
		"success":  resp.StatusCode >= 200 && resp.StatusCode < 300,
		"response": decoded,
	}
}

// TestOrder submits one fixed known-good order through the gateway client,
// exercising the full field mapping without a browser form.
func (dc *DebugController) TestOrder(c *gin.Context) {
	req := &models.CheckoutRequest{
		FirstName:      "Test",
		LastName:       "User",
		Email:          "test@example.com",
		Phone:          "5555551234",
		BillingAddress: "123 Test St",
		BillingCity:    "Los Angeles",
		BillingState:   "CA",
		BillingZip:     "90001",
		BillingCountry: "US",
		CardNumber:     "4111111111111111",
		CardExpMonth:   "12",
		CardExpYear:    "2025",
		CardCvv:        "123",
	}
	item := models.LineItem{ProductID: models.PrimaryProductID, Price: 69.00}

	params := providers.BuildOrderParams(req, item, providers.OrderLinkage{}, c.ClientIP(), dc.Config.GatewayTestMode)

	start := time.Now()
	resp, err := dc.Gateway.CreateOrder(c.Request.Context(), params)
	if err != nil {
		dc.Logger.Error("Test order failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"formDataSent": params,
		"response":     json.RawMessage(resp.Raw),
		"success":      resp.Succeeded(),
		"orderId":      resp.OrderID,
		"latencyMs":    time.Since(start).Milliseconds(),
	})
}

func credentialState(value string) string {
	if value != "" {
		return "Found"
	}
	return "Missing"
}
