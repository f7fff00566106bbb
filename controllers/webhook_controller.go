package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"checkout-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Signature header names the gateway has used across dashboard versions.
const (
	sigHeaderPrimary = "X-Gateway-Signature"
	sigHeaderLegacy  = "X-Webhook-Signature"
)

// WebhookController receives gateway callbacks.
type WebhookController struct {
	Service services.WebhookService
	Secret  string // shared HMAC secret; empty disables verification
	Logger  *zap.Logger
}

// NewWebhookController creates a new WebhookController.
func NewWebhookController(svc services.WebhookService, secret string, logger *zap.Logger) *WebhookController {
	return &WebhookController{Service: svc, Secret: secret, Logger: logger}
}

// Receive handles webhook deliveries. Verification runs only when both a
// configured secret and a signature header are present; a mismatch is the
// single case that refuses receipt. Everything else acknowledges with 200,
// including unusable bodies, so the sender does not retry-storm payloads it
// can never deliver differently.
func (wc *WebhookController) Receive(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		wc.Logger.Error("Failed to read webhook body", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{
			"success":   false,
			"error":     "Webhook processing failed",
			"message":   err.Error(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	signature := c.GetHeader(sigHeaderPrimary)
	if signature == "" {
		signature = c.GetHeader(sigHeaderLegacy)
	}

	wc.Logger.Info("Webhook received",
		zap.Bool("signature_present", signature != ""),
		zap.Int("body_length", len(body)),
		zap.String("content_type", c.ContentType()),
	)

	if wc.Secret != "" && signature != "" {
		if !verifySignature(body, signature, wc.Secret) {
			wc.Logger.Warn("Webhook signature mismatch")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
			return
		}
	}

	ack := wc.Service.Process(c.Request.Context(), body)
	c.JSON(http.StatusOK, ack)
}

// Verify answers the gateway's endpoint checks: a challenge echo for the
// verification handshake, otherwise a liveness payload.
func (wc *WebhookController) Verify(c *gin.Context) {
	if challenge := c.Query("challenge"); challenge != "" {
		c.String(http.StatusOK, challenge)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "Webhook endpoint is active and ready",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"endpoint":  c.FullPath(),
	})
}

// verifySignature checks a hex HMAC-SHA256 of the raw body.
func verifySignature(body []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
