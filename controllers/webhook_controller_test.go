package controllers_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"checkout-service/controllers"
	"checkout-service/fulfillment"
	"checkout-service/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func setupWebhookRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := services.NewWebhookService(fulfillment.NewLogHandler(zap.NewNop()), zap.NewNop())
	wc := controllers.NewWebhookController(svc, secret, zap.NewNop())
	r.POST("/api/webhooks/gateway", wc.Receive)
	r.GET("/api/webhooks/gateway", wc.Verify)
	return r
}

func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestReceive_OrderSuccess(t *testing.T) {
	r := setupWebhookRouter("")

	body := []byte(`{"event_type":"order_success","order_id":"42"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/gateway", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "42", resp["orderId"])
}

func TestReceive_UnknownEventAcksOK(t *testing.T) {
	r := setupWebhookRouter("")

	body := []byte(`{"event_type":"brand_new_event"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/gateway", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
}

func TestReceive_UnparsableBodyStillAcks(t *testing.T) {
	r := setupWebhookRouter("")

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/gateway", bytes.NewReader([]byte(`%zz&%%%`)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "malformed payloads are acknowledged, never 500")
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
}

func TestReceive_ValidSignature(t *testing.T) {
	secret := "whsec_test"
	r := setupWebhookRouter(secret)

	body := []byte(`{"event_type":"order_created","order_id":"5"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/gateway", bytes.NewReader(body))
	req.Header.Set("X-Gateway-Signature", sign(body, secret))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReceive_LegacySignatureHeader(t *testing.T) {
	secret := "whsec_test"
	r := setupWebhookRouter(secret)

	body := []byte(`{"event_type":"order_created","order_id":"5"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/gateway", bytes.NewReader(body))
	req.Header.Set("X-Webhook-Signature", sign(body, secret))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReceive_SignatureMismatch(t *testing.T) {
	r := setupWebhookRouter("whsec_test")

	body := []byte(`{"event_type":"order_created"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/gateway", bytes.NewReader(body))
	req.Header.Set("X-Gateway-Signature", "deadbeef")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReceive_NoHeaderSkipsVerification(t *testing.T) {
	// A configured secret alone must not reject unsigned deliveries: the
	// gateway does not sign every event type.
	r := setupWebhookRouter("whsec_test")

	body := []byte(`{"event_type":"order_created","order_id":"5"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/gateway", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerify_ChallengeEcho(t *testing.T) {
	r := setupWebhookRouter("")

	req := httptest.NewRequest(http.MethodGet, "/api/webhooks/gateway?challenge=abc123", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc123", w.Body.String())
}

func TestVerify_Liveness(t *testing.T) {
	r := setupWebhookRouter("")

	req := httptest.NewRequest(http.MethodGet, "/api/webhooks/gateway", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["status"], "active")
}
