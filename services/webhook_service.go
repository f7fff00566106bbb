package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"checkout-service/fulfillment"
	"checkout-service/models"

	"go.uber.org/zap"
)

// WebhookAck is the acknowledgement body returned for every webhook
// delivery. Receipt is acknowledged even when the payload is unusable: the
// sender would only retry-storm the same malformed body otherwise.
type WebhookAck struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
	OrderID    string `json:"orderId,omitempty"`
	CustomerID string `json:"customerId,omitempty"`
	Timestamp  string `json:"timestamp"`
}

// WebhookService classifies inbound gateway callbacks and dispatches them to
// the fulfillment handler. It owns no fulfillment logic itself.
type WebhookService interface {
	Process(ctx context.Context, raw []byte) WebhookAck
}

type webhookServiceImpl struct {
	handler fulfillment.Handler
	logger  *zap.Logger
}

// NewWebhookService creates a new WebhookService.
func NewWebhookService(handler fulfillment.Handler, logger *zap.Logger) WebhookService {
	return &webhookServiceImpl{handler: handler, logger: logger}
}

// Process normalizes a raw webhook body and dispatches it. Parse failures
// never propagate: the fallback chain is JSON, then form-encoding, then a
// success:false acknowledgement.
func (s *webhookServiceImpl) Process(ctx context.Context, raw []byte) WebhookAck {
	now := time.Now().UTC().Format(time.RFC3339)

	payload, err := decodePayload(raw)
	if err != nil {
		s.logger.Warn("Webhook body unparsable", zap.Error(err), zap.Int("body_length", len(raw)))
		return WebhookAck{
			Success:   false,
			Error:     "Webhook processing failed",
			Message:   err.Error(),
			Timestamp: now,
		}
	}

	rawKind := models.PayloadField(payload, "event_type", "eventType", "action", "type")
	if rawKind == "" {
		rawKind = "unknown"
	}

	event := &models.WebhookEvent{
		Kind:       models.ParseEventKind(rawKind),
		RawKind:    rawKind,
		OrderID:    models.PayloadField(payload, "order_id", "orderId", "id"),
		CustomerID: models.PayloadField(payload, "customer_id", "customerId"),
		Payload:    payload,
		ReceivedAt: time.Now().UTC(),
	}

	s.logger.Info("Processing webhook event",
		zap.String("event_type", rawKind),
		zap.String("kind", event.Kind.String()),
		zap.String("order_id", event.OrderID),
	)

	if err := s.dispatch(ctx, event); err != nil {
		// Handler failures are logged, not surfaced: the ack depends only
		// on parse and dispatch, not on fulfillment outcomes.
		s.logger.Error("Webhook handler failed",
			zap.String("kind", event.Kind.String()),
			zap.String("order_id", event.OrderID),
			zap.Error(err),
		)
	}

	return WebhookAck{
		Success:    true,
		Message:    fmt.Sprintf("Webhook %s processed successfully", rawKind),
		OrderID:    event.OrderID,
		CustomerID: event.CustomerID,
		Timestamp:  now,
	}
}

// dispatch routes the event to the handler method for its kind. The switch
// is exhaustive over the EventKind enum.
func (s *webhookServiceImpl) dispatch(ctx context.Context, event *models.WebhookEvent) error {
	switch event.Kind {
	case models.EventOrderCreated:
		return s.handler.OrderCreated(ctx, event)
	case models.EventOrderSuccess:
		return s.handler.OrderSuccess(ctx, event)
	case models.EventOrderDeclined:
		return s.handler.OrderDeclined(ctx, event)
	case models.EventSubscriptionCreated:
		return s.handler.SubscriptionCreated(ctx, event)
	case models.EventSubscriptionCancelled:
		return s.handler.SubscriptionCancelled(ctx, event)
	case models.EventSubscriptionRenewed:
		return s.handler.SubscriptionRenewed(ctx, event)
	case models.EventRefundIssued:
		return s.handler.RefundIssued(ctx, event)
	case models.EventChargeback:
		return s.handler.Chargeback(ctx, event)
	case models.EventVoid:
		return s.handler.Void(ctx, event)
	case models.EventCancel:
		return s.handler.Cancel(ctx, event)
	default:
		return s.handler.Unknown(ctx, event)
	}
}

// decodePayload tries JSON first, then URL-encoded form data.
func decodePayload(raw []byte) (map[string]interface{}, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err == nil {
		return payload, nil
	}

	values, err := url.ParseQuery(string(raw))
	if err != nil || len(values) == 0 {
		return nil, fmt.Errorf("body is neither JSON nor form-encoded")
	}

	payload = make(map[string]interface{}, len(values))
	for key := range values {
		payload[key] = values.Get(key)
	}
	return payload, nil
}
