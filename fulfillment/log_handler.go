package fulfillment

import (
	"context"

	"checkout-service/models"

	"go.uber.org/zap"
)

// LogHandler is the default Handler: it records every event with structured
// logging and performs no real fulfillment. It keeps the demo observable
// until the downstream systems (mailer, access provisioning) exist.
type LogHandler struct {
	logger *zap.Logger
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(logger *zap.Logger) *LogHandler {
	return &LogHandler{logger: logger}
}

func (h *LogHandler) log(event *models.WebhookEvent, msg string, extra ...zap.Field) {
	fields := []zap.Field{
		zap.String("event_type", event.RawKind),
		zap.String("order_id", event.OrderID),
		zap.String("customer_id", event.CustomerID),
	}
	h.logger.Info(msg, append(fields, extra...)...)
}

func (h *LogHandler) OrderCreated(_ context.Context, event *models.WebhookEvent) error {
	h.log(event, "Order created",
		zap.String("email", event.Field("email_address", "email")),
		zap.String("total", event.Field("total_amount", "amount", "total")),
	)
	return nil
}

func (h *LogHandler) OrderSuccess(_ context.Context, event *models.WebhookEvent) error {
	h.log(event, "Order payment succeeded",
		zap.String("email", event.Field("email_address", "email")),
	)
	return nil
}

func (h *LogHandler) OrderDeclined(_ context.Context, event *models.WebhookEvent) error {
	h.log(event, "Order declined",
		zap.String("reason", event.Field("decline_reason", "reason")),
	)
	return nil
}

func (h *LogHandler) SubscriptionCreated(_ context.Context, event *models.WebhookEvent) error {
	h.log(event, "Subscription created",
		zap.String("subscription_id", event.Field("subscription_id")),
		zap.String("next_bill_date", event.Field("next_bill_date")),
	)
	return nil
}

func (h *LogHandler) SubscriptionCancelled(_ context.Context, event *models.WebhookEvent) error {
	h.log(event, "Subscription cancelled",
		zap.String("subscription_id", event.Field("subscription_id")),
	)
	return nil
}

func (h *LogHandler) SubscriptionRenewed(_ context.Context, event *models.WebhookEvent) error {
	h.log(event, "Subscription renewed",
		zap.String("subscription_id", event.Field("subscription_id")),
	)
	return nil
}

func (h *LogHandler) RefundIssued(_ context.Context, event *models.WebhookEvent) error {
	h.log(event, "Refund issued",
		zap.String("refund_amount", event.Field("refund_amount")),
	)
	return nil
}

func (h *LogHandler) Chargeback(_ context.Context, event *models.WebhookEvent) error {
	h.log(event, "Chargeback received",
		zap.String("chargeback_amount", event.Field("chargeback_amount")),
		zap.String("chargeback_reason", event.Field("chargeback_reason")),
	)
	return nil
}

func (h *LogHandler) Void(_ context.Context, event *models.WebhookEvent) error {
	h.log(event, "Order voided")
	return nil
}

func (h *LogHandler) Cancel(_ context.Context, event *models.WebhookEvent) error {
	h.log(event, "Order cancelled")
	return nil
}

func (h *LogHandler) Unknown(_ context.Context, event *models.WebhookEvent) error {
	h.logger.Warn("Unhandled webhook event",
		zap.String("event_type", event.RawKind),
		zap.Any("payload", event.Payload),
	)
	return nil
}
