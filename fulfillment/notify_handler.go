package fulfillment

import (
	"context"
	"fmt"

	"checkout-service/models"
	"checkout-service/sender"

	"go.uber.org/zap"
)

// NotifyHandler is a Handler that emails the customer on the events that
// warrant it and logs the rest. Email failures are reported to the caller;
// the webhook router decides they never fail the acknowledgement.
type NotifyHandler struct {
	mailer sender.EmailSender
	logger *zap.Logger
}

// NewNotifyHandler creates a new NotifyHandler.
func NewNotifyHandler(mailer sender.EmailSender, logger *zap.Logger) *NotifyHandler {
	return &NotifyHandler{mailer: mailer, logger: logger}
}

func (h *NotifyHandler) email(ctx context.Context, event *models.WebhookEvent, subject, body string) error {
	to := event.Field("email_address", "email")
	if to == "" {
		h.logger.Warn("No customer email on webhook event, skipping notification",
			zap.String("event_type", event.RawKind),
			zap.String("order_id", event.OrderID),
		)
		return nil
	}

	res, err := h.mailer.SendEmail(ctx, to, subject, body)
	if err != nil {
		return fmt.Errorf("send %q to %s: %w", subject, to, err)
	}
	h.logger.Info("Notification sent",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("message_id", res.MessageID),
	)
	return nil
}

func customerName(event *models.WebhookEvent) string {
	first := event.Field("first_name", "firstName")
	last := event.Field("last_name", "lastName")
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	default:
		return "customer"
	}
}

func (h *NotifyHandler) OrderCreated(ctx context.Context, event *models.WebhookEvent) error {
	body := fmt.Sprintf("<p>Hi %s,</p><p>We received your order %s and are processing your payment.</p>",
		customerName(event), event.OrderID)
	return h.email(ctx, event, "Order confirmation", body)
}

func (h *NotifyHandler) OrderSuccess(ctx context.Context, event *models.WebhookEvent) error {
	h.logger.Info("Activating customer access",
		zap.String("customer_id", event.CustomerID),
		zap.Any("products", event.Payload["products"]),
	)
	body := fmt.Sprintf("<p>Welcome %s!</p><p>Your order %s is confirmed and your account is ready.</p>",
		customerName(event), event.OrderID)
	return h.email(ctx, event, "Welcome aboard", body)
}

func (h *NotifyHandler) OrderDeclined(ctx context.Context, event *models.WebhookEvent) error {
	reason := event.Field("decline_reason", "reason")
	if reason == "" {
		reason = "Payment failed"
	}
	body := fmt.Sprintf("<p>Hi %s,</p><p>Your payment for order %s was declined: %s.</p>",
		customerName(event), event.OrderID, reason)
	return h.email(ctx, event, "Payment failed", body)
}

func (h *NotifyHandler) SubscriptionCreated(_ context.Context, event *models.WebhookEvent) error {
	h.logger.Info("Subscription record created",
		zap.String("subscription_id", event.Field("subscription_id")),
		zap.String("customer_id", event.CustomerID),
		zap.String("next_bill_date", event.Field("next_bill_date")),
	)
	return nil
}

func (h *NotifyHandler) SubscriptionCancelled(ctx context.Context, event *models.WebhookEvent) error {
	h.logger.Info("Cancelling subscription access",
		zap.String("subscription_id", event.Field("subscription_id")),
		zap.String("customer_id", event.CustomerID),
	)
	body := fmt.Sprintf("<p>Hi %s,</p><p>Your subscription has been cancelled. Access ends on %s.</p>",
		customerName(event), event.Field("cancellation_date"))
	return h.email(ctx, event, "Subscription cancelled", body)
}

func (h *NotifyHandler) SubscriptionRenewed(_ context.Context, event *models.WebhookEvent) error {
	h.logger.Info("Renewing subscription access",
		zap.String("subscription_id", event.Field("subscription_id")),
		zap.String("customer_id", event.CustomerID),
	)
	return nil
}

func (h *NotifyHandler) RefundIssued(_ context.Context, event *models.WebhookEvent) error {
	h.logger.Info("Refund processed",
		zap.String("order_id", event.OrderID),
		zap.String("refund_amount", event.Field("refund_amount")),
		zap.String("refund_reason", event.Field("refund_reason")),
	)
	return nil
}

func (h *NotifyHandler) Chargeback(_ context.Context, event *models.WebhookEvent) error {
	// Chargebacks need operator attention, not customer email.
	h.logger.Warn("Chargeback alert",
		zap.String("order_id", event.OrderID),
		zap.String("chargeback_amount", event.Field("chargeback_amount")),
		zap.String("chargeback_reason", event.Field("chargeback_reason")),
	)
	return nil
}

func (h *NotifyHandler) Void(_ context.Context, event *models.WebhookEvent) error {
	h.logger.Info("Order voided", zap.String("order_id", event.OrderID))
	return nil
}

func (h *NotifyHandler) Cancel(_ context.Context, event *models.WebhookEvent) error {
	h.logger.Info("Order cancelled", zap.String("order_id", event.OrderID))
	return nil
}

func (h *NotifyHandler) Unknown(_ context.Context, event *models.WebhookEvent) error {
	h.logger.Warn("Unhandled webhook event",
		zap.String("event_type", event.RawKind),
		zap.Any("payload", event.Payload),
	)
	return nil
}
