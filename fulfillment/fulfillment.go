package fulfillment

import (
	"context"

	"checkout-service/models"
)

// Handler is the capability interface webhook dispatch targets. One method
// per recognized event kind plus a catch-all; implementations own the actual
// fulfillment side effects (email, access provisioning, subscription
// bookkeeping), the router only classifies and dispatches.
type Handler interface {
	OrderCreated(ctx context.Context, event *models.WebhookEvent) error
	OrderSuccess(ctx context.Context, event *models.WebhookEvent) error
	OrderDeclined(ctx context.Context, event *models.WebhookEvent) error
	SubscriptionCreated(ctx context.Context, event *models.WebhookEvent) error
	SubscriptionCancelled(ctx context.Context, event *models.WebhookEvent) error
	SubscriptionRenewed(ctx context.Context, event *models.WebhookEvent) error
	RefundIssued(ctx context.Context, event *models.WebhookEvent) error
	Chargeback(ctx context.Context, event *models.WebhookEvent) error
	Void(ctx context.Context, event *models.WebhookEvent) error
	Cancel(ctx context.Context, event *models.WebhookEvent) error
	Unknown(ctx context.Context, event *models.WebhookEvent) error
}
