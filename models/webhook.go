package models

import (
	"strings"
	"time"
)

// EventKind is the closed set of webhook event types the gateway sends.
// Unrecognized payloads map to EventUnknown instead of failing dispatch.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventOrderCreated
	EventOrderSuccess
	EventOrderDeclined
	EventSubscriptionCreated
	EventSubscriptionCancelled
	EventSubscriptionRenewed
	EventRefundIssued
	EventChargeback
	EventVoid
	EventCancel
)

// String returns the canonical name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventOrderCreated:
		return "order_created"
	case EventOrderSuccess:
		return "order_success"
	case EventOrderDeclined:
		return "order_declined"
	case EventSubscriptionCreated:
		return "subscription_created"
	case EventSubscriptionCancelled:
		return "subscription_cancelled"
	case EventSubscriptionRenewed:
		return "subscription_renewed"
	case EventRefundIssued:
		return "refund_issued"
	case EventChargeback:
		return "chargeback"
	case EventVoid:
		return "void"
	case EventCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// eventAliases covers every spelling the gateway has been observed sending.
var eventAliases = map[string]EventKind{
	"order_created":          EventOrderCreated,
	"order.created":          EventOrderCreated,
	"created":                EventOrderCreated,
	"order_success":          EventOrderSuccess,
	"order.success":          EventOrderSuccess,
	"approved":               EventOrderSuccess,
	"success":                EventOrderSuccess,
	"order_declined":         EventOrderDeclined,
	"order.declined":         EventOrderDeclined,
	"declined":               EventOrderDeclined,
	"subscription_created":   EventSubscriptionCreated,
	"subscription.created":   EventSubscriptionCreated,
	"subscription_cancelled": EventSubscriptionCancelled,
	"subscription.cancelled": EventSubscriptionCancelled,
	"cancelled":              EventSubscriptionCancelled,
	"subscription_renewed":   EventSubscriptionRenewed,
	"subscription.renewed":   EventSubscriptionRenewed,
	"renewed":                EventSubscriptionRenewed,
	"refund_issued":          EventRefundIssued,
	"refund.issued":          EventRefundIssued,
	"refund":                 EventRefundIssued,
	"chargeback":             EventChargeback,
	"chargeback.created":     EventChargeback,
	"void":                   EventVoid,
	"cancel":                 EventCancel,
}

// ParseEventKind matches a raw event-type string case-insensitively against
// the known vocabulary.
func ParseEventKind(raw string) EventKind {
	if kind, ok := eventAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return kind
	}
	return EventUnknown
}

// WebhookEvent is a normalized inbound gateway callback. It lives for one
// request; persistence is a downstream concern.
type WebhookEvent struct {
	Kind       EventKind
	RawKind    string
	OrderID    string
	CustomerID string
	Payload    map[string]interface{}
	ReceivedAt time.Time
}

// Field returns the first non-empty payload value among the given keys,
// stringified. Gateway payloads mix snake_case and camelCase keys.
func (e *WebhookEvent) Field(keys ...string) string {
	return PayloadField(e.Payload, keys...)
}
