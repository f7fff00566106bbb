package providers

import (
	"context"
	"encoding/json"
	"net/url"
)

// OrderGateway defines the interface all payment gateway integrations must
// implement. CreateOrder issues exactly one order-creation call; transport
// failures come back as errors, business declines come back in the response.
type OrderGateway interface {
	CreateOrder(ctx context.Context, params url.Values) (*GatewayResponse, error)
}

// GatewayResponse is one parsed order-creation response.
type GatewayResponse struct {
	OrderID      string
	CustomerID   string
	ErrorFound   bool
	ErrorMessage string
	// Raw is the response body: decoded JSON when possible, otherwise the
	// raw text wrapped under a raw_response key.
	Raw json.RawMessage
}

// Succeeded reports whether the gateway accepted the order.
func (r *GatewayResponse) Succeeded() bool {
	return r.OrderID != ""
}
