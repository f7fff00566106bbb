package providers

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/google/uuid"
)

// SimulatedProvider stands in for the live gateway when no credentials are
// configured. Every order succeeds with clearly labeled test identifiers, so
// the demo checkout keeps working in local environments.
type SimulatedProvider struct{}

// NewSimulatedProvider creates a new SimulatedProvider.
func NewSimulatedProvider() *SimulatedProvider {
	return &SimulatedProvider{}
}

// CreateOrder fabricates a successful order response.
func (s *SimulatedProvider) CreateOrder(_ context.Context, params url.Values) (*GatewayResponse, error) {
	orderID := "TEST-" + uuid.NewString()
	customerID := params.Get("customerId")
	if customerID == "" {
		customerID = "TEST-CUST-" + uuid.NewString()
	}

	raw, _ := json.Marshal(map[string]string{
		"order_id":    orderID,
		"customer_id": customerID,
		"product_id":  params.Get("productId"),
		"test_mode":   "simulated",
	})

	return &GatewayResponse{
		OrderID:    orderID,
		CustomerID: customerID,
		Raw:        raw,
	}, nil
}
