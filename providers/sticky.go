package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// StickyProvider implements OrderGateway against a sticky.io-style order API.
type StickyProvider struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

// NewStickyProvider creates a new StickyProvider. The timeout bounds each
// order call; the upstream API has been observed hanging on bad payloads.
func NewStickyProvider(baseURL, username, password string, timeout time.Duration) *StickyProvider {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &StickyProvider{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateOrder POSTs one form-encoded NewOrder call and parses the response.
// A non-JSON body is not an error: it is wrapped as an opaque payload and
// interpreted as a non-success.
func (s *StickyProvider) CreateOrder(ctx context.Context, params url.Values) (*GatewayResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/new_order", strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(s.username, s.password)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return ParseGatewayResponse(body), nil
}

// ParseGatewayResponse decodes an order-creation response body. The API has
// historically answered with either snake_case or camelCase id keys, and
// occasionally with plain text; all three shapes are handled.
func ParseGatewayResponse(body []byte) *GatewayResponse {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		raw, _ := json.Marshal(map[string]string{"raw_response": string(body)})
		return &GatewayResponse{Raw: raw}
	}

	resp := &GatewayResponse{
		OrderID:      payloadString(payload, "order_id", "orderId"),
		CustomerID:   payloadString(payload, "customer_id", "customerId"),
		ErrorMessage: payloadString(payload, "error_message"),
		Raw:          json.RawMessage(body),
	}

	switch v := payload["error_found"].(type) {
	case string:
		resp.ErrorFound = v == "1"
	case float64:
		resp.ErrorFound = v == 1
	case bool:
		resp.ErrorFound = v
	}

	return resp
}

func payloadString(payload map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		switch v := payload[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}
