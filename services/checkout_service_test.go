package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"checkout-service/models"
	"checkout-service/providers"
	"checkout-service/services"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// ---- scripted mock gateway ----

type scriptedGateway struct {
	responses []*providers.GatewayResponse
	errs      []error
	calls     []url.Values
}

func (g *scriptedGateway) CreateOrder(_ context.Context, params url.Values) (*providers.GatewayResponse, error) {
	idx := len(g.calls)
	g.calls = append(g.calls, params)
	if idx < len(g.errs) && g.errs[idx] != nil {
		return nil, g.errs[idx]
	}
	if idx < len(g.responses) {
		return g.responses[idx], nil
	}
	return &providers.GatewayResponse{}, nil
}

func success(orderID, customerID string) *providers.GatewayResponse {
	raw, _ := json.Marshal(map[string]string{"order_id": orderID, "customer_id": customerID})
	return &providers.GatewayResponse{OrderID: orderID, CustomerID: customerID, Raw: raw}
}

func declined(msg string) *providers.GatewayResponse {
	raw, _ := json.Marshal(map[string]string{"error_found": "1", "error_message": msg})
	return &providers.GatewayResponse{ErrorFound: true, ErrorMessage: msg, Raw: raw}
}

func twoItemRequest() *models.CheckoutRequest {
	return &models.CheckoutRequest{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@example.com",
		CardNumber:  "4111111111111111",
		Products:    []models.LineItem{{ProductID: "1", Price: 69}, {ProductID: "4", Price: 199}},
		TotalAmount: 268,
	}
}

// ---- tests ----

func TestSubmit_EmptyProductList(t *testing.T) {
	gw := &scriptedGateway{}
	svc := services.NewCheckoutService(gw, zap.NewNop(), true, false)

	result, svcErr := svc.Submit(context.Background(), &models.CheckoutRequest{}, "")

	assert.Nil(t, result)
	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
	assert.Empty(t, gw.calls, "gateway must not be called for an empty product list")
}

func TestSubmit_AllItemsSucceed(t *testing.T) {
	gw := &scriptedGateway{responses: []*providers.GatewayResponse{
		success("ORD-1", "CUST-1"),
		success("ORD-2", "CUST-1"),
	}}
	svc := services.NewCheckoutService(gw, zap.NewNop(), true, false)

	result, svcErr := svc.Submit(context.Background(), twoItemRequest(), "203.0.113.9")

	assert.Nil(t, svcErr)
	assert.True(t, result.Success)
	assert.Equal(t, "ORD-1", result.OrderID)
	assert.Equal(t, "CUST-1", result.CustomerID)
	assert.Len(t, result.Orders, 2)
	assert.Equal(t, float64(268), result.TotalAmount)
	assert.Equal(t, "Created 2 orders successfully", result.Message)
}

func TestSubmit_ThreadsLinkageIntoLaterItems(t *testing.T) {
	gw := &scriptedGateway{responses: []*providers.GatewayResponse{
		success("ORD-1", "CUST-1"),
		success("ORD-2", "CUST-1"),
	}}
	svc := services.NewCheckoutService(gw, zap.NewNop(), true, false)

	_, svcErr := svc.Submit(context.Background(), twoItemRequest(), "")
	assert.Nil(t, svcErr)
	assert.Len(t, gw.calls, 2)

	first := gw.calls[0]
	assert.Empty(t, first.Get("customerId"))
	assert.Empty(t, first.Get("isUpsell"))

	second := gw.calls[1]
	assert.Equal(t, "CUST-1", second.Get("customerId"))
	assert.Equal(t, "1", second.Get("forceCustomerId"))
	assert.Equal(t, "1", second.Get("isUpsell"))
	assert.Equal(t, "ORD-1", second.Get("parentOrderId"))
}

func TestSubmit_PartialSuccess(t *testing.T) {
	gw := &scriptedGateway{responses: []*providers.GatewayResponse{
		success("ORD-1", "CUST-1"),
		declined("Invalid credit card number"),
	}}
	svc := services.NewCheckoutService(gw, zap.NewNop(), true, false)

	result, svcErr := svc.Submit(context.Background(), twoItemRequest(), "")

	assert.Nil(t, svcErr)
	assert.True(t, result.Success)
	assert.Len(t, result.Orders, 2)
	assert.True(t, result.Orders[0].Success)
	assert.False(t, result.Orders[1].Success)
	assert.Equal(t, "Invalid credit card number", result.Orders[1].Error)
	assert.Equal(t, "ORD-1", result.OrderID)
	assert.Equal(t, "CUST-1", result.CustomerID)
}

func TestSubmit_FirstFailsSecondEstablishesMainOrder(t *testing.T) {
	gw := &scriptedGateway{responses: []*providers.GatewayResponse{
		declined("Declined"),
		success("ORD-2", "CUST-2"),
	}}
	svc := services.NewCheckoutService(gw, zap.NewNop(), true, false)

	result, svcErr := svc.Submit(context.Background(), twoItemRequest(), "")

	assert.Nil(t, svcErr)
	assert.True(t, result.Success)
	assert.Equal(t, "ORD-2", result.OrderID)
	assert.Equal(t, "CUST-2", result.CustomerID)

	// No linkage threaded into item 2: item 1 produced no ids.
	assert.Empty(t, gw.calls[1].Get("customerId"))
}

func TestSubmit_AllItemsFail(t *testing.T) {
	gw := &scriptedGateway{responses: []*providers.GatewayResponse{
		declined("Declined"),
		declined("Insufficient funds"),
	}}
	svc := services.NewCheckoutService(gw, zap.NewNop(), true, false)

	result, svcErr := svc.Submit(context.Background(), twoItemRequest(), "")

	assert.NotNil(t, svcErr)
	assert.Equal(t, 500, svcErr.StatusCode)
	assert.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Empty(t, result.OrderID)
	assert.Empty(t, result.CustomerID)
	assert.Len(t, result.Orders, 2)
	assert.Equal(t, "Declined", result.Orders[0].Error)
	assert.Equal(t, "Insufficient funds", result.Orders[1].Error)
}

func TestSubmit_TransportErrorDoesNotAbortBatch(t *testing.T) {
	gw := &scriptedGateway{
		errs:      []error{errors.New("connection refused"), nil},
		responses: []*providers.GatewayResponse{nil, success("ORD-2", "CUST-2")},
	}
	svc := services.NewCheckoutService(gw, zap.NewNop(), true, false)

	result, svcErr := svc.Submit(context.Background(), twoItemRequest(), "")

	assert.Nil(t, svcErr)
	assert.True(t, result.Success)
	assert.Len(t, gw.calls, 2, "a transport failure must not stop later items")
	assert.False(t, result.Orders[0].Success)
	assert.Contains(t, result.Orders[0].Error, "connection refused")
	assert.True(t, result.Orders[1].Success)
}

func TestSubmit_UnrecognizedResponseRecordedAsFailure(t *testing.T) {
	gw := &scriptedGateway{responses: []*providers.GatewayResponse{
		{Raw: json.RawMessage(`{"raw_response":"Fatal error"}`)},
	}}
	svc := services.NewCheckoutService(gw, zap.NewNop(), true, false)

	req := twoItemRequest()
	req.Products = req.Products[:1]
	result, svcErr := svc.Submit(context.Background(), req, "")

	assert.NotNil(t, svcErr)
	assert.Len(t, result.Orders, 1)
	assert.False(t, result.Orders[0].Success)
	assert.Equal(t, "unexpected gateway response", result.Orders[0].Error)
}
