package models

import "encoding/json"

// Product catalog. The gateway knows products by these ids; prices shown in
// the storefront are echoed back by the browser, not looked up server-side.
const (
	// PrimaryProductID is the main subscription product and the only one
	// carrying a gateway offer id.
	PrimaryProductID = "1"
	// SetupFeeProductID is billed once instead of monthly.
	SetupFeeProductID = "4"
)

// Catalog maps product ids to display names.
var Catalog = map[string]string{
	"1": "Ninja Boost",
	"2": "Ninja Power Directories",
	"3": "Ninja AI Power Post",
	"4": "Advanced Setup Fee",
}

// LineItem is one selected product in a checkout.
type LineItem struct {
	ProductID string  `json:"id"`
	Price     float64 `json:"price"`
}

// CheckoutRequest is the browser checkout form as submitted.
type CheckoutRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	BillingAddress string `json:"billingAddress"`
	BillingCity    string `json:"billingCity"`
	BillingState   string `json:"billingState"`
	BillingZip     string `json:"billingZip"`
	BillingCountry string `json:"billingCountry"` // defaults to US when empty

	CardNumber   string `json:"cardNumber"`
	CardExpMonth string `json:"cardExpMonth"`
	CardExpYear  string `json:"cardExpYear"`
	CardCvv      string `json:"cardCvv"`

	Products    []LineItem `json:"products"`
	TotalAmount float64    `json:"totalAmount"`
}

// GatewayOrderResult is the outcome of one gateway order call, one per
// line item.
type GatewayOrderResult struct {
	ProductID string          `json:"productId"`
	OrderID   string          `json:"orderId,omitempty"`
	Price     float64         `json:"price"`
	Success   bool            `json:"success"`
	Error     string          `json:"error,omitempty"`
	Response  json.RawMessage `json:"response,omitempty"`
}

// CheckoutResult aggregates per-item gateway outcomes. The first successful
// item establishes the main order and customer ids; later items attach to
// them as upsells.
type CheckoutResult struct {
	Success     bool                 `json:"success"`
	OrderID     string               `json:"orderId,omitempty"`
	CustomerID  string               `json:"customerId,omitempty"`
	Message     string               `json:"message"`
	Orders      []GatewayOrderResult `json:"orders"`
	TotalAmount float64              `json:"totalAmount"`
	Simulated   bool                 `json:"simulated,omitempty"`
}
