package providers

import (
	"fmt"
	"net/url"

	"checkout-service/models"
)

// Fixed gateway parameters. The gateway has no cart concept: every call is a
// single-product NewOrder against campaign 1 with digital fulfillment.
const (
	methodNewOrder    = "NewOrder"
	defaultCampaignID = "1"
	digitalShippingID = "2"

	// Billing model codes: 1 = one-time charge, 3 = monthly recurring.
	billingModelOneTime = "1"
	billingModelMonthly = "3"

	// Offer attached to the primary product only.
	primaryOfferID = "1"
)

// OrderLinkage threads identifiers from an earlier successful order in the
// same checkout into later line items, so the gateway records them as upsells
// of one logical order instead of unrelated purchases.
type OrderLinkage struct {
	CustomerID    string
	ParentOrderID string
}

// BuildOrderParams maps one checkout request plus one line item onto the
// gateway's NewOrder parameter set. It is a pure transform: absent form
// fields become absent or empty parameters, never errors.
//
// Address keys use the gateway's snake_case scheme throughout; the camelCase
// variants were rejected by the live API.
func BuildOrderParams(req *models.CheckoutRequest, item models.LineItem, link OrderLinkage, clientIP string, testMode bool) url.Values {
	params := url.Values{}

	params.Set("method", methodNewOrder)
	params.Set("campaignId", defaultCampaignID)
	params.Set("shippingId", digitalShippingID)
	params.Set("productId", item.ProductID)

	if item.ProductID == models.SetupFeeProductID {
		params.Set("billing_model_id", billingModelOneTime)
	} else {
		params.Set("billing_model_id", billingModelMonthly)
	}
	if item.ProductID == models.PrimaryProductID {
		params.Set("offer_id", primaryOfferID)
	}

	// Customer identity
	params.Set("firstName", req.FirstName)
	params.Set("lastName", req.LastName)
	params.Set("email", req.Email)
	params.Set("phone", req.Phone)

	// Upsell linkage from a prior successful item in this checkout
	if link.CustomerID != "" {
		params.Set("customerId", link.CustomerID)
		params.Set("forceCustomerId", "1")
		params.Set("isUpsell", "1")
		params.Set("parentOrderId", link.ParentOrderID)
	}

	country := req.BillingCountry
	if country == "" {
		country = "US"
	}

	// Billing address
	params.Set("billing_first_name", req.FirstName)
	params.Set("billing_last_name", req.LastName)
	params.Set("billing_address_1", req.BillingAddress)
	params.Set("billing_city", req.BillingCity)
	params.Set("billing_state", req.BillingState)
	params.Set("billing_zip", req.BillingZip)
	params.Set("billing_country", country)

	// Shipping address mirrors billing: digital products only, no separate
	// shipping form is collected.
	params.Set("shipping_first_name", req.FirstName)
	params.Set("shipping_last_name", req.LastName)
	params.Set("shipping_address_1", req.BillingAddress)
	params.Set("shipping_city", req.BillingCity)
	params.Set("shipping_state", req.BillingState)
	params.Set("shipping_zip", req.BillingZip)
	params.Set("shipping_country", country)

	// Payment block
	params.Set("creditCardNumber", req.CardNumber)
	params.Set("expirationDate", FormatExpiry(req.CardExpMonth, req.CardExpYear))
	params.Set("CVV", req.CardCvv)
	params.Set("creditCardType", DetectCardType(req.CardNumber))

	if clientIP == "" {
		clientIP = "127.0.0.1"
	}
	params.Set("ipAddress", clientIP)
	params.Set("paymentType", "CREDITCARD")
	params.Set("tranType", "Sale")
	if testMode {
		params.Set("testMode", "1")
	}

	return params
}

// FormatExpiry renders month and year as the fixed-width MMYY string the
// gateway expects: month zero-padded to two digits, year reduced to its last
// two digits.
func FormatExpiry(month, year string) string {
	if len(month) == 1 {
		month = "0" + month
	}
	if len(year) > 2 {
		year = year[len(year)-2:]
	}
	return fmt.Sprintf("%s%s", month, year)
}
