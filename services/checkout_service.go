package services

import (
	"context"
	"fmt"

	"checkout-service/models"
	"checkout-service/providers"

	"go.uber.org/zap"
)

// ServiceError is a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

// CheckoutService defines the order submission business logic.
type CheckoutService interface {
	Submit(ctx context.Context, req *models.CheckoutRequest, clientIP string) (*models.CheckoutResult, *ServiceError)
}

type checkoutServiceImpl struct {
	gateway   providers.OrderGateway
	logger    *zap.Logger
	testMode  bool
	simulated bool
}

// NewCheckoutService creates a new CheckoutService. simulated marks results
// produced by the stand-in gateway so callers can label them as test
// outcomes.
func NewCheckoutService(gateway providers.OrderGateway, logger *zap.Logger, testMode, simulated bool) CheckoutService {
	return &checkoutServiceImpl{
		gateway:   gateway,
		logger:    logger,
		testMode:  testMode,
		simulated: simulated,
	}
}

// Submit creates one gateway order per line item, strictly in sequence.
//
// The gateway has no multi-product cart: the first successful item
// establishes the main order and customer ids, and every later item is sent
// with upsell linkage to them. Item N's parameters therefore depend on item
// 1's RESULT, which is why the loop must never run items in parallel. A
// failed item is recorded and the loop continues; only an empty product list
// rejects the request up front.
func (s *checkoutServiceImpl) Submit(ctx context.Context, req *models.CheckoutRequest, clientIP string) (*models.CheckoutResult, *ServiceError) {
	if req == nil || len(req.Products) == 0 {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid request: products array is required"}
	}

	result := &models.CheckoutResult{
		Orders:      make([]models.GatewayOrderResult, 0, len(req.Products)),
		TotalAmount: req.TotalAmount,
		Simulated:   s.simulated,
	}

	var link providers.OrderLinkage

	for _, item := range req.Products {
		params := providers.BuildOrderParams(req, item, link, clientIP, s.testMode)

		resp, err := s.gateway.CreateOrder(ctx, params)
		if err != nil {
			s.logger.Error("Gateway order call failed",
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			result.Orders = append(result.Orders, models.GatewayOrderResult{
				ProductID: item.ProductID,
				Price:     item.Price,
				Success:   false,
				Error:     err.Error(),
			})
			continue
		}

		switch {
		case resp.Succeeded():
			if result.OrderID == "" {
				result.OrderID = resp.OrderID
				result.CustomerID = resp.CustomerID
				link = providers.OrderLinkage{
					CustomerID:    resp.CustomerID,
					ParentOrderID: resp.OrderID,
				}
			}
			result.Orders = append(result.Orders, models.GatewayOrderResult{
				ProductID: item.ProductID,
				OrderID:   resp.OrderID,
				Price:     item.Price,
				Success:   true,
				Response:  resp.Raw,
			})
			s.logger.Info("Gateway order created",
				zap.String("product_id", item.ProductID),
				zap.String("order_id", resp.OrderID),
			)

		case resp.ErrorFound:
			result.Orders = append(result.Orders, models.GatewayOrderResult{
				ProductID: item.ProductID,
				Price:     item.Price,
				Success:   false,
				Error:     resp.ErrorMessage,
				Response:  resp.Raw,
			})
			s.logger.Warn("Gateway declined order",
				zap.String("product_id", item.ProductID),
				zap.String("error", resp.ErrorMessage),
			)

		default:
			// Neither an order id nor an explicit error flag.
			result.Orders = append(result.Orders, models.GatewayOrderResult{
				ProductID: item.ProductID,
				Price:     item.Price,
				Success:   false,
				Error:     "unexpected gateway response",
				Response:  resp.Raw,
			})
			s.logger.Warn("Unrecognized gateway response",
				zap.String("product_id", item.ProductID),
			)
		}
	}

	successCount := 0
	for _, o := range result.Orders {
		if o.Success {
			successCount++
		}
	}

	if successCount == 0 {
		result.Message = "Failed to create orders"
		return result, &ServiceError{StatusCode: 500, Message: result.Message}
	}

	result.Success = true
	result.Message = fmt.Sprintf("Created %d orders successfully", successCount)
	return result, nil
}
