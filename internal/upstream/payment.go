package upstream

import (
	"context"
	"net/http"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/domain"
)

// CreatePaymentOrder requests a short-lived gateway order for the current
// server-side cart total.
func (c *Client) CreatePaymentOrder(ctx context.Context) (*domain.PaymentSession, error) {
	var session domain.PaymentSession
	if err := c.do(ctx, http.MethodPost, "/api/payment/create-order", nil, nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

type verifyPaymentRequest struct {
	GatewayOrderID  string                 `json:"razorpayOrderId"`
	PaymentID       string                 `json:"razorpayPaymentId"`
	Signature       string                 `json:"razorpaySignature"`
	CheckoutRequest domain.CheckoutRequest `json:"checkoutRequest"`
}

// VerifyPayment forwards the widget's signature payload plus the original
// shipping form; a verified payment creates the order server-side.
func (c *Client) VerifyPayment(ctx context.Context, sig domain.PaymentSignature, req domain.CheckoutRequest) (*domain.Order, error) {
	body := verifyPaymentRequest{
		GatewayOrderID:  sig.GatewayOrderID,
		PaymentID:       sig.PaymentID,
		Signature:       sig.Signature,
		CheckoutRequest: req,
	}
	var order domain.Order
	if err := c.do(ctx, http.MethodPost, "/api/payment/verify-payment", nil, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
