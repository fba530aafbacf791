package domain

// PaymentSession is the short-lived gateway order handed to the payment
// widget. It exists only between intent creation and verification, and is
// discarded once the flow settles.
type PaymentSession struct {
	GatewayOrderID string `json:"orderId"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	KeyID          string `json:"keyId"`
}

// PaymentSignature is the completion payload the widget yields; it is
// forwarded verbatim to the verification endpoint.
type PaymentSignature struct {
	GatewayOrderID string `json:"razorpayOrderId"`
	PaymentID      string `json:"razorpayPaymentId"`
	Signature      string `json:"razorpaySignature"`
}
