package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/checkout"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/domain"
)

type CheckoutHandler struct{}

func NewCheckoutHandler() *CheckoutHandler {
	return &CheckoutHandler{}
}

type checkoutStateDTO struct {
	State   checkout.State         `json:"state"`
	Failure string                 `json:"failure,omitempty"`
	Order   *domain.Order          `json:"order,omitempty"`
	Payment *domain.PaymentSession `json:"payment,omitempty"`
}

func checkoutState(o *checkout.Orchestrator) checkoutStateDTO {
	return checkoutStateDTO{
		State:   o.State(),
		Failure: o.Failure(),
		Order:   o.Order(),
		Payment: o.Payment(),
	}
}

// SubmitCOD places a cash-on-delivery order from the shipping form.
func (h *CheckoutHandler) SubmitCOD(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	a := appFromContext(r.Context())
	order, err := a.Checkout.SubmitCOD(r.Context(), req)
	if err != nil {
		log.Printf("[%s] checkout failed: %v", requestIDFromContext(r.Context()), err)
		handleCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

// CreatePaymentOrder opens a gateway payment attempt and hands the
// short-lived payment session to the client-side widget.
func (h *CheckoutHandler) CreatePaymentOrder(w http.ResponseWriter, r *http.Request) {
	a := appFromContext(r.Context())
	payment, err := a.Checkout.BeginGatewayPayment(r.Context())
	if err != nil {
		handleCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, payment)
}

type verifyPaymentDTO struct {
	GatewayOrderID  string                 `json:"razorpayOrderId"`
	PaymentID       string                 `json:"razorpayPaymentId"`
	Signature       string                 `json:"razorpaySignature"`
	CheckoutRequest domain.CheckoutRequest `json:"checkoutRequest"`
}

// VerifyPayment forwards the widget's completion payload plus the
// original shipping form for server-side verification.
func (h *CheckoutHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if err := req.CheckoutRequest.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	sig := domain.PaymentSignature{
		GatewayOrderID: req.GatewayOrderID,
		PaymentID:      req.PaymentID,
		Signature:      req.Signature,
	}

	a := appFromContext(r.Context())
	order, err := a.Checkout.CompleteGatewayPayment(r.Context(), sig, req.CheckoutRequest)
	if err != nil {
		log.Printf("[%s] payment verification failed: %v", requestIDFromContext(r.Context()), err)
		handleCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

// CancelPayment handles the widget being dismissed: back to idle, no
// failure recorded.
func (h *CheckoutHandler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	a := appFromContext(r.Context())
	if err := a.Checkout.CancelGatewayPayment(); err != nil {
		handleCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, checkoutState(a.Checkout))
}

func (h *CheckoutHandler) State(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, checkoutState(appFromContext(r.Context()).Checkout))
}
