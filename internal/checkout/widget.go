package checkout

import (
	"context"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/domain"
)

// Widget is the external payment surface. Load acquires it lazily; a load
// failure leaves the orchestrator untouched so the shopper can retry or
// fall back to cash on delivery.
type Widget interface {
	Load(ctx context.Context) error
	Collect(ctx context.Context, session domain.PaymentSession, prefill Prefill) CollectResult
}

type Prefill struct {
	Name    string
	Contact string
	Email   string
}

// CollectResult distinguishes completion, explicit dismissal, and
// failure. Dismissal is a cancellation, never an error.
type CollectResult struct {
	Signature domain.PaymentSignature
	Dismissed bool
	Err       error
}

// Outcome is the settled result of a gateway payment attempt.
type Outcome struct {
	Order     *domain.Order
	Dismissed bool
}
