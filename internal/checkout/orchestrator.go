// Package checkout drives the handshake from cart snapshot to confirmed
// order, over two paths: cash on delivery, and a gateway-mediated payment
// with client-side widget collection and server-side verification.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/domain"
)

var (
	ErrCartEmpty         = errors.New("cart is empty")
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrCheckoutInFlight  = errors.New("checkout already in progress")
	ErrIllegalTransition = errors.New("illegal checkout transition")
)

// API is the slice of the upstream client the orchestrator needs.
type API interface {
	Checkout(ctx context.Context, req domain.CheckoutRequest) (*domain.Order, error)
	CreatePaymentOrder(ctx context.Context) (*domain.PaymentSession, error)
	VerifyPayment(ctx context.Context, sig domain.PaymentSignature, req domain.CheckoutRequest) (*domain.Order, error)
}

// Cart is the synchronizer surface the orchestrator depends on: emptiness
// for the entry guard, and a refetch to clear the cart after an order.
type Cart interface {
	ItemCount() int
	Fetch(ctx context.Context) error
}

type SessionSource func() *domain.Session

type Orchestrator struct {
	mu      sync.Mutex
	api     API
	cart    Cart
	session SessionSource

	state   State
	order   *domain.Order
	payment *domain.PaymentSession
	failure string
}

func NewOrchestrator(api API, cart Cart, sessions SessionSource) *Orchestrator {
	return &Orchestrator{api: api, cart: cart, session: sessions, state: StateIdle}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Order returns the server-confirmed order once the state is OrderPlaced.
func (o *Orchestrator) Order() *domain.Order {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.order
}

// Payment returns the live gateway session while one is pending.
func (o *Orchestrator) Payment() *domain.PaymentSession {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.payment
}

// Failure is the last server-reported failure message, verbatim. Empty
// after a dismissal or a successful attempt.
func (o *Orchestrator) Failure() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.failure
}

// begin is the entry guard: anonymous sessions and empty carts are turned
// away before any network call, and only one attempt runs at a time.
func (o *Orchestrator) begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state.InFlight() {
		return ErrCheckoutInFlight
	}
	if o.session() == nil {
		return ErrNotAuthenticated
	}
	if o.cart.ItemCount() == 0 {
		return ErrCartEmpty
	}

	o.state = StateSubmitting
	o.order = nil
	o.payment = nil
	o.failure = ""
	return nil
}

// SubmitCOD places a cash-on-delivery order from the shipping form and
// the server-side cart. The local cart is cleared by refetching after
// success; failure keeps the server's message verbatim.
func (o *Orchestrator) SubmitCOD(ctx context.Context, req domain.CheckoutRequest) (*domain.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := o.begin(); err != nil {
		return nil, err
	}

	order, err := o.api.Checkout(ctx, req)
	if err != nil {
		o.fail(StateCheckoutFailed, err)
		return nil, err
	}

	o.placed(order)
	o.refreshCart(ctx)
	return order, nil
}

// BeginGatewayPayment requests a short-lived payment session and parks
// the orchestrator in PaymentPending until the widget settles.
func (o *Orchestrator) BeginGatewayPayment(ctx context.Context) (*domain.PaymentSession, error) {
	if err := o.begin(); err != nil {
		return nil, err
	}

	payment, err := o.api.CreatePaymentOrder(ctx)
	if err != nil {
		o.fail(StateCheckoutFailed, err)
		return nil, err
	}

	o.mu.Lock()
	o.state = StatePaymentPending
	o.payment = payment
	o.mu.Unlock()
	return payment, nil
}

// CompleteGatewayPayment forwards the widget's signature plus the
// original shipping form for verification.
func (o *Orchestrator) CompleteGatewayPayment(ctx context.Context, sig domain.PaymentSignature, req domain.CheckoutRequest) (*domain.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	if o.state != StatePaymentPending {
		o.mu.Unlock()
		return nil, ErrIllegalTransition
	}
	o.state = StatePaymentVerifying
	o.mu.Unlock()

	order, err := o.api.VerifyPayment(ctx, sig, req)
	if err != nil {
		o.fail(StatePaymentFailed, err)
		return nil, err
	}

	o.placed(order)
	o.refreshCart(ctx)
	return order, nil
}

// CancelGatewayPayment handles the widget being dismissed without a
// completion callback: back to Idle, payment session discarded, and no
// failure recorded.
func (o *Orchestrator) CancelGatewayPayment() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StatePaymentPending {
		return ErrIllegalTransition
	}
	o.state = StateIdle
	o.payment = nil
	o.failure = ""
	return nil
}

// Pay drives the whole gateway path over a widget: lazy load, intent
// creation, collection, verification. Dismissal surfaces as an explicit
// Outcome variant rather than an error.
func (o *Orchestrator) Pay(ctx context.Context, w Widget, req domain.CheckoutRequest) (Outcome, error) {
	if err := req.Validate(); err != nil {
		return Outcome{}, err
	}

	if err := w.Load(ctx); err != nil {
		return Outcome{}, fmt.Errorf("payment widget unavailable: %w", err)
	}

	payment, err := o.BeginGatewayPayment(ctx)
	if err != nil {
		return Outcome{}, err
	}

	prefill := Prefill{Name: req.FullName, Contact: req.Mobile}
	if s := o.session(); s != nil {
		prefill.Email = s.Subject
	}

	res := w.Collect(ctx, *payment, prefill)
	switch {
	case res.Dismissed:
		if err := o.CancelGatewayPayment(); err != nil {
			return Outcome{}, err
		}
		return Outcome{Dismissed: true}, nil
	case res.Err != nil:
		o.fail(StatePaymentFailed, res.Err)
		return Outcome{}, res.Err
	}

	order, err := o.CompleteGatewayPayment(ctx, res.Signature, req)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Order: order}, nil
}

func (o *Orchestrator) placed(order *domain.Order) {
	o.mu.Lock()
	o.state = StateOrderPlaced
	o.order = order
	o.payment = nil
	o.failure = ""
	o.mu.Unlock()
}

func (o *Orchestrator) fail(to State, err error) {
	o.mu.Lock()
	if !CanTransitionTo(o.state, to) {
		log.Printf("checkout: forcing %s -> %s", o.state, to)
	}
	o.state = to
	o.payment = nil
	o.failure = err.Error()
	o.mu.Unlock()
}

func (o *Orchestrator) refreshCart(ctx context.Context) {
	if err := o.cart.Fetch(ctx); err != nil {
		log.Printf("cart refresh after order failed: %v", err)
	}
}
