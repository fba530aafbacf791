package checkout

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/domain"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/upstream"
)

type apiMock struct {
	m sync.Mutex

	checkoutErr error
	createErr   error
	verifyErr   error

	checkouts int
	creates   int
	verifies  int

	payment domain.PaymentSession
}

func (a *apiMock) Checkout(_ context.Context, req domain.CheckoutRequest) (*domain.Order, error) {
	a.m.Lock()
	defer a.m.Unlock()
	a.checkouts++
	if a.checkoutErr != nil {
		return nil, a.checkoutErr
	}
	return orderFrom(req, domain.PaymentModeCOD), nil
}

func (a *apiMock) CreatePaymentOrder(context.Context) (*domain.PaymentSession, error) {
	a.m.Lock()
	defer a.m.Unlock()
	a.creates++
	if a.createErr != nil {
		return nil, a.createErr
	}
	p := a.payment
	return &p, nil
}

func (a *apiMock) VerifyPayment(_ context.Context, _ domain.PaymentSignature, req domain.CheckoutRequest) (*domain.Order, error) {
	a.m.Lock()
	defer a.m.Unlock()
	a.verifies++
	if a.verifyErr != nil {
		return nil, a.verifyErr
	}
	return orderFrom(req, domain.PaymentModeUPI), nil
}

func orderFrom(req domain.CheckoutRequest, mode domain.PaymentMode) *domain.Order {
	return &domain.Order{
		OrderID:     42,
		FullName:    req.FullName,
		Mobile:      req.Mobile,
		Address:     req.Address,
		City:        req.City,
		Pincode:     req.Pincode,
		PaymentMode: mode,
		Status:      domain.OrderStatusPlaced,
		TotalAmount: 100,
	}
}

type cartMock struct {
	m       sync.Mutex
	count   int
	fetches int
}

func (c *cartMock) ItemCount() int {
	c.m.Lock()
	defer c.m.Unlock()
	return c.count
}

func (c *cartMock) Fetch(context.Context) error {
	c.m.Lock()
	defer c.m.Unlock()
	c.fetches++
	c.count = 0
	return nil
}

type widgetMock struct {
	loadErr error
	result  CollectResult
	loads   int
	opens   int
}

func (w *widgetMock) Load(context.Context) error {
	w.loads++
	return w.loadErr
}

func (w *widgetMock) Collect(_ context.Context, _ domain.PaymentSession, _ Prefill) CollectResult {
	w.opens++
	return w.result
}

func authed() SessionSource {
	return func() *domain.Session {
		return &domain.Session{Subject: "john@example.com", Role: domain.RoleUser}
	}
}

func anonymous() SessionSource {
	return func() *domain.Session { return nil }
}

func shippingForm(mode domain.PaymentMode) domain.CheckoutRequest {
	return domain.CheckoutRequest{
		FullName:    "John Doe",
		Mobile:      "9876543210",
		Address:     "12 Farm Road",
		City:        "Mumbai",
		Pincode:     "400001",
		PaymentMode: mode,
	}
}

// --- COD path ---

func TestSubmitCOD_PlacesOrderWithShippingVerbatim(t *testing.T) {
	api := &apiMock{}
	crt := &cartMock{count: 3}
	sut := NewOrchestrator(api, crt, authed())

	order, err := sut.SubmitCOD(context.Background(), shippingForm(domain.PaymentModeCOD))
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, StateOrderPlaced, sut.State())
	assert.Equal(t, "John Doe", order.FullName)
	assert.Equal(t, "12 Farm Road", order.Address)
	assert.Equal(t, "Mumbai", order.City)
	assert.Equal(t, "400001", order.Pincode)
	assert.Equal(t, 1, crt.fetches, "cart must be refetched after a placed order")
	assert.Equal(t, 0, crt.ItemCount())
}

func TestSubmitCOD_FailureKeepsServerMessageAndAllowsRetry(t *testing.T) {
	api := &apiMock{checkoutErr: &upstream.APIError{Status: 400, Message: "Insufficient stock for Tomatoes"}}
	crt := &cartMock{count: 1}
	sut := NewOrchestrator(api, crt, authed())

	_, err := sut.SubmitCOD(context.Background(), shippingForm(domain.PaymentModeCOD))
	require.Error(t, err)
	assert.Equal(t, StateCheckoutFailed, sut.State())
	assert.Equal(t, "Insufficient stock for Tomatoes", sut.Failure())
	assert.Equal(t, 0, crt.fetches, "failed checkout must not clear the cart")

	api.m.Lock()
	api.checkoutErr = nil
	api.m.Unlock()

	_, err = sut.SubmitCOD(context.Background(), shippingForm(domain.PaymentModeCOD))
	require.NoError(t, err)
	assert.Equal(t, StateOrderPlaced, sut.State())
	assert.Equal(t, "", sut.Failure())
}

func TestSubmitCOD_ValidationBeforeNetwork(t *testing.T) {
	api := &apiMock{}
	sut := NewOrchestrator(api, &cartMock{count: 1}, authed())

	req := shippingForm(domain.PaymentModeCOD)
	req.Pincode = ""

	_, err := sut.SubmitCOD(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, StateIdle, sut.State())
	assert.Equal(t, 0, api.checkouts)
}

// --- entry guard ---

func TestEntryGuard_AnonymousSession(t *testing.T) {
	sut := NewOrchestrator(&apiMock{}, &cartMock{count: 1}, anonymous())

	_, err := sut.SubmitCOD(context.Background(), shippingForm(domain.PaymentModeCOD))
	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, StateIdle, sut.State())
}

func TestEntryGuard_EmptyCart(t *testing.T) {
	sut := NewOrchestrator(&apiMock{}, &cartMock{count: 0}, authed())

	_, err := sut.BeginGatewayPayment(context.Background())
	require.ErrorIs(t, err, ErrCartEmpty)
	assert.Equal(t, StateIdle, sut.State())
}

func TestEntryGuard_RejectsSecondAttemptMidFlight(t *testing.T) {
	sut := NewOrchestrator(&apiMock{payment: domain.PaymentSession{GatewayOrderID: "rzp_1"}}, &cartMock{count: 1}, authed())

	_, err := sut.BeginGatewayPayment(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatePaymentPending, sut.State())

	_, err = sut.SubmitCOD(context.Background(), shippingForm(domain.PaymentModeCOD))
	require.ErrorIs(t, err, ErrCheckoutInFlight)
}

// --- gateway path ---

func TestGateway_BeginHoldsPaymentSession(t *testing.T) {
	api := &apiMock{payment: domain.PaymentSession{
		GatewayOrderID: "rzp_order_1", Amount: 10000, Currency: "INR", KeyID: "key_test",
	}}
	sut := NewOrchestrator(api, &cartMock{count: 2}, authed())

	payment, err := sut.BeginGatewayPayment(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatePaymentPending, sut.State())
	assert.Equal(t, "rzp_order_1", payment.GatewayOrderID)
	assert.Equal(t, int64(10000), payment.Amount)
	assert.Equal(t, "INR", payment.Currency)
	require.NotNil(t, sut.Payment())
}

func TestGateway_VerificationFailure(t *testing.T) {
	api := &apiMock{
		payment:   domain.PaymentSession{GatewayOrderID: "rzp_1"},
		verifyErr: &upstream.APIError{Status: 400, Message: "Payment signature mismatch"},
	}
	crt := &cartMock{count: 2}
	sut := NewOrchestrator(api, crt, authed())

	_, err := sut.BeginGatewayPayment(context.Background())
	require.NoError(t, err)

	_, err = sut.CompleteGatewayPayment(context.Background(), domain.PaymentSignature{}, shippingForm(domain.PaymentModeUPI))
	require.Error(t, err)
	assert.Equal(t, StatePaymentFailed, sut.State())
	assert.Equal(t, "Payment signature mismatch", sut.Failure())
	assert.Nil(t, sut.Payment(), "payment session must be discarded once the flow settles")
	assert.Equal(t, 0, crt.fetches)
}

func TestGateway_CancelReturnsToIdleWithoutError(t *testing.T) {
	api := &apiMock{payment: domain.PaymentSession{GatewayOrderID: "rzp_1"}}
	sut := NewOrchestrator(api, &cartMock{count: 2}, authed())

	_, err := sut.BeginGatewayPayment(context.Background())
	require.NoError(t, err)

	require.NoError(t, sut.CancelGatewayPayment())
	assert.Equal(t, StateIdle, sut.State())
	assert.Equal(t, "", sut.Failure())
	assert.Nil(t, sut.Payment())
}

func TestGateway_CancelOutsidePendingIsIllegal(t *testing.T) {
	sut := NewOrchestrator(&apiMock{}, &cartMock{count: 2}, authed())
	require.ErrorIs(t, sut.CancelGatewayPayment(), ErrIllegalTransition)
}

func TestGateway_CompleteOutsidePendingIsIllegal(t *testing.T) {
	sut := NewOrchestrator(&apiMock{}, &cartMock{count: 2}, authed())

	_, err := sut.CompleteGatewayPayment(context.Background(), domain.PaymentSignature{}, shippingForm(domain.PaymentModeUPI))
	require.ErrorIs(t, err, ErrIllegalTransition)
}

// --- Pay driver ---

func TestPay_CompletedPaymentPlacesOrder(t *testing.T) {
	api := &apiMock{payment: domain.PaymentSession{GatewayOrderID: "rzp_1", Amount: 10000, Currency: "INR"}}
	crt := &cartMock{count: 2}
	sut := NewOrchestrator(api, crt, authed())

	w := &widgetMock{result: CollectResult{
		Signature: domain.PaymentSignature{GatewayOrderID: "rzp_1", PaymentID: "pay_1", Signature: "sig"},
	}}

	outcome, err := sut.Pay(context.Background(), w, shippingForm(domain.PaymentModeUPI))
	require.NoError(t, err)
	require.NotNil(t, outcome.Order)
	assert.False(t, outcome.Dismissed)
	assert.Equal(t, StateOrderPlaced, sut.State())
	assert.Equal(t, domain.PaymentModeUPI, outcome.Order.PaymentMode)
	assert.Equal(t, 1, w.loads)
	assert.Equal(t, 1, w.opens)
	assert.Equal(t, 1, crt.fetches)
}

// Dismissing the widget is a cancellation: back to Idle, no failure
// recorded, no order created.
func TestPay_DismissedWidget(t *testing.T) {
	api := &apiMock{payment: domain.PaymentSession{GatewayOrderID: "rzp_1"}}
	sut := NewOrchestrator(api, &cartMock{count: 2}, authed())

	w := &widgetMock{result: CollectResult{Dismissed: true}}

	outcome, err := sut.Pay(context.Background(), w, shippingForm(domain.PaymentModeUPI))
	require.NoError(t, err)
	assert.True(t, outcome.Dismissed)
	assert.Nil(t, outcome.Order)
	assert.Equal(t, StateIdle, sut.State())
	assert.Equal(t, "", sut.Failure())
	assert.Equal(t, 0, api.verifies)
}

func TestPay_WidgetLoadFailureAllowsCODFallback(t *testing.T) {
	api := &apiMock{}
	sut := NewOrchestrator(api, &cartMock{count: 2}, authed())

	w := &widgetMock{loadErr: assert.AnError}

	_, err := sut.Pay(context.Background(), w, shippingForm(domain.PaymentModeUPI))
	require.ErrorContains(t, err, "payment widget unavailable")
	assert.Equal(t, StateIdle, sut.State())
	assert.Equal(t, 0, api.creates)

	_, err = sut.SubmitCOD(context.Background(), shippingForm(domain.PaymentModeCOD))
	require.NoError(t, err)
	assert.Equal(t, StateOrderPlaced, sut.State())
}

func TestPay_WidgetFailure(t *testing.T) {
	api := &apiMock{payment: domain.PaymentSession{GatewayOrderID: "rzp_1"}}
	sut := NewOrchestrator(api, &cartMock{count: 2}, authed())

	w := &widgetMock{result: CollectResult{Err: assert.AnError}}

	_, err := sut.Pay(context.Background(), w, shippingForm(domain.PaymentModeUPI))
	require.Error(t, err)
	assert.Equal(t, StatePaymentFailed, sut.State())
	assert.NotEmpty(t, sut.Failure())
	assert.Equal(t, 0, api.verifies)
}

// --- transition table ---

func TestCanTransitionTo(t *testing.T) {
	assert.True(t, CanTransitionTo(StateIdle, StateSubmitting))
	assert.True(t, CanTransitionTo(StatePaymentPending, StateIdle))
	assert.True(t, CanTransitionTo(StatePaymentVerifying, StatePaymentFailed))
	assert.False(t, CanTransitionTo(StateIdle, StateOrderPlaced))
	assert.False(t, CanTransitionTo(StateOrderPlaced, StatePaymentPending))
	assert.False(t, CanTransitionTo(StatePaymentVerifying, StateIdle))
}

func TestState_InFlight(t *testing.T) {
	assert.True(t, StateSubmitting.InFlight())
	assert.True(t, StatePaymentPending.InFlight())
	assert.True(t, StatePaymentVerifying.InFlight())
	assert.False(t, StateIdle.InFlight())
	assert.False(t, StateOrderPlaced.InFlight())
	assert.False(t, StatePaymentFailed.InFlight())
	assert.False(t, StateCheckoutFailed.InFlight())
}
