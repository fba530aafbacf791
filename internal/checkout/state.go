package checkout

type State string

const (
	StateIdle             State = "IDLE"
	StateSubmitting       State = "SUBMITTING"
	StatePaymentPending   State = "PAYMENT_PENDING"
	StatePaymentVerifying State = "PAYMENT_VERIFYING"
	StateOrderPlaced      State = "ORDER_PLACED"
	StatePaymentFailed    State = "PAYMENT_FAILED"
	StateCheckoutFailed   State = "CHECKOUT_FAILED"
)

// InFlight reports whether a checkout attempt is mid-handshake. A new
// attempt can start from any settled state; retries are user-initiated.
func (s State) InFlight() bool {
	return s == StateSubmitting || s == StatePaymentPending || s == StatePaymentVerifying
}

var transitions = map[State][]State{
	StateIdle:             {StateSubmitting},
	StateOrderPlaced:      {StateSubmitting},
	StateCheckoutFailed:   {StateSubmitting},
	StatePaymentFailed:    {StateSubmitting},
	StateSubmitting:       {StateOrderPlaced, StateCheckoutFailed, StatePaymentPending},
	StatePaymentPending:   {StatePaymentVerifying, StatePaymentFailed, StateIdle},
	StatePaymentVerifying: {StateOrderPlaced, StatePaymentFailed},
}

func CanTransitionTo(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// String representation (for logging)
func (s State) String() string {
	return string(s)
}
