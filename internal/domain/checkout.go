package domain

import (
	"errors"
	"fmt"
	"strings"
)

type PaymentMode string

const (
	PaymentModeCOD PaymentMode = "COD"
	PaymentModeUPI PaymentMode = "UPI"
)

// CheckoutRequest carries the shipping form and the chosen payment mode.
type CheckoutRequest struct {
	FullName    string      `json:"fullName"`
	Mobile      string      `json:"mobile"`
	Address     string      `json:"address"`
	City        string      `json:"city"`
	Pincode     string      `json:"pincode"`
	PaymentMode PaymentMode `json:"paymentMode"`
}

var ErrInvalidPaymentMode = errors.New("unknown payment mode")

// Validate runs before any network call is made.
func (r CheckoutRequest) Validate() error {
	missing := make([]string, 0, 5)
	for _, f := range []struct{ name, value string }{
		{"fullName", r.FullName},
		{"mobile", r.Mobile},
		{"address", r.Address},
		{"city", r.City},
		{"pincode", r.Pincode},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	if r.PaymentMode != PaymentModeCOD && r.PaymentMode != PaymentModeUPI {
		return ErrInvalidPaymentMode
	}
	return nil
}
