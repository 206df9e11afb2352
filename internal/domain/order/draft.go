package order

import (
	"errors"
	"regexp"

	"github.com/example/storefront/internal/domain/cart"
)

var ErrIncompleteOrder = errors.New("order is incomplete")

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+7 \(\d{3}\) \d{3}-\d{2}-\d{2}$`)
)

// Order is a finalized, submittable order. Immutable once constructed.
type Order struct {
	Items   []string `json:"items"`
	Total   int      `json:"total"`
	Payment string   `json:"payment"`
	Address string   `json:"address"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
}

// Draft accumulates checkout form state across the payment and contacts
// steps. Fields stay unset until written; setters are last-write-wins.
type Draft struct {
	payment *string
	address *string
	email   *string
	phone   *string
}

func NewDraft() *Draft {
	return &Draft{}
}

func (d *Draft) SetPayment(payment string) { d.payment = &payment }
func (d *Draft) SetAddress(address string) { d.address = &address }
func (d *Draft) SetEmail(email string)     { d.email = &email }
func (d *Draft) SetPhone(phone string)     { d.phone = &phone }

func (d *Draft) Payment() string { return deref(d.payment) }
func (d *Draft) Address() string { return deref(d.address) }
func (d *Draft) Email() string   { return deref(d.email) }
func (d *Draft) Phone() string   { return deref(d.phone) }

// ValidatePaymentStep returns the violated rules for the payment/address
// step, empty when the step is complete.
func (d *Draft) ValidatePaymentStep() []string {
	var violations []string
	if deref(d.payment) == "" {
		violations = append(violations, "payment method is not selected")
	}
	if deref(d.address) == "" {
		violations = append(violations, "delivery address is empty")
	}
	return violations
}

// ValidateContactsStep returns the violated rules for the email/phone step.
// The phone must match the exact shape +7 (XXX) XXX-XX-XX.
func (d *Draft) ValidateContactsStep() []string {
	var violations []string
	switch email := deref(d.email); {
	case email == "":
		violations = append(violations, "email is empty")
	case !emailPattern.MatchString(email):
		violations = append(violations, "email format is invalid")
	}
	switch phone := deref(d.phone); {
	case phone == "":
		violations = append(violations, "phone is empty")
	case !phonePattern.MatchString(phone):
		violations = append(violations, "phone must be in format +7 (XXX) XXX-XX-XX")
	}
	return violations
}

// Finalize combines the cart snapshot with the accumulated fields into an
// immutable Order. It fails with ErrIncompleteOrder while any of the four
// fields has never been set; missing data is an error, not a default.
func (d *Draft) Finalize(items []cart.Item, total int) (Order, error) {
	if d.payment == nil || d.address == nil || d.email == nil || d.phone == nil {
		return Order{}, ErrIncompleteOrder
	}
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.Product.ID
	}
	return Order{
		Items:   ids,
		Total:   total,
		Payment: *d.payment,
		Address: *d.address,
		Email:   *d.email,
		Phone:   *d.phone,
	}, nil
}

// Clear resets all four fields to unset.
func (d *Draft) Clear() {
	d.payment = nil
	d.address = nil
	d.email = nil
	d.phone = nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
