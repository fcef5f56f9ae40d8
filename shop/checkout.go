package shop

import (
	"context"
	"errors"

	"github.com/mytheresa/storefront/models"
)

type CheckoutState int

const (
	StateBrowsing CheckoutState = iota
	StateDetailsForm
	StateConfirmed
)

func (s CheckoutState) String() string {
	switch s {
	case StateBrowsing:
		return "browsing"
	case StateDetailsForm:
		return "details-form"
	case StateConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// CheckoutFlow walks one customer from the cart to a placed order:
// Browsing -> DetailsForm -> Confirmed, with Back returning to Browsing.
type CheckoutFlow struct {
	store *Store
	state CheckoutState
	order models.Order
}

func (s *Store) NewCheckoutFlow() *CheckoutFlow {
	return &CheckoutFlow{store: s, state: StateBrowsing}
}

func (f *CheckoutFlow) State() CheckoutState {
	return f.state
}

// Begin opens the details form. An empty cart keeps the flow in Browsing.
func (f *CheckoutFlow) Begin() error {
	if f.state != StateBrowsing {
		return ErrInvalidTransition
	}
	if f.store.cartEmpty() {
		return ErrEmptyCart
	}
	f.state = StateDetailsForm
	return nil
}

// Back leaves the details form without touching the cart.
func (f *CheckoutFlow) Back() error {
	if f.state != StateDetailsForm {
		return ErrInvalidTransition
	}
	f.state = StateBrowsing
	return nil
}

// Submit places the order. Invalid details keep the form open; a cart
// emptied in the meantime sends the flow back to Browsing.
func (f *CheckoutFlow) Submit(ctx context.Context, info CustomerInfo) (models.Order, error) {
	if f.state != StateDetailsForm {
		return models.Order{}, ErrInvalidTransition
	}

	order, err := f.store.Checkout(ctx, info)
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			f.state = StateBrowsing
		}
		return models.Order{}, err
	}

	f.order = order
	f.state = StateConfirmed
	return order, nil
}

// Order returns the placed order once the flow is confirmed.
func (f *CheckoutFlow) Order() (models.Order, bool) {
	return f.order, f.state == StateConfirmed
}
