package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCreditCard     PaymentMethod = "credit-card"
	PaymentPayPal         PaymentMethod = "paypal"
	PaymentCashOnDelivery PaymentMethod = "cash-on-delivery"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCreditCard, PaymentPayPal, PaymentCashOnDelivery:
		return true
	}
	return false
}

// Label returns the human-readable payment method name.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCreditCard:
		return "Credit Card"
	case PaymentPayPal:
		return "PayPal"
	case PaymentCashOnDelivery:
		return "Cash on Delivery"
	default:
		return string(m)
	}
}

// Customer holds the contact and shipping details given at checkout.
type Customer struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Order is an entry of the append-only order log.
type Order struct {
	ID            uuid.UUID       `json:"id"`
	PlacedAt      time.Time       `json:"date"`
	Customer      Customer        `json:"customer"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Items         []CartLine      `json:"items"`
	Total         decimal.Decimal `json:"total"`
}
