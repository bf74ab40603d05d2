package models

import "strings"

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentOnline     PaymentMethod = "online_paid"
)

// PaymentMethods lists the accepted methods in display order.
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentCreditCard, PaymentOnline}

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return "", true
	}
	for _, known := range PaymentMethods {
		if m == known {
			return m, true
		}
	}
	return m, false
}

// OrOnline treats a missing method as online_paid, like the payment summary does.
func (m PaymentMethod) OrOnline() PaymentMethod {
	if m == "" {
		return PaymentOnline
	}
	return m
}

// SettlesWithCashier reports whether the driver owes this money to a cashier.
func (m PaymentMethod) SettlesWithCashier() bool {
	return m == PaymentCash || m == PaymentCreditCard
}

func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCash:
		return "Cash"
	case PaymentCreditCard:
		return "Credit Card"
	case PaymentOnline:
		return "Online Paid"
	default:
		return "N/A"
	}
}
