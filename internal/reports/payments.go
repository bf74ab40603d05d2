package reports

import (
	"sort"

	"ridetracker/internal/domain"
	"ridetracker/internal/domain/models"

	"github.com/shopspring/decimal"
)

// MethodTotals splits gross amounts by payment method.
type MethodTotals struct {
	Cash       decimal.Decimal `json:"cash"`
	CreditCard decimal.Decimal `json:"creditCard"`
	OnlinePaid decimal.Decimal `json:"onlinePaid"`
	Total      decimal.Decimal `json:"total"`
}

func (m *MethodTotals) add(method models.PaymentMethod, amount decimal.Decimal) {
	switch method.OrOnline() {
	case models.PaymentCash:
		m.Cash = m.Cash.Add(amount)
	case models.PaymentCreditCard:
		m.CreditCard = m.CreditCard.Add(amount)
	default:
		m.OnlinePaid = m.OnlinePaid.Add(amount)
	}
	m.Total = m.Total.Add(amount)
}

func (m MethodTotals) rounded() MethodTotals {
	return MethodTotals{
		Cash:       m.Cash.Round(2),
		CreditCard: m.CreditCard.Round(2),
		OnlinePaid: m.OnlinePaid.Round(2),
		Total:      m.Total.Round(2),
	}
}

type PlatformPayments struct {
	Platform  string `json:"platform"`
	RideCount int    `json:"rideCount"`
	MethodTotals
}

// CashierSettlement covers cash and card rides only.
type CashierSettlement struct {
	Paid         decimal.Decimal `json:"paid"`
	Pending      decimal.Decimal `json:"pending"`
	PaidCount    int             `json:"paidCount"`
	PendingCount int             `json:"pendingCount"`
}

type Payments struct {
	Platforms []PlatformPayments `json:"platforms"`
	Totals    MethodTotals       `json:"totals"`
	Cashier   CashierSettlement  `json:"cashier"`
}

// PaymentSummary groups gross amounts per platform and payment method.
// A missing method counts as online_paid.
func PaymentSummary(trips []models.Trip) Payments {
	byPlatform := map[string]*PlatformPayments{}
	var out Payments
	for _, t := range trips {
		name := domain.NormalizeIdentifier(t.Platform)
		p, ok := byPlatform[name]
		if !ok {
			p = &PlatformPayments{Platform: name}
			byPlatform[name] = p
		}
		p.RideCount++
		p.add(t.PaymentMethod, t.Amount)
		out.Totals.add(t.PaymentMethod, t.Amount)

		if !t.PaymentMethod.SettlesWithCashier() {
			continue
		}
		if t.PaidToCashier {
			out.Cashier.Paid = out.Cashier.Paid.Add(t.Amount)
			out.Cashier.PaidCount++
		} else {
			out.Cashier.Pending = out.Cashier.Pending.Add(t.Amount)
			out.Cashier.PendingCount++
		}
	}

	out.Platforms = make([]PlatformPayments, 0, len(byPlatform))
	for _, p := range byPlatform {
		p.MethodTotals = p.MethodTotals.rounded()
		out.Platforms = append(out.Platforms, *p)
	}
	sort.Slice(out.Platforms, func(i, j int) bool { return out.Platforms[i].Platform < out.Platforms[j].Platform })
	out.Totals = out.Totals.rounded()
	out.Cashier.Paid = out.Cashier.Paid.Round(2)
	out.Cashier.Pending = out.Cashier.Pending.Round(2)
	return out
}
