package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trip is a single logged ride with its fare and deductions.
type Trip struct {
	ID             string              `json:"id"`
	UserID         string              `json:"-"`
	Platform       string              `json:"platform"`
	Amount         decimal.Decimal     `json:"amount"`
	Distance       decimal.NullDecimal `json:"distance"`
	Date           time.Time           `json:"date"`
	PickupLocation string              `json:"pickupLocation,omitempty"`
	PaymentMethod  PaymentMethod       `json:"paymentMethod,omitempty"`
	PaidToCashier  bool                `json:"paidToCashier"`

	SalikFee   decimal.Decimal `json:"salikFee"`
	AirportFee decimal.Decimal `json:"airportFee"`
	BookingFee decimal.Decimal `json:"bookingFee"`
	Commission decimal.Decimal `json:"commission"`
	FuelCost   decimal.Decimal `json:"fuelCost"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TotalFees sums every deduction on the trip.
func (t Trip) TotalFees() decimal.Decimal {
	return t.SalikFee.Add(t.AirportFee).Add(t.BookingFee).Add(t.Commission).Add(t.FuelCost)
}

// Net is amount minus every deduction. It is not clamped at zero.
func (t Trip) Net() decimal.Decimal {
	return t.Amount.Sub(t.TotalFees())
}

// DistanceKm returns the distance or zero when it was not recorded.
func (t Trip) DistanceKm() decimal.Decimal {
	if !t.Distance.Valid {
		return decimal.Zero
	}
	return t.Distance.Decimal
}
