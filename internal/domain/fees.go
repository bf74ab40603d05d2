package domain

import (
	"ridetracker/internal/domain/models"

	"github.com/shopspring/decimal"
)

var (
	BoltAirportBookingFee  = decimal.NewFromInt(25)
	BoltLandmarkBookingFee = decimal.NewFromInt(16)
	AirportPickupFee       = decimal.NewFromInt(20)

	hundred = decimal.NewFromInt(100)
)

// FeeInput is the subset of a trip that drives fee defaults.
type FeeInput struct {
	Platform       string
	PickupLocation string
	Amount         decimal.Decimal
	Distance       decimal.NullDecimal
}

// FeeDefaults are the derived deductions offered for a trip.
// BookingFeeEditable is true only when no rule fixed the booking fee.
type FeeDefaults struct {
	Commission         decimal.Decimal `json:"commission"`
	BookingFee         decimal.Decimal `json:"bookingFee"`
	AirportFee         decimal.Decimal `json:"airportFee"`
	FuelCost           decimal.Decimal `json:"fuelCost"`
	BookingFeeEditable bool            `json:"bookingFeeEditable"`
}

// FeeOverride carries a user-entered booking fee. Nil means "use the default".
type FeeOverride struct {
	BookingFee *decimal.Decimal
}

func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ComputeFees derives commission, booking fee, airport fee and fuel cost.
// Identifiers outside the known sets fall through to zero.
func ComputeFees(in FeeInput, s models.Settings) (FeeDefaults, error) {
	if in.Amount.IsNegative() {
		return FeeDefaults{}, ValidationError{Field: "amount", Msg: "must not be negative"}
	}
	if in.Distance.Valid && in.Distance.Decimal.IsNegative() {
		return FeeDefaults{}, ValidationError{Field: "distance", Msg: "must not be negative"}
	}

	out := FeeDefaults{
		Commission: decimal.Zero,
		BookingFee: decimal.Zero,
		AirportFee: decimal.Zero,
		FuelCost:   decimal.Zero,
	}

	if NormalizeIdentifier(in.Platform) == PlatformBolt {
		out.Commission = roundMoney(in.Amount.Mul(s.BoltCommission).Div(hundred))
		switch {
		case IsAirport(in.PickupLocation):
			out.BookingFee = BoltAirportBookingFee
		case IsLandmark(in.PickupLocation):
			out.BookingFee = BoltLandmarkBookingFee
		default:
			out.BookingFeeEditable = true
		}
	} else if IsAirport(in.PickupLocation) {
		out.AirportFee = AirportPickupFee
	}

	if in.Distance.Valid && in.Distance.Decimal.IsPositive() {
		out.FuelCost = roundMoney(in.Distance.Decimal.Mul(s.FuelCostPerKm))
	}
	return out, nil
}

// Apply honours a manual booking fee when the rule left it editable.
func (d FeeDefaults) Apply(o FeeOverride) (FeeDefaults, error) {
	if o.BookingFee == nil || !d.BookingFeeEditable {
		return d, nil
	}
	if o.BookingFee.IsNegative() {
		return d, ValidationError{Field: "bookingFee", Msg: "must not be negative"}
	}
	d.BookingFee = roundMoney(*o.BookingFee)
	return d, nil
}

// ApplyFees recomputes the derived fees on t from its current platform,
// pickup location, amount and distance. Salik is left as entered.
func ApplyFees(t *models.Trip, s models.Settings, o FeeOverride) error {
	defaults, err := ComputeFees(FeeInput{
		Platform:       t.Platform,
		PickupLocation: t.PickupLocation,
		Amount:         t.Amount,
		Distance:       t.Distance,
	}, s)
	if err != nil {
		return err
	}
	defaults, err = defaults.Apply(o)
	if err != nil {
		return err
	}

	t.Commission = defaults.Commission
	t.BookingFee = defaults.BookingFee
	t.AirportFee = defaults.AirportFee
	t.FuelCost = defaults.FuelCost
	t.SalikFee = roundMoney(t.SalikFee)
	return nil
}

// ValidateTrip checks the non-negative invariants on a trip.
func ValidateTrip(t models.Trip) error {
	if NormalizeIdentifier(t.Platform) == "" {
		return ValidationError{Field: "platform", Msg: "is required"}
	}
	if t.Date.IsZero() {
		return ValidationError{Field: "date", Msg: "is required"}
	}
	if t.Distance.Valid && t.Distance.Decimal.IsNegative() {
		return ValidationError{Field: "distance", Msg: "must not be negative"}
	}
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"amount", t.Amount},
		{"salikFee", t.SalikFee},
		{"airportFee", t.AirportFee},
		{"bookingFee", t.BookingFee},
		{"commission", t.Commission},
		{"fuelCost", t.FuelCost},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return ValidationError{Field: f.name, Msg: "must not be negative"}
		}
	}
	if _, ok := models.ParsePaymentMethod(string(t.PaymentMethod)); !ok {
		return ValidationError{Field: "paymentMethod", Msg: "unknown payment method"}
	}
	return nil
}
