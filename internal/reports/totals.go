package reports

import (
	"ridetracker/internal/domain/models"

	"github.com/shopspring/decimal"
)

// Totals is the reduction of a set of trips.
type Totals struct {
	RideCount  int             `json:"rideCount"`
	Gross      decimal.Decimal `json:"grossTotal"`
	SalikFee   decimal.Decimal `json:"salikFeeTotal"`
	AirportFee decimal.Decimal `json:"airportFeeTotal"`
	BookingFee decimal.Decimal `json:"bookingFeeTotal"`
	Commission decimal.Decimal `json:"commissionTotal"`
	FuelCost   decimal.Decimal `json:"fuelCostTotal"`
	Net        decimal.Decimal `json:"netTotal"`
	Distance   decimal.Decimal `json:"distanceTotal"`
}

func (t *Totals) Add(trip models.Trip) {
	t.RideCount++
	t.Gross = t.Gross.Add(trip.Amount)
	t.SalikFee = t.SalikFee.Add(trip.SalikFee)
	t.AirportFee = t.AirportFee.Add(trip.AirportFee)
	t.BookingFee = t.BookingFee.Add(trip.BookingFee)
	t.Commission = t.Commission.Add(trip.Commission)
	t.FuelCost = t.FuelCost.Add(trip.FuelCost)
	t.Net = t.Net.Add(trip.Net())
	t.Distance = t.Distance.Add(trip.DistanceKm())
}

func (t Totals) Merge(o Totals) Totals {
	return Totals{
		RideCount:  t.RideCount + o.RideCount,
		Gross:      t.Gross.Add(o.Gross),
		SalikFee:   t.SalikFee.Add(o.SalikFee),
		AirportFee: t.AirportFee.Add(o.AirportFee),
		BookingFee: t.BookingFee.Add(o.BookingFee),
		Commission: t.Commission.Add(o.Commission),
		FuelCost:   t.FuelCost.Add(o.FuelCost),
		Net:        t.Net.Add(o.Net),
		Distance:   t.Distance.Add(o.Distance),
	}
}

// FeeTotal sums every fee column.
func (t Totals) FeeTotal() decimal.Decimal {
	return t.SalikFee.Add(t.AirportFee).Add(t.BookingFee).Add(t.Commission).Add(t.FuelCost)
}

// Rounded returns a copy with every amount rounded to two decimals.
func (t Totals) Rounded() Totals {
	return Totals{
		RideCount:  t.RideCount,
		Gross:      t.Gross.Round(2),
		SalikFee:   t.SalikFee.Round(2),
		AirportFee: t.AirportFee.Round(2),
		BookingFee: t.BookingFee.Round(2),
		Commission: t.Commission.Round(2),
		FuelCost:   t.FuelCost.Round(2),
		Net:        t.Net.Round(2),
		Distance:   t.Distance.Round(2),
	}
}

func Summarize(trips []models.Trip) Totals {
	var out Totals
	for _, t := range trips {
		out.Add(t)
	}
	return out
}
