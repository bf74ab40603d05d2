package services

import (
	"context"
	"fmt"
	"time"

	"ridetracker/internal/domain"
	"ridetracker/internal/domain/models"
	"ridetracker/internal/reports"
	"ridetracker/internal/repositories"
	"ridetracker/internal/utils"
	"ridetracker/internal/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TripInput is the editable part of a trip. BookingFee is a manual override
// and only applies when no pickup rule fixes the booking fee.
type TripInput struct {
	Platform       string              `json:"platform" validate:"notblank,identifier"`
	Amount         decimal.Decimal     `json:"amount" validate:"gte=0"`
	Distance       decimal.NullDecimal `json:"distance" validate:"omitempty,gte=0"`
	Date           string              `json:"date" validate:"notblank"`
	PickupLocation string              `json:"pickupLocation" validate:"omitempty,identifier"`
	PaymentMethod  string              `json:"paymentMethod" validate:"omitempty,oneof=cash credit_card online_paid"`
	SalikFee       decimal.Decimal     `json:"salikFee" validate:"gte=0"`
	BookingFee     *decimal.Decimal    `json:"bookingFee"`
}

type FeePreviewInput struct {
	Platform       string              `json:"platform" validate:"notblank,identifier"`
	PickupLocation string              `json:"pickupLocation" validate:"omitempty,identifier"`
	Amount         decimal.Decimal     `json:"amount" validate:"gte=0"`
	Distance       decimal.NullDecimal `json:"distance" validate:"omitempty,gte=0"`
	BookingFee     *decimal.Decimal    `json:"bookingFee"`
}

type TripListQuery struct {
	Platform string
	From     string
	To       string
	Page     int
	PerPage  int
}

type TripService struct {
	Trips     repositories.TripStore
	Settings  repositories.SettingsStore
	Location  *time.Location
	Now       func() time.Time
	RequestID string
}

func (s TripService) settingsFor(ctx context.Context, userID string) (models.Settings, error) {
	st, _, err := s.Settings.GetSettings(ctx, userID)
	if err != nil {
		return models.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return st, nil
}

func (s TripService) fromInput(in TripInput) (models.Trip, domain.FeeOverride, error) {
	if err := validator.Struct(in); err != nil {
		return models.Trip{}, domain.FeeOverride{}, err
	}
	date, err := utils.ParseTimestamp(in.Date, locOr(s.Location))
	if err != nil {
		return models.Trip{}, domain.FeeOverride{}, domain.ValidationError{Field: "date", Msg: "must be RFC 3339 or YYYY-MM-DD", Err: err}
	}
	method, _ := models.ParsePaymentMethod(in.PaymentMethod)

	t := models.Trip{
		Platform:       domain.NormalizeIdentifier(in.Platform),
		Amount:         in.Amount.Round(2),
		Distance:       roundDistance(in.Distance),
		Date:           date,
		PickupLocation: domain.NormalizeIdentifier(in.PickupLocation),
		PaymentMethod:  method,
		SalikFee:       in.SalikFee,
	}
	return t, domain.FeeOverride{BookingFee: in.BookingFee}, nil
}

// roundDistance keeps km at the two decimals every store can hold, so fuel
// cost is derived from the value that is persisted.
func roundDistance(d decimal.NullDecimal) decimal.NullDecimal {
	if !d.Valid {
		return d
	}
	return decimal.NewNullDecimal(d.Decimal.Round(2))
}

// Create derives fee defaults from the current settings and stores the trip.
func (s TripService) Create(ctx context.Context, userID string, in TripInput) (models.Trip, error) {
	t, override, err := s.fromInput(in)
	if err != nil {
		return models.Trip{}, err
	}
	settings, err := s.settingsFor(ctx, userID)
	if err != nil {
		return models.Trip{}, err
	}
	if err := domain.ApplyFees(&t, settings, override); err != nil {
		return models.Trip{}, err
	}

	now := nowOr(s.Now)
	t.ID = uuid.NewString()
	t.UserID = userID
	t.CreatedAt = now
	t.UpdatedAt = now
	if err := domain.ValidateTrip(t); err != nil {
		return models.Trip{}, err
	}

	if err := s.Trips.CreateTrip(ctx, t); err != nil {
		utils.LogFailure(s.RequestID, "trips", "create", err)
		return models.Trip{}, fmt.Errorf("create trip: %w", err)
	}
	utils.LogEvent(s.RequestID, "trips", "create", fmt.Sprintf("trip_id=%s platform=%s", t.ID, t.Platform))
	return t, nil
}

// Update re-derives fees from the edited fields under the current settings.
// A trip already paid to the cashier stays paid.
func (s TripService) Update(ctx context.Context, userID, id string, in TripInput) (models.Trip, error) {
	existing, err := s.Trips.GetTrip(ctx, userID, id)
	if err != nil {
		return models.Trip{}, err
	}
	t, override, err := s.fromInput(in)
	if err != nil {
		return models.Trip{}, err
	}
	settings, err := s.settingsFor(ctx, userID)
	if err != nil {
		return models.Trip{}, err
	}
	if err := domain.ApplyFees(&t, settings, override); err != nil {
		return models.Trip{}, err
	}

	t.ID = existing.ID
	t.UserID = userID
	t.CreatedAt = existing.CreatedAt
	t.PaidToCashier = existing.PaidToCashier
	t.UpdatedAt = nowOr(s.Now)
	if err := domain.ValidateTrip(t); err != nil {
		return models.Trip{}, err
	}

	if err := s.Trips.UpdateTrip(ctx, t); err != nil {
		if domain.IsNotFound(err) {
			return models.Trip{}, err
		}
		utils.LogFailure(s.RequestID, "trips", "update", err)
		return models.Trip{}, fmt.Errorf("update trip: %w", err)
	}
	utils.LogEvent(s.RequestID, "trips", "update", "trip_id="+t.ID)
	return t, nil
}

func (s TripService) Get(ctx context.Context, userID, id string) (models.Trip, error) {
	return s.Trips.GetTrip(ctx, userID, id)
}

// List returns one page of trips, newest first.
func (s TripService) List(ctx context.Context, userID string, q TripListQuery) (reports.Page, error) {
	loc := locOr(s.Location)
	from, err := parseDay("from", q.From, loc)
	if err != nil {
		return reports.Page{}, err
	}
	to, err := parseDay("to", q.To, loc)
	if err != nil {
		return reports.Page{}, err
	}
	filter := reports.Filter{Platform: q.Platform, From: from, To: to}
	if err := filter.Validate(loc); err != nil {
		return reports.Page{}, err
	}

	since, until := dayBounds(from, to, loc)
	platform := q.Platform
	if domain.NormalizeIdentifier(platform) == reports.PlatformAll {
		platform = ""
	}
	trips, err := s.Trips.ListTrips(ctx, repositories.TripQuery{
		UserID:   userID,
		Platform: platform,
		Since:    since,
		Until:    until,
	})
	if err != nil {
		return reports.Page{}, fmt.Errorf("list trips: %w", err)
	}
	return reports.Paginate(filter.Apply(trips, loc), q.Page, q.PerPage), nil
}

// MarkPaidToCashier flips paidToCashier to true. Repeating it is a no-op and
// online rides are rejected.
func (s TripService) MarkPaidToCashier(ctx context.Context, userID, id string) (models.Trip, error) {
	t, err := s.Trips.GetTrip(ctx, userID, id)
	if err != nil {
		return models.Trip{}, err
	}
	if t.PaidToCashier {
		return t, nil
	}
	if !t.PaymentMethod.SettlesWithCashier() {
		return models.Trip{}, domain.ValidationError{Field: "paymentMethod", Msg: "only cash and credit card rides are settled with the cashier"}
	}

	now := nowOr(s.Now)
	if err := s.Trips.MarkPaidToCashier(ctx, userID, id, now); err != nil {
		return models.Trip{}, fmt.Errorf("mark paid: %w", err)
	}
	utils.LogEvent(s.RequestID, "trips", "mark_paid_to_cashier", "trip_id="+id)
	t.PaidToCashier = true
	t.UpdatedAt = now
	return t, nil
}

// PreviewFees computes defaults for a candidate trip without storing it.
func (s TripService) PreviewFees(ctx context.Context, userID string, in FeePreviewInput) (domain.FeeDefaults, error) {
	if err := validator.Struct(in); err != nil {
		return domain.FeeDefaults{}, err
	}
	settings, err := s.settingsFor(ctx, userID)
	if err != nil {
		return domain.FeeDefaults{}, err
	}
	defaults, err := domain.ComputeFees(domain.FeeInput{
		Platform:       in.Platform,
		PickupLocation: in.PickupLocation,
		Amount:         in.Amount.Round(2),
		Distance:       roundDistance(in.Distance),
	}, settings)
	if err != nil {
		return domain.FeeDefaults{}, err
	}
	return defaults.Apply(domain.FeeOverride{BookingFee: in.BookingFee})
}
