package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ridetracker/internal/domain"
	"ridetracker/internal/domain/models"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// isoLayout matches JavaScript's Date.toISOString, which existing documents use.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// FirestoreStore keeps settings on users/{uid} and trips under users/{uid}/incomes/{id}.
type FirestoreStore struct {
	Client *firestore.Client
}

type incomeDoc struct {
	Platform       string    `firestore:"platform"`
	Amount         float64   `firestore:"amount"`
	Distance       *float64  `firestore:"distance,omitempty"`
	Date           string    `firestore:"date"`
	PickupLocation string    `firestore:"pickupLocation,omitempty"`
	PaymentMethod  string    `firestore:"paymentMethod,omitempty"`
	PaidToCashier  bool      `firestore:"paidToCashier"`
	SalikFee       float64   `firestore:"salikFee"`
	AirportFee     float64   `firestore:"airportFee"`
	BookingFee     float64   `firestore:"bookingFee"`
	Commission     float64   `firestore:"commission"`
	FuelCost       float64   `firestore:"fuelCost"`
	CreatedAt      time.Time `firestore:"createdAt,omitempty"`
	UpdatedAt      time.Time `firestore:"updatedAt,omitempty"`
}

type settingsDoc struct {
	FullName              string   `firestore:"fullName"`
	MonthlyGoal           *float64 `firestore:"monthlyGoal"`
	BoltCommission        *float64 `firestore:"boltCommission"`
	FuelCostPerKm         float64  `firestore:"fuelCostPerKm"`
	CustomPlatforms       []string `firestore:"customPlatforms"`
	CustomPickupLocations []string `firestore:"customPickupLocations"`
}

func (s FirestoreStore) incomes(userID string) *firestore.CollectionRef {
	return s.Client.Collection("users").Doc(userID).Collection("incomes")
}

func (s FirestoreStore) Ping(ctx context.Context) error {
	it := s.Client.Collection("users").Limit(1).Documents(ctx)
	defer it.Stop()
	if _, err := it.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}

// ListTrips filters the date range in the query and the platform in memory,
// so no composite index is needed.
func (s FirestoreStore) ListTrips(ctx context.Context, q TripQuery) ([]models.Trip, error) {
	query := s.incomes(q.UserID).Query
	if q.Since != nil {
		query = query.Where("date", ">=", q.Since.UTC().Format(isoLayout))
	}
	if q.Until != nil {
		query = query.Where("date", "<", q.Until.UTC().Format(isoLayout))
	}
	query = query.OrderBy("date", firestore.Desc)

	platform := domain.NormalizeIdentifier(q.Platform)
	it := query.Documents(ctx)
	defer it.Stop()

	out := []models.Trip{}
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return out, err
		}
		var d incomeDoc
		if err := snap.DataTo(&d); err != nil {
			return out, fmt.Errorf("decode income %s: %w", snap.Ref.ID, err)
		}
		t, err := d.toTrip(snap.Ref.ID, q.UserID)
		if err != nil {
			return out, err
		}
		if platform != "" && domain.NormalizeIdentifier(t.Platform) != platform {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (s FirestoreStore) GetTrip(ctx context.Context, userID, id string) (models.Trip, error) {
	snap, err := s.incomes(userID).Doc(id).Get(ctx)
	if err != nil {
		return models.Trip{}, notFoundOr(err, "trip")
	}
	var d incomeDoc
	if err := snap.DataTo(&d); err != nil {
		return models.Trip{}, fmt.Errorf("decode income %s: %w", id, err)
	}
	return d.toTrip(id, userID)
}

func (s FirestoreStore) CreateTrip(ctx context.Context, t models.Trip) error {
	_, err := s.incomes(t.UserID).Doc(t.ID).Create(ctx, incomeDocFrom(t))
	if status.Code(err) == codes.AlreadyExists {
		return domain.ConflictError{Resource: "trip", Msg: "id already exists", Err: err}
	}
	return err
}

func (s FirestoreStore) UpdateTrip(ctx context.Context, t models.Trip) error {
	ref := s.incomes(t.UserID).Doc(t.ID)
	return s.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return notFoundOr(err, "trip")
		}
		var prev incomeDoc
		if err := snap.DataTo(&prev); err != nil {
			return fmt.Errorf("decode income %s: %w", t.ID, err)
		}
		return tx.Set(ref, editedIncomeDoc(prev, t))
	})
}

// editedIncomeDoc never clears paidToCashier once the stored document has it.
func editedIncomeDoc(prev incomeDoc, t models.Trip) incomeDoc {
	d := incomeDocFrom(t)
	d.PaidToCashier = d.PaidToCashier || prev.PaidToCashier
	return d
}

func (s FirestoreStore) MarkPaidToCashier(ctx context.Context, userID, id string, at time.Time) error {
	_, err := s.incomes(userID).Doc(id).Update(ctx, []firestore.Update{
		{Path: "paidToCashier", Value: true},
		{Path: "updatedAt", Value: at.UTC()},
	})
	if err != nil {
		return notFoundOr(err, "trip")
	}
	return nil
}

func (s FirestoreStore) GetSettings(ctx context.Context, userID string) (models.Settings, bool, error) {
	out := models.DefaultSettings()
	out.UserID = userID

	snap, err := s.Client.Collection("users").Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return out, false, nil
	}
	if err != nil {
		return models.Settings{}, false, err
	}
	var d settingsDoc
	if err := snap.DataTo(&d); err != nil {
		return models.Settings{}, false, fmt.Errorf("decode settings: %w", err)
	}
	d.apply(&out)
	out.UpdatedAt = snap.UpdateTime
	return out, true, nil
}

// SaveSettings merges into the user document so unrelated fields survive.
func (s FirestoreStore) SaveSettings(ctx context.Context, st models.Settings) error {
	_, err := s.Client.Collection("users").Doc(st.UserID).Set(ctx, settingsFields(st), firestore.MergeAll)
	return err
}

func notFoundOr(err error, resource string) error {
	if status.Code(err) == codes.NotFound {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	return err
}

func incomeDocFrom(t models.Trip) incomeDoc {
	d := incomeDoc{
		Platform:       t.Platform,
		Amount:         t.Amount.InexactFloat64(),
		Date:           t.Date.UTC().Format(isoLayout),
		PickupLocation: t.PickupLocation,
		PaymentMethod:  string(t.PaymentMethod),
		PaidToCashier:  t.PaidToCashier,
		SalikFee:       t.SalikFee.InexactFloat64(),
		AirportFee:     t.AirportFee.InexactFloat64(),
		BookingFee:     t.BookingFee.InexactFloat64(),
		Commission:     t.Commission.InexactFloat64(),
		FuelCost:       t.FuelCost.InexactFloat64(),
		CreatedAt:      t.CreatedAt.UTC(),
		UpdatedAt:      t.UpdatedAt.UTC(),
	}
	if t.Distance.Valid {
		km := t.Distance.Decimal.InexactFloat64()
		d.Distance = &km
	}
	return d
}

func (d incomeDoc) toTrip(id, userID string) (models.Trip, error) {
	date, err := time.Parse(time.RFC3339, d.Date)
	if err != nil {
		return models.Trip{}, fmt.Errorf("income %s: bad date %q: %w", id, d.Date, err)
	}
	t := models.Trip{
		ID:             id,
		UserID:         userID,
		Platform:       d.Platform,
		Amount:         money(d.Amount),
		Date:           date,
		PickupLocation: d.PickupLocation,
		PaymentMethod:  models.PaymentMethod(d.PaymentMethod),
		PaidToCashier:  d.PaidToCashier,
		SalikFee:       money(d.SalikFee),
		AirportFee:     money(d.AirportFee),
		BookingFee:     money(d.BookingFee),
		Commission:     money(d.Commission),
		FuelCost:       money(d.FuelCost),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	if d.Distance != nil {
		t.Distance = decimal.NewNullDecimal(money(*d.Distance))
	}
	return t, nil
}

func (d settingsDoc) apply(s *models.Settings) {
	s.FullName = d.FullName
	if d.MonthlyGoal != nil {
		s.MonthlyGoal = money(*d.MonthlyGoal)
	}
	if d.BoltCommission != nil {
		s.BoltCommission = money(*d.BoltCommission)
	}
	s.FuelCostPerKm = decimal.NewFromFloat(d.FuelCostPerKm).Round(4)
	if d.CustomPlatforms != nil {
		s.CustomPlatforms = d.CustomPlatforms
	}
	if d.CustomPickupLocations != nil {
		s.CustomPickupLocations = d.CustomPickupLocations
	}
}

func settingsFields(s models.Settings) map[string]interface{} {
	platforms := s.CustomPlatforms
	if platforms == nil {
		platforms = []string{}
	}
	pickups := s.CustomPickupLocations
	if pickups == nil {
		pickups = []string{}
	}
	return map[string]interface{}{
		"fullName":              s.FullName,
		"monthlyGoal":           s.MonthlyGoal.InexactFloat64(),
		"boltCommission":        s.BoltCommission.InexactFloat64(),
		"fuelCostPerKm":         s.FuelCostPerKm.InexactFloat64(),
		"customPlatforms":       platforms,
		"customPickupLocations": pickups,
	}
}

func money(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}
