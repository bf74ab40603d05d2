package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	intconfig "ridetracker/internal/config"
	"ridetracker/internal/domain"
	"ridetracker/internal/domain/models"
)

const tripColumns = `id, user_id, platform, amount, distance, ride_date,
	pickup_location, payment_method, paid_to_cashier,
	salik_fee, airport_fee, booking_fee, commission, fuel_cost,
	created_at, updated_at`

type TripsRepository struct {
	DB *sql.DB
}

func (r TripsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r TripsRepository) Ping(ctx context.Context) error {
	db := r.db()
	if db == nil {
		return sql.ErrConnDone
	}
	return db.PingContext(ctx)
}

// ListTrips returns trips newest first.
func (r TripsRepository) ListTrips(ctx context.Context, q TripQuery) ([]models.Trip, error) {
	where := []string{"user_id = ?"}
	args := []any{q.UserID}
	if p := domain.NormalizeIdentifier(q.Platform); p != "" {
		where = append(where, "platform = ?")
		args = append(args, p)
	}
	if q.Since != nil {
		where = append(where, "ride_date >= ?")
		args = append(args, q.Since.UTC())
	}
	if q.Until != nil {
		where = append(where, "ride_date < ?")
		args = append(args, q.Until.UTC())
	}

	query := `SELECT ` + tripColumns + ` FROM incomes WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY ride_date DESC, id DESC`

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripsRepository) GetTrip(ctx context.Context, userID, id string) (models.Trip, error) {
	row := r.db().QueryRowContext(ctx,
		`SELECT `+tripColumns+` FROM incomes WHERE id = ? AND user_id = ?`, id, userID)
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Trip{}, domain.NotFoundError{Resource: "trip", Err: err}
	}
	return t, err
}

func (r TripsRepository) CreateTrip(ctx context.Context, t models.Trip) error {
	_, err := r.db().ExecContext(ctx, `
		INSERT INTO incomes (`+tripColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		t.ID, t.UserID, t.Platform, t.Amount, t.Distance, t.Date.UTC(),
		t.PickupLocation, string(t.PaymentMethod), t.PaidToCashier,
		t.SalikFee, t.AirportFee, t.BookingFee, t.Commission, t.FuelCost,
		t.CreatedAt.UTC(), t.UpdatedAt.UTC(),
	)
	return err
}

// UpdateTrip rewrites the trip but cannot clear paid_to_cashier.
func (r TripsRepository) UpdateTrip(ctx context.Context, t models.Trip) error {
	res, err := r.db().ExecContext(ctx, `
		UPDATE incomes SET
			platform = ?, amount = ?, distance = ?, ride_date = ?,
			pickup_location = ?, payment_method = ?, paid_to_cashier = paid_to_cashier OR ?,
			salik_fee = ?, airport_fee = ?, booking_fee = ?, commission = ?, fuel_cost = ?,
			updated_at = ?
		WHERE id = ? AND user_id = ?`,
		t.Platform, t.Amount, t.Distance, t.Date.UTC(),
		t.PickupLocation, string(t.PaymentMethod), t.PaidToCashier,
		t.SalikFee, t.AirportFee, t.BookingFee, t.Commission, t.FuelCost,
		t.UpdatedAt.UTC(),
		t.ID, t.UserID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

// MarkPaidToCashier only ever sets the flag; an already paid trip is left alone.
func (r TripsRepository) MarkPaidToCashier(ctx context.Context, userID, id string, at time.Time) error {
	_, err := r.db().ExecContext(ctx, `
		UPDATE incomes SET paid_to_cashier = 1, updated_at = ?
		WHERE id = ? AND user_id = ? AND paid_to_cashier = 0`,
		at.UTC(), id, userID,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(s rowScanner) (models.Trip, error) {
	var (
		t      models.Trip
		method string
	)
	err := s.Scan(
		&t.ID, &t.UserID, &t.Platform, &t.Amount, &t.Distance, &t.Date,
		&t.PickupLocation, &method, &t.PaidToCashier,
		&t.SalikFee, &t.AirportFee, &t.BookingFee, &t.Commission, &t.FuelCost,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return models.Trip{}, err
	}
	t.PaymentMethod = models.PaymentMethod(method)
	return t, nil
}
