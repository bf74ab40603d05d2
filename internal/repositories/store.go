package repositories

import (
	"context"
	"time"

	"ridetracker/internal/domain/models"
)

// TripQuery selects a user's trips. Since is inclusive, Until exclusive.
// An empty Platform matches every platform.
type TripQuery struct {
	UserID   string
	Platform string
	Since    *time.Time
	Until    *time.Time
}

// TripStore implementations keep paidToCashier set once it is true, even
// when UpdateTrip carries false.
type TripStore interface {
	ListTrips(ctx context.Context, q TripQuery) ([]models.Trip, error)
	GetTrip(ctx context.Context, userID, id string) (models.Trip, error)
	CreateTrip(ctx context.Context, t models.Trip) error
	UpdateTrip(ctx context.Context, t models.Trip) error
	MarkPaidToCashier(ctx context.Context, userID, id string, at time.Time) error
}

// SettingsStore reports found=false when the user never saved settings.
type SettingsStore interface {
	GetSettings(ctx context.Context, userID string) (s models.Settings, found bool, err error)
	SaveSettings(ctx context.Context, s models.Settings) error
}

type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	CreateUser(ctx context.Context, u models.User) error
}

// Pinger is implemented by stores that can report backend health.
type Pinger interface {
	Ping(ctx context.Context) error
}
