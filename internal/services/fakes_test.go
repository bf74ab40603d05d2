package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"ridetracker/internal/domain"
	"ridetracker/internal/domain/models"
	"ridetracker/internal/repositories"

	"github.com/shopspring/decimal"
)

var gst = time.FixedZone("GST", 4*60*60)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func fixedNow() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, gst) }

// memStore is an in-memory TripStore, SettingsStore and UserStore.
type memStore struct {
	mu       sync.Mutex
	trips    map[string]models.Trip
	settings map[string]models.Settings
	users    map[string]models.User
	listErr  error
}

func newMemStore() *memStore {
	return &memStore{
		trips:    map[string]models.Trip{},
		settings: map[string]models.Settings{},
		users:    map[string]models.User{},
	}
}

func (m *memStore) ListTrips(_ context.Context, q repositories.TripQuery) ([]models.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.Trip
	for _, t := range m.trips {
		if t.UserID != q.UserID {
			continue
		}
		if q.Platform != "" && t.Platform != q.Platform {
			continue
		}
		if q.Since != nil && t.Date.Before(*q.Since) {
			continue
		}
		if q.Until != nil && !t.Date.Before(*q.Until) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *memStore) GetTrip(_ context.Context, userID, id string) (models.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trips[id]
	if !ok || t.UserID != userID {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	return t, nil
}

func (m *memStore) CreateTrip(_ context.Context, t models.Trip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[t.ID] = t
	return nil
}

func (m *memStore) UpdateTrip(_ context.Context, t models.Trip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.trips[t.ID]
	if !ok || old.UserID != t.UserID {
		return domain.NotFoundError{Resource: "trip"}
	}
	t.PaidToCashier = t.PaidToCashier || old.PaidToCashier
	m.trips[t.ID] = t
	return nil
}

func (m *memStore) MarkPaidToCashier(_ context.Context, userID, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trips[id]
	if !ok || t.UserID != userID {
		return domain.NotFoundError{Resource: "trip"}
	}
	t.PaidToCashier = true
	t.UpdatedAt = at
	m.trips[id] = t
	return nil
}

func (m *memStore) GetSettings(_ context.Context, userID string) (models.Settings, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.settings[userID]
	if !ok {
		d := models.DefaultSettings()
		d.UserID = userID
		return d, false, nil
	}
	return s, true, nil
}

func (m *memStore) SaveSettings(_ context.Context, s models.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[s.UserID] = s
	return nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[strings.ToLower(email)]
	if !ok {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, nil
}

func (m *memStore) CreateUser(_ context.Context, u models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return domain.ConflictError{Resource: "user", Msg: "email already registered"}
	}
	m.users[u.Email] = u
	return nil
}

func (m *memStore) put(t models.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[t.ID] = t
}

func storedTrip(id, platform, amount string, date time.Time, method models.PaymentMethod) models.Trip {
	return models.Trip{
		ID:            id,
		UserID:        "u1",
		Platform:      platform,
		Amount:        dec(amount),
		Date:          date,
		PaymentMethod: method,
	}
}
