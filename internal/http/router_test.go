package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"ridetracker/internal/auth"
	intconfig "ridetracker/internal/config"
	"ridetracker/internal/domain"
	"ridetracker/internal/domain/models"
	h "ridetracker/internal/http/handlers"
	"ridetracker/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

var gst = time.FixedZone("GST", 4*60*60)

type memStore struct {
	mu       sync.Mutex
	trips    map[string]models.Trip
	settings map[string]models.Settings
	pingErr  error
}

func newMemStore() *memStore {
	return &memStore{trips: map[string]models.Trip{}, settings: map[string]models.Settings{}}
}

func (m *memStore) ListTrips(_ context.Context, q repositories.TripQuery) ([]models.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Trip
	for _, t := range m.trips {
		if t.UserID == q.UserID {
			out = append(out, t)
		}
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
	m.trips[t.ID] = t
	return nil
}

func (m *memStore) MarkPaidToCashier(_ context.Context, _, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.trips[id]
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
		s = models.DefaultSettings()
		s.UserID = userID
	}
	return s, ok, nil
}

func (m *memStore) SaveSettings(_ context.Context, s models.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[s.UserID] = s
	return nil
}

func (m *memStore) Ping(context.Context) error { return m.pingErr }

type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, token string) (auth.Identity, error) {
	if token != "good" {
		return auth.Identity{}, errors.New("bad token")
	}
	return auth.Identity{UserID: "u1", Email: "u1@example.com"}, nil
}

func newTestServer(store *memStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	hd := &h.Handler{
		Trips:    store,
		Settings: store,
		Pinger:   store,
		Location: gst,
		Now:      func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, gst) },
	}
	env := intconfig.Env{AuthMode: intconfig.AuthFirebase}
	return NewRouter(env, hd, stubVerifier{})
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestHealthIsPublic(t *testing.T) {
	r := newTestServer(newMemStore())
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestPrivateRoutesNeedToken(t *testing.T) {
	r := newTestServer(newMemStore())
	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthRoutesHiddenInFirebaseMode(t *testing.T) {
	r := newTestServer(newMemStore())
	w := do(r, http.MethodPost, "/api/auth/login", `{"email":"a@b.co","password":"x"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDBCheck(t *testing.T) {
	store := newMemStore()
	r := newTestServer(store)
	if w := do(r, http.MethodGet, "/api/db-check", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	store.pingErr = errors.New("down")
	if w := do(r, http.MethodGet, "/api/db-check", ""); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestCreateTripAndMarkPaid(t *testing.T) {
	store := newMemStore()
	r := newTestServer(store)

	w := do(r, http.MethodPost, "/api/trips", `{
		"platform": "bolt",
		"amount": 100,
		"distance": null,
		"date": "2024-03-14",
		"pickupLocation": "airport_t1",
		"paymentMethod": "cash",
		"salikFee": 4
	}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["bookingFee"] != float64(25) || body["commission"] != float64(20) {
		t.Fatalf("unexpected fees: %v", body)
	}
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatalf("missing id: %v", body)
	}

	w = do(r, http.MethodPost, "/api/trips/"+id+"/paid-to-cashier", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if decode(t, w)["paidToCashier"] != true {
		t.Fatalf("trip not marked paid")
	}

	w = do(r, http.MethodGet, "/api/trips", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	page := decode(t, w)
	pagination, _ := page["pagination"].(map[string]any)
	if pagination["total"] != float64(1) {
		t.Fatalf("unexpected pagination: %v", page)
	}
}

func TestCreateTripValidationError(t *testing.T) {
	r := newTestServer(newMemStore())
	w := do(r, http.MethodPost, "/api/trips", `{"platform":"uber","amount":-5,"date":"2024-03-14"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	body := decode(t, w)
	if body["code"] != "validation_error" || body["request_id"] == "" {
		t.Fatalf("unexpected error body: %v", body)
	}
}

func TestGetTripNotFound(t *testing.T) {
	r := newTestServer(newMemStore())
	if w := do(r, http.MethodGet, "/api/trips/nope", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestSettingsCustomPlatform(t *testing.T) {
	r := newTestServer(newMemStore())
	w := do(r, http.MethodPost, "/api/settings/platforms", `{"name":"Hala"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	platforms, _ := decode(t, w)["platforms"].([]any)
	if len(platforms) != 5 || platforms[4] != "hala" {
		t.Fatalf("unexpected platforms: %v", platforms)
	}
	if w := do(r, http.MethodPost, "/api/settings/platforms", `{"name":"hala"}`); w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if w := do(r, http.MethodDelete, "/api/settings/platforms/hala", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestReportsEndpoints(t *testing.T) {
	store := newMemStore()
	store.trips["a"] = models.Trip{ID: "a", UserID: "u1", Platform: "uber", Amount: mustDec("50"), Date: time.Date(2024, 3, 14, 9, 0, 0, 0, gst), PaymentMethod: models.PaymentCash}
	r := newTestServer(store)

	w := do(r, http.MethodGet, "/api/reports/monthly?mode=billing&months=3", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	rep := decode(t, w)
	buckets, _ := rep["buckets"].([]any)
	if rep["strategy"] != "billing" || len(buckets) != 3 {
		t.Fatalf("unexpected report: %v", rep)
	}

	if w := do(r, http.MethodGet, "/api/reports/monthly?mode=yearly", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/reports/weekly?weeks=abc", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/reports/custom?from=2024-03-10&to=2024-03-01", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for reversed range, got %d", w.Code)
	}

	w = do(r, http.MethodGet, "/api/reports/custom/export?format=xlsx&from=2024-03-01&to=2024-03-31", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "RideShare_Report_2024-03-15.xlsx") {
		t.Fatalf("unexpected disposition: %q", cd)
	}

	if w := do(r, http.MethodGet, "/api/reports/dashboard", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/reports/payments", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func mustDec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
