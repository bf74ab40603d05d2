package domain

import (
	"testing"
	"time"
	"unicode/utf8"

	"ridetracker/internal/domain/models"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func km(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(s))
}

func testSettings() models.Settings {
	s := models.DefaultSettings()
	s.FuelCostPerKm = dec("0.29")
	return s
}

func TestComputeFeesBoltCommission(t *testing.T) {
	s := testSettings()

	got, err := ComputeFees(FeeInput{Platform: "bolt", Amount: dec("100")}, s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Commission.Equal(dec("20.00")) {
		t.Fatalf("bolt commission = %s, want 20.00", got.Commission)
	}

	got, err = ComputeFees(FeeInput{Platform: "uber", Amount: dec("100")}, s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Commission.IsZero() {
		t.Fatalf("uber commission = %s, want 0", got.Commission)
	}
}

func TestComputeFeesCommissionRounding(t *testing.T) {
	s := testSettings()
	s.BoltCommission = dec("17.5")

	got, err := ComputeFees(FeeInput{Platform: "Bolt", Amount: dec("33.33")}, s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 33.33 * 0.175 = 5.83275
	if !got.Commission.Equal(dec("5.83")) {
		t.Fatalf("commission = %s, want 5.83", got.Commission)
	}
}

func TestComputeFeesPickupRules(t *testing.T) {
	tests := []struct {
		name     string
		platform string
		pickup   string
		booking  string
		airport  string
		editable bool
	}{
		{"bolt airport", "bolt", "airport_t2", "25", "0", false},
		{"bolt landmark", "bolt", "dubai_mall", "16", "0", false},
		{"bolt global village", "bolt", "global_village", "16", "0", false},
		{"bolt other", "bolt", "other", "0", "0", true},
		{"bolt custom location", "bolt", "jumeirah_beach", "0", "0", true},
		{"uber airport", "uber", "airport_t1", "0", "20", false},
		{"careem landmark", "careem", "atlantis_the_palm", "0", "0", false},
		{"custom platform airport", "hala", "airport_t3", "0", "20", false},
		{"no pickup", "dtc", "", "0", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeFees(FeeInput{Platform: tt.platform, PickupLocation: tt.pickup, Amount: dec("50")}, testSettings())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.BookingFee.Equal(dec(tt.booking)) {
				t.Fatalf("bookingFee = %s, want %s", got.BookingFee, tt.booking)
			}
			if !got.AirportFee.Equal(dec(tt.airport)) {
				t.Fatalf("airportFee = %s, want %s", got.AirportFee, tt.airport)
			}
			if got.BookingFeeEditable != tt.editable {
				t.Fatalf("editable = %v, want %v", got.BookingFeeEditable, tt.editable)
			}
		})
	}
}

func TestComputeFeesFuelCost(t *testing.T) {
	s := testSettings()

	got, err := ComputeFees(FeeInput{Platform: "uber", Amount: dec("80"), Distance: km("50")}, s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.FuelCost.Equal(dec("14.50")) {
		t.Fatalf("fuelCost = %s, want 14.50", got.FuelCost)
	}

	got, _ = ComputeFees(FeeInput{Platform: "uber", Amount: dec("80"), Distance: km("0")}, s)
	if !got.FuelCost.IsZero() {
		t.Fatalf("fuelCost for zero distance = %s, want 0", got.FuelCost)
	}

	got, _ = ComputeFees(FeeInput{Platform: "uber", Amount: dec("80")}, s)
	if !got.FuelCost.IsZero() {
		t.Fatalf("fuelCost without distance = %s, want 0", got.FuelCost)
	}
}

func TestComputeFeesIsIdempotent(t *testing.T) {
	in := FeeInput{Platform: "bolt", PickupLocation: "airport_t1", Amount: dec("72.40"), Distance: km("31.7")}
	s := testSettings()

	a, errA := ComputeFees(in, s)
	b, errB := ComputeFees(in, s)
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v %v", errA, errB)
	}
	if !a.Commission.Equal(b.Commission) || !a.BookingFee.Equal(b.BookingFee) ||
		!a.AirportFee.Equal(b.AirportFee) || !a.FuelCost.Equal(b.FuelCost) ||
		a.BookingFeeEditable != b.BookingFeeEditable {
		t.Fatalf("results differ: %+v vs %+v", a, b)
	}
}

func TestComputeFeesRejectsNegativeInput(t *testing.T) {
	if _, err := ComputeFees(FeeInput{Platform: "bolt", Amount: dec("-1")}, testSettings()); !IsValidation(err) {
		t.Fatalf("expected validation error for negative amount, got %v", err)
	}
	if _, err := ComputeFees(FeeInput{Platform: "bolt", Amount: dec("1"), Distance: km("-3")}, testSettings()); !IsValidation(err) {
		t.Fatalf("expected validation error for negative distance, got %v", err)
	}
}

func TestFeeOverrideOnlyWhenEditable(t *testing.T) {
	manual := dec("7.5")
	s := testSettings()

	editable, _ := ComputeFees(FeeInput{Platform: "bolt", PickupLocation: "other", Amount: dec("40")}, s)
	got, err := editable.Apply(FeeOverride{BookingFee: &manual})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.BookingFee.Equal(dec("7.50")) {
		t.Fatalf("override ignored: bookingFee = %s", got.BookingFee)
	}

	fixed, _ := ComputeFees(FeeInput{Platform: "bolt", PickupLocation: "airport_t1", Amount: dec("40")}, s)
	got, err = fixed.Apply(FeeOverride{BookingFee: &manual})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.BookingFee.Equal(dec("25")) {
		t.Fatalf("override should not replace rule fee, got %s", got.BookingFee)
	}

	negative := dec("-2")
	if _, err := editable.Apply(FeeOverride{BookingFee: &negative}); !IsValidation(err) {
		t.Fatalf("expected validation error for negative override, got %v", err)
	}
}

func TestApplyFeesReevaluatesOnPlatformChange(t *testing.T) {
	s := testSettings()
	trip := models.Trip{Platform: "bolt", PickupLocation: "airport_t2", Amount: dec("100"), Date: time.Now()}

	if err := ApplyFees(&trip, s, FeeOverride{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !trip.BookingFee.Equal(dec("25")) || !trip.AirportFee.IsZero() {
		t.Fatalf("bolt airport fees wrong: booking=%s airport=%s", trip.BookingFee, trip.AirportFee)
	}

	trip.Platform = "uber"
	if err := ApplyFees(&trip, s, FeeOverride{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !trip.BookingFee.IsZero() || !trip.AirportFee.Equal(dec("20")) || !trip.Commission.IsZero() {
		t.Fatalf("uber airport fees wrong: booking=%s airport=%s commission=%s", trip.BookingFee, trip.AirportFee, trip.Commission)
	}

	trip.PickupLocation = "other"
	if err := ApplyFees(&trip, s, FeeOverride{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !trip.AirportFee.IsZero() {
		t.Fatalf("airport fee should reset when pickup changes, got %s", trip.AirportFee)
	}
}

func TestApplyFeesKeepsSalik(t *testing.T) {
	trip := models.Trip{Platform: "uber", Amount: dec("60"), SalikFee: dec("4"), Date: time.Now()}
	if err := ApplyFees(&trip, testSettings(), FeeOverride{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !trip.SalikFee.Equal(dec("4")) {
		t.Fatalf("salik changed: %s", trip.SalikFee)
	}
	if !trip.Net().Equal(dec("56")) {
		t.Fatalf("net = %s, want 56", trip.Net())
	}
}

func TestNetMayBeNegative(t *testing.T) {
	trip := models.Trip{Amount: dec("10"), SalikFee: dec("4"), BookingFee: dec("25")}
	if !trip.Net().Equal(dec("-19")) {
		t.Fatalf("net = %s, want -19", trip.Net())
	}
}

func TestValidateTrip(t *testing.T) {
	base := models.Trip{Platform: "uber", Amount: dec("10"), Date: time.Now()}
	if err := ValidateTrip(base); err != nil {
		t.Fatalf("valid trip rejected: %v", err)
	}

	bad := base
	bad.SalikFee = dec("-1")
	if err := ValidateTrip(bad); !IsValidation(err) {
		t.Fatalf("expected validation error for negative salik, got %v", err)
	}

	bad = base
	bad.Platform = "  "
	if err := ValidateTrip(bad); !IsValidation(err) {
		t.Fatalf("expected validation error for blank platform, got %v", err)
	}

	bad = base
	bad.PaymentMethod = "cheque"
	if err := ValidateTrip(bad); !IsValidation(err) {
		t.Fatalf("expected validation error for unknown method, got %v", err)
	}
}

func TestAllPlatformsMergesCustom(t *testing.T) {
	s := models.DefaultSettings()
	s.CustomPlatforms = []string{"Hala", "uber", " "}
	got := AllPlatforms(s)
	want := []string{"bolt", "uber", "careem", "dtc", "hala"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		"airport_t1":        "Airport T1",
		"atlantis_the_palm": "Atlantis The Palm",
		"dtc":               "Dtc",
		"étaxi":             "Étaxi",
		"ride_ärzte":        "Ride Ärzte",
		"تاكسي":             "تاكسي",
		"":                  "",
	}
	for in, want := range cases {
		got := DisplayName(in)
		if got != want {
			t.Fatalf("DisplayName(%q) = %q, want %q", in, got, want)
		}
		if !utf8.ValidString(got) {
			t.Fatalf("DisplayName(%q) produced invalid UTF-8", in)
		}
	}
}
