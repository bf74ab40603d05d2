package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"ridetracker/internal/domain"
	"ridetracker/internal/domain/models"
	"ridetracker/internal/reports"
)

func seededReports() (ReportsService, *memStore) {
	store := newMemStore()
	store.put(storedTrip("a", "bolt", "100", time.Date(2024, 3, 14, 9, 0, 0, 0, gst), models.PaymentCash))
	store.put(storedTrip("b", "uber", "40", time.Date(2024, 3, 15, 8, 0, 0, 0, gst), models.PaymentCreditCard))
	store.put(storedTrip("c", "uber", "60", time.Date(2024, 2, 25, 8, 0, 0, 0, gst), ""))
	return ReportsService{Trips: store, Settings: store, Location: gst, Now: fixedNow}, store
}

func TestReportsServiceWeeks(t *testing.T) {
	svc, _ := seededReports()
	rep, err := svc.Report(context.Background(), "u1", ReportQuery{Strategy: "weeks"})
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if len(rep.Buckets) != reports.DefaultWindow {
		t.Fatalf("buckets = %d, want %d", len(rep.Buckets), reports.DefaultWindow)
	}
	last := rep.Buckets[len(rep.Buckets)-1]
	if last.RideCount != 2 || !last.Gross.Equal(dec("140")) {
		t.Fatalf("current week = %+v", last.Totals)
	}
	if rep.Totals.RideCount != 3 {
		t.Fatalf("total rides = %d, want 3", rep.Totals.RideCount)
	}
}

func TestReportsServiceDayAndPlatform(t *testing.T) {
	svc, _ := seededReports()
	rep, err := svc.Report(context.Background(), "u1", ReportQuery{Strategy: "day", Date: "2024-03-15", Platform: "uber"})
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if rep.Platform != "uber" || rep.Totals.RideCount != 1 || !rep.Totals.Gross.Equal(dec("40")) {
		t.Fatalf("unexpected day report: %+v", rep)
	}
}

func TestReportsServiceCustomRange(t *testing.T) {
	svc, _ := seededReports()
	if _, err := svc.Report(context.Background(), "u1", ReportQuery{Strategy: "custom", From: "2024-03-01"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error without to, got %v", err)
	}
	if _, err := svc.Report(context.Background(), "u1", ReportQuery{Strategy: "yearly"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for unknown strategy, got %v", err)
	}
	rep, err := svc.Report(context.Background(), "u1", ReportQuery{Strategy: "custom", From: "2024-03-01", To: "2024-03-14"})
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if len(rep.Buckets) != 1 || rep.Totals.RideCount != 1 || rep.Buckets[0].Label != "2024-03-01 to 2024-03-14" {
		t.Fatalf("unexpected custom report: %+v", rep)
	}
}

func TestReportsServicePaymentsAndDashboard(t *testing.T) {
	svc, _ := seededReports()
	pay, err := svc.Payments(context.Background(), "u1", ReportQuery{})
	if err != nil {
		t.Fatalf("Payments returned error: %v", err)
	}
	if !pay.Totals.Cash.Equal(dec("100")) || !pay.Totals.CreditCard.Equal(dec("40")) || !pay.Totals.OnlinePaid.Equal(dec("60")) {
		t.Fatalf("unexpected method totals: %+v", pay.Totals)
	}
	if pay.Cashier.PendingCount != 2 {
		t.Fatalf("pending = %d, want 2", pay.Cashier.PendingCount)
	}

	ov, err := svc.Dashboard(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Dashboard returned error: %v", err)
	}
	if !ov.MonthToDateNet.Equal(dec("140")) || ov.RideCount != 3 || len(ov.RecentTrips) != 3 {
		t.Fatalf("unexpected overview: %+v", ov)
	}
}

func TestReportsServiceStoreFailure(t *testing.T) {
	svc, store := seededReports()
	store.listErr = errors.New("boom")
	if _, err := svc.Report(context.Background(), "u1", ReportQuery{Strategy: "days"}); err == nil {
		t.Fatalf("expected error from store")
	}
}
