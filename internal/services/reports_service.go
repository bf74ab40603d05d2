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
)

const maxPeriods = 60

// ReportQuery carries raw query values. Dates are YYYY-MM-DD in the report zone.
type ReportQuery struct {
	Strategy string
	Platform string
	Date     string
	From     string
	To       string
	Periods  int
}

type ReportsService struct {
	Trips     repositories.TripStore
	Settings  repositories.SettingsStore
	Location  *time.Location
	Now       func() time.Time
	RequestID string
}

func (s ReportsService) Report(ctx context.Context, userID string, q ReportQuery) (reports.Report, error) {
	strategy, err := reports.ParseStrategy(q.Strategy)
	if err != nil {
		return reports.Report{}, err
	}
	loc := locOr(s.Location)
	now := nowOr(s.Now)

	req := reports.Request{
		Strategy: strategy,
		Now:      now,
		Periods:  q.Periods,
		Location: loc,
		Filter:   reports.Filter{Platform: q.Platform},
	}
	if q.Periods < 0 || q.Periods > maxPeriods {
		return reports.Report{}, domain.ValidationError{Field: "periods", Msg: fmt.Sprintf("must be at most %d", maxPeriods)}
	}

	switch strategy {
	case reports.StrategyDay:
		day, err := parseDay("date", q.Date, loc)
		if err != nil {
			return reports.Report{}, err
		}
		if day != nil {
			req.Day = *day
		}
	case reports.StrategyCustom:
		if req.Filter.From, err = parseDay("from", q.From, loc); err != nil {
			return reports.Report{}, err
		}
		if req.Filter.To, err = parseDay("to", q.To, loc); err != nil {
			return reports.Report{}, err
		}
		if req.Filter.From == nil || req.Filter.To == nil {
			return reports.Report{}, domain.ValidationError{Field: "from", Msg: "custom range needs from and to"}
		}
	}

	trips, err := s.listAll(ctx, userID, req.Filter, loc)
	if err != nil {
		return reports.Report{}, err
	}
	rep, err := reports.Build(trips, req)
	if err != nil {
		return reports.Report{}, err
	}
	utils.LogEvent(s.RequestID, "reports", string(strategy), fmt.Sprintf("platform=%s buckets=%d rides=%d", rep.Platform, len(rep.Buckets), rep.Totals.RideCount))
	return rep, nil
}

func (s ReportsService) Dashboard(ctx context.Context, userID string) (reports.Overview, error) {
	st, _, err := s.Settings.GetSettings(ctx, userID)
	if err != nil {
		return reports.Overview{}, fmt.Errorf("load settings: %w", err)
	}
	trips, err := s.listAll(ctx, userID, reports.Filter{}, locOr(s.Location))
	if err != nil {
		return reports.Overview{}, err
	}
	return reports.Dashboard(trips, st, nowOr(s.Now), locOr(s.Location)), nil
}

// Payments summarizes payment methods over an optional platform and day range.
func (s ReportsService) Payments(ctx context.Context, userID string, q ReportQuery) (reports.Payments, error) {
	filter, err := s.rangeFilter(q)
	if err != nil {
		return reports.Payments{}, err
	}
	trips, err := s.listAll(ctx, userID, filter, locOr(s.Location))
	if err != nil {
		return reports.Payments{}, err
	}
	return reports.PaymentSummary(trips), nil
}

// CustomTrips returns the trips of a custom range, newest first.
func (s ReportsService) CustomTrips(ctx context.Context, userID string, q ReportQuery) ([]models.Trip, reports.Filter, error) {
	filter, err := s.rangeFilter(q)
	if err != nil {
		return nil, reports.Filter{}, err
	}
	trips, err := s.listAll(ctx, userID, filter, locOr(s.Location))
	if err != nil {
		return nil, reports.Filter{}, err
	}
	return reports.Recent(trips, 0), filter, nil
}

func (s ReportsService) rangeFilter(q ReportQuery) (reports.Filter, error) {
	loc := locOr(s.Location)
	from, err := parseDay("from", q.From, loc)
	if err != nil {
		return reports.Filter{}, err
	}
	to, err := parseDay("to", q.To, loc)
	if err != nil {
		return reports.Filter{}, err
	}
	f := reports.Filter{Platform: q.Platform, From: from, To: to}
	if err := f.Validate(loc); err != nil {
		return reports.Filter{}, err
	}
	return f, nil
}

// listAll pushes the filter down to the store and re-applies it in memory,
// since stores only narrow on a best-effort basis.
func (s ReportsService) listAll(ctx context.Context, userID string, f reports.Filter, loc *time.Location) ([]models.Trip, error) {
	since, until := dayBounds(f.From, f.To, loc)
	platform := f.PlatformLabel()
	if platform == reports.PlatformAll {
		platform = ""
	}
	trips, err := s.Trips.ListTrips(ctx, repositories.TripQuery{
		UserID:   userID,
		Platform: platform,
		Since:    since,
		Until:    until,
	})
	if err != nil {
		utils.LogFailure(s.RequestID, "reports", "list_trips", err)
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return f.Apply(trips, loc), nil
}
