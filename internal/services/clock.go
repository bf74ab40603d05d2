package services

import (
	"time"

	"ridetracker/internal/domain"
	"ridetracker/internal/reports"
	"ridetracker/internal/utils"
)

func nowOr(now func() time.Time) time.Time {
	if now != nil {
		return now()
	}
	return time.Now()
}

func locOr(loc *time.Location) *time.Location {
	if loc != nil {
		return loc
	}
	return utils.ReportZoneFallback
}

// parseDay reads an optional YYYY-MM-DD query value in loc.
func parseDay(field, raw string, loc *time.Location) (*time.Time, error) {
	if utils.TrimOrEmpty(raw) == "" {
		return nil, nil
	}
	t, err := utils.ParseDate(raw, loc)
	if err != nil {
		return nil, domain.ValidationError{Field: field, Msg: "must be YYYY-MM-DD", Err: err}
	}
	return &t, nil
}

// dayBounds turns an inclusive day range into [since, until) instants.
func dayBounds(from, to *time.Time, loc *time.Location) (since, until *time.Time) {
	if from != nil {
		s := reports.DayStart(*from, loc)
		since = &s
	}
	if to != nil {
		u := reports.DayStart(*to, loc).AddDate(0, 0, 1)
		until = &u
	}
	return since, until
}
