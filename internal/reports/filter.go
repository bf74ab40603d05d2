package reports

import (
	"time"

	"ridetracker/internal/domain"
	"ridetracker/internal/domain/models"
)

// PlatformAll matches every platform.
const PlatformAll = "all"

// Filter narrows trips by platform and by an inclusive day range.
// To covers its whole day.
type Filter struct {
	Platform string
	From     *time.Time
	To       *time.Time
}

func (f Filter) platform() string {
	p := domain.NormalizeIdentifier(f.Platform)
	if p == PlatformAll {
		return ""
	}
	return p
}

func (f Filter) Match(t models.Trip, loc *time.Location) bool {
	if p := f.platform(); p != "" && domain.NormalizeIdentifier(t.Platform) != p {
		return false
	}
	if f.From != nil && t.Date.Before(DayStart(*f.From, loc)) {
		return false
	}
	if f.To != nil && !t.Date.Before(DayStart(*f.To, loc).AddDate(0, 0, 1)) {
		return false
	}
	return true
}

func (f Filter) Apply(trips []models.Trip, loc *time.Location) []models.Trip {
	out := make([]models.Trip, 0, len(trips))
	for _, t := range trips {
		if f.Match(t, loc) {
			out = append(out, t)
		}
	}
	return out
}

// Validate rejects a range whose end precedes its start.
func (f Filter) Validate(loc *time.Location) error {
	if f.From != nil && f.To != nil && DayStart(*f.To, loc).Before(DayStart(*f.From, loc)) {
		return domain.ValidationError{Field: "to", Msg: "must not be before from"}
	}
	return nil
}

func (f Filter) PlatformLabel() string {
	if p := f.platform(); p != "" {
		return p
	}
	return PlatformAll
}
