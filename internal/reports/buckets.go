package reports

import (
	"sort"
	"time"

	"ridetracker/internal/domain"
	"ridetracker/internal/domain/models"
)

// Bucket is one period of a report. End is exclusive.
type Bucket struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Totals
}

func collect(trips []models.Trip, label string, start, end time.Time) Bucket {
	b := Bucket{Label: label, Start: start, End: end}
	for _, t := range trips {
		if within(t.Date, start, end) {
			b.Add(t)
		}
	}
	return b
}

// SingleDay reduces the trips that fall on day's calendar date in loc.
func SingleDay(trips []models.Trip, day time.Time, loc *time.Location) Bucket {
	start := DayStart(day, loc)
	return collect(trips, start.Format(LayoutDay), start, start.AddDate(0, 0, 1))
}

// CalendarDays groups trips per calendar date, newest first.
// Days without trips are not emitted.
func CalendarDays(trips []models.Trip, loc *time.Location) []Bucket {
	byDay := map[int64]*Bucket{}
	for _, t := range trips {
		start := DayStart(t.Date, loc)
		key := start.Unix()
		b, ok := byDay[key]
		if !ok {
			b = &Bucket{Label: start.Format(LayoutDay), Start: start, End: start.AddDate(0, 0, 1)}
			byDay[key] = b
		}
		b.Add(t)
	}

	out := make([]Bucket, 0, len(byDay))
	for _, b := range byDay {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.After(out[j].Start) })
	return out
}

// RollingWeeks returns n Monday-aligned weeks ending with the current one,
// oldest first. Empty weeks are zero-filled.
func RollingWeeks(trips []models.Trip, now time.Time, loc *time.Location, n int) []Bucket {
	current := WeekStart(now, loc)
	return rolling(trips, n, LayoutWeek, func(back int) (time.Time, time.Time) {
		start := current.AddDate(0, 0, -7*back)
		return start, start.AddDate(0, 0, 7)
	})
}

// RollingMonths returns n calendar months ending with the current one, oldest first.
func RollingMonths(trips []models.Trip, now time.Time, loc *time.Location, n int) []Bucket {
	current := MonthStart(now, loc)
	return rolling(trips, n, LayoutMonth, func(back int) (time.Time, time.Time) {
		start := current.AddDate(0, -back, 0)
		return start, start.AddDate(0, 1, 0)
	})
}

// BillingCycles returns n 21st-to-20th periods ending with the current one,
// oldest first. Labels come from the period start.
func BillingCycles(trips []models.Trip, now time.Time, loc *time.Location, n int) []Bucket {
	current := BillingCycleStart(now, loc)
	return rolling(trips, n, LayoutMonth, func(back int) (time.Time, time.Time) {
		start := current.AddDate(0, -back, 0)
		return start, start.AddDate(0, 1, 0)
	})
}

func rolling(trips []models.Trip, n int, layout string, period func(back int) (time.Time, time.Time)) []Bucket {
	if n <= 0 {
		n = DefaultWindow
	}
	out := make([]Bucket, n)
	for i := 0; i < n; i++ {
		start, end := period(n - 1 - i)
		out[i] = Bucket{Label: start.Format(layout), Start: start, End: end}
	}
	for _, t := range trips {
		i := sort.Search(n, func(i int) bool { return t.Date.Before(out[i].End) })
		if i < n && !t.Date.Before(out[i].Start) {
			out[i].Add(t)
		}
	}
	return out
}

// CustomRange reduces trips between from and to, both days inclusive.
func CustomRange(trips []models.Trip, from, to time.Time, loc *time.Location) (Bucket, error) {
	start := DayStart(from, loc)
	last := DayStart(to, loc)
	if last.Before(start) {
		return Bucket{}, domain.ValidationError{Field: "to", Msg: "must not be before from"}
	}
	label := start.Format(LayoutDay) + " to " + last.Format(LayoutDay)
	return collect(trips, label, start, last.AddDate(0, 0, 1)), nil
}

func roundBuckets(in []Bucket) []Bucket {
	out := make([]Bucket, len(in))
	for i, b := range in {
		b.Totals = b.Totals.Rounded()
		out[i] = b
	}
	return out
}
