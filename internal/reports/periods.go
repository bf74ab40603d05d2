package reports

import "time"

// BillingCycleDay is the first day of a billing period; a period runs to the
// 20th of the following month.
const BillingCycleDay = 21

// DefaultWindow is the number of periods in rolling reports.
const DefaultWindow = 12

const (
	LayoutDay   = "2006-01-02"
	LayoutWeek  = "Jan 2"
	LayoutMonth = "Jan 06"
)

func DayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// WeekStart returns Monday 00:00 of the ISO week containing t.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	d := DayStart(t, loc)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func MonthStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
}

// BillingCycleStart returns the 21st that opens the billing period holding t.
func BillingCycleStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	month := t.Month()
	if t.Day() < BillingCycleDay {
		month--
	}
	return time.Date(t.Year(), month, BillingCycleDay, 0, 0, 0, 0, loc)
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
