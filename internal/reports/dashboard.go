package reports

import (
	"sort"
	"time"

	"ridetracker/internal/domain/models"

	"github.com/shopspring/decimal"
)

const recentTripsLimit = 5

// Overview backs the dashboard cards.
type Overview struct {
	MonthToDateNet  decimal.Decimal `json:"monthToDateNet"`
	TotalNet        decimal.Decimal `json:"totalNet"`
	AverageDailyNet decimal.Decimal `json:"averageDailyNet"`
	MonthlyGoal     decimal.Decimal `json:"monthlyGoal"`
	GoalProgress    decimal.Decimal `json:"goalProgress"`
	RideCount       int             `json:"rideCount"`
	ActiveDays      int             `json:"activeDays"`
	RecentTrips     []models.Trip   `json:"recentTrips"`
}

// Dashboard computes month-to-date net (start of the month up to and
// including now), all-time net, net per active day and progress towards the
// monthly goal. Trips dated after now do not count towards the month.
func Dashboard(trips []models.Trip, s models.Settings, now time.Time, loc *time.Location) Overview {
	monthStart := MonthStart(now, loc)

	var month, all Totals
	days := map[int64]bool{}
	for _, t := range trips {
		all.Add(t)
		days[DayStart(t.Date, loc).Unix()] = true
		if !t.Date.Before(monthStart) && !t.Date.After(now) {
			month.Add(t)
		}
	}

	out := Overview{
		MonthToDateNet:  month.Net.Round(2),
		TotalNet:        all.Net.Round(2),
		AverageDailyNet: decimal.Zero,
		MonthlyGoal:     s.MonthlyGoal,
		GoalProgress:    decimal.Zero,
		RideCount:       all.RideCount,
		ActiveDays:      len(days),
		RecentTrips:     Recent(trips, recentTripsLimit),
	}
	if len(days) > 0 {
		out.AverageDailyNet = all.Net.Div(decimal.NewFromInt(int64(len(days)))).Round(2)
	}
	if s.MonthlyGoal.IsPositive() {
		out.GoalProgress = month.Net.Div(s.MonthlyGoal).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return out
}

// SortNewestFirst sorts in place by date, newest first, ties by id.
func SortNewestFirst(trips []models.Trip) {
	sort.SliceStable(trips, func(i, j int) bool {
		if trips[i].Date.Equal(trips[j].Date) {
			return trips[i].ID > trips[j].ID
		}
		return trips[i].Date.After(trips[j].Date)
	})
}

// Recent returns up to limit trips, newest first, without touching the input.
func Recent(trips []models.Trip, limit int) []models.Trip {
	sorted := make([]models.Trip, len(trips))
	copy(sorted, trips)
	SortNewestFirst(sorted)
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
