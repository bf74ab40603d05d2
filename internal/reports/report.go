package reports

import (
	"strings"
	"time"

	"ridetracker/internal/domain"
	"ridetracker/internal/domain/models"
)

type Strategy string

const (
	StrategyDay     Strategy = "day"
	StrategyDays    Strategy = "days"
	StrategyWeeks   Strategy = "weeks"
	StrategyMonths  Strategy = "months"
	StrategyBilling Strategy = "billing"
	StrategyCustom  Strategy = "custom"
)

// MonthlyInsight is shown on monthly reports until real insights exist.
const MonthlyInsight = "Insights will appear here once enough rides are logged."

func ParseStrategy(s string) (Strategy, error) {
	st := Strategy(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StrategyDay, StrategyDays, StrategyWeeks, StrategyMonths, StrategyBilling, StrategyCustom:
		return st, nil
	}
	return "", domain.ValidationError{Field: "strategy", Msg: "unknown report strategy"}
}

// Request selects a strategy and its inputs. Day is used by StrategyDay,
// Filter.From and Filter.To bound StrategyCustom.
type Request struct {
	Strategy Strategy
	Filter   Filter
	Now      time.Time
	Day      time.Time
	Periods  int
	Location *time.Location
}

type Report struct {
	Strategy Strategy `json:"strategy"`
	Platform string   `json:"platform"`
	Buckets  []Bucket `json:"buckets"`
	Totals   Totals   `json:"totals"`
	Insight  string   `json:"insight,omitempty"`
}

// Build filters trips and buckets them. Money in the result is rounded to
// two decimals; totals are summed before rounding.
func Build(trips []models.Trip, req Request) (Report, error) {
	loc := req.Location
	if loc == nil {
		loc = time.UTC
	}
	if err := req.Filter.Validate(loc); err != nil {
		return Report{}, err
	}
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	filtered := req.Filter.Apply(trips, loc)
	out := Report{Strategy: req.Strategy, Platform: req.Filter.PlatformLabel()}

	var buckets []Bucket
	switch req.Strategy {
	case StrategyDay:
		day := req.Day
		if day.IsZero() {
			day = now
		}
		buckets = []Bucket{SingleDay(filtered, day, loc)}
	case StrategyDays:
		buckets = CalendarDays(filtered, loc)
	case StrategyWeeks:
		buckets = RollingWeeks(filtered, now, loc, req.Periods)
	case StrategyMonths:
		buckets = RollingMonths(filtered, now, loc, req.Periods)
		out.Insight = MonthlyInsight
	case StrategyBilling:
		buckets = BillingCycles(filtered, now, loc, req.Periods)
		out.Insight = MonthlyInsight
	case StrategyCustom:
		if req.Filter.From == nil || req.Filter.To == nil {
			return Report{}, domain.ValidationError{Field: "from", Msg: "custom range needs from and to"}
		}
		b, err := CustomRange(filtered, *req.Filter.From, *req.Filter.To, loc)
		if err != nil {
			return Report{}, err
		}
		buckets = []Bucket{b}
	default:
		return Report{}, domain.ValidationError{Field: "strategy", Msg: "unknown report strategy"}
	}

	var total Totals
	for _, b := range buckets {
		total = total.Merge(b.Totals)
	}
	out.Buckets = roundBuckets(buckets)
	out.Totals = total.Rounded()
	return out, nil
}
