package utils

import (
	"strings"
	"time"
)

const (
	LayoutDate     = "2006-01-02"
	LayoutDateTime = "2006-01-02 15:04:05"
)

// ReportZoneFallback is used when the tz database has no entry for the configured zone.
var ReportZoneFallback = time.FixedZone("GST", 4*60*60)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// LoadLocation resolves an IANA zone name, falling back to UTC+4.
func LoadLocation(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		return ReportZoneFallback
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return ReportZoneFallback
	}
	return loc
}

// ParseDate parses YYYY-MM-DD as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(LayoutDate, strings.TrimSpace(s), loc)
}

// ParseTimestamp accepts RFC 3339 or a bare YYYY-MM-DD (midnight in loc).
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(LayoutDateTime, s, loc); err == nil {
		return t, nil
	}
	return ParseDate(s, loc)
}

// FormatDate formats time to YYYY-MM-DD in loc.
func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(LayoutDate)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in loc.
func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(LayoutDateTime)
}
