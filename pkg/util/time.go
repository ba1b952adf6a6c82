package util

import (
	"strings"
	"time"
)

const (
	DateTimeFormat = "2006-01-02 15:04:05"
	DateFormat     = "2006-01-02"
)

// Layouts the backend is known to emit for timestamps, most specific first.
var serverTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	DateTimeFormat,
	DateFormat,
}

func StrToDate(str string) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, str, GetDefaultTimezone())
	if err != nil {
		return time.Time{}, err
	}

	return t, nil
}

// ParseServerTime parses a backend timestamp. Naive timestamps are taken as UTC.
func ParseServerTime(str string) (time.Time, bool) {
	str = strings.TrimSpace(str)
	if str == "" {
		return time.Time{}, false
	}
	for _, layout := range serverTimeLayouts {
		if t, err := time.ParseInLocation(layout, str, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func GetDefaultTimezone() *time.Location {
	localTimeZone, _ := time.LoadLocation("Local")
	return localTimeZone
}
