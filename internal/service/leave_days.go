package service

import (
	"errors"
	"math"
	"time"
)

var leaveDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseLeaveDate accepts a calendar date or an RFC3339 timestamp. Values
// without a zone are read as UTC, so plain dates never straddle a DST change.
func ParseLeaveDate(value string) (time.Time, error) {
	for _, layout := range leaveDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("invalid date")
}

// CountLeaveDays returns the inclusive number of days between start and end:
// partial days round up, and start == end counts as one day. A result <= 0
// means end lies before start.
func CountLeaveDays(start, end time.Time) int {
	// time.Duration saturates past ~292 years, so work from epoch seconds.
	secs := end.Unix() - start.Unix()
	nanos := end.Nanosecond() - start.Nanosecond()
	days := math.Ceil(float64(secs)/secondsPerDay + float64(nanos)/(secondsPerDay*1e9))
	return int(days) + 1
}

const secondsPerDay = 24 * 60 * 60
