package services

import (
	"strconv"
	"time"
)

// Layout of the utc field
const UTCLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// Date layouts tried in order for non-numeric input
var timestampLayouts = []string{
	"2006-1-2",
	"2 January 2006, MST",
}

// Timestamp
type Timestamp struct {
	Unix int64  `json:"unix"`
	UTC  string `json:"utc"`
}

// NewTimestamp
func NewTimestamp(t time.Time) Timestamp {
	t = t.UTC()
	return Timestamp{Unix: t.UnixMilli(), UTC: t.Format(UTCLayout)}
}

// TimestampResolver
type TimestampResolver struct {
	now func() time.Time
}

// NewTimestampResolver. now defaults to time.Now
func NewTimestampResolver(now func() time.Time) TimestampResolver {
	if now == nil {
		now = time.Now
	}
	return TimestampResolver{now: now}
}

// Resolve input into a timestamp. Empty input means now, integers are milliseconds
// since the epoch, dates are taken at midnight UTC.
func (r TimestampResolver) Resolve(input string) (Timestamp, error) {
	if input == "" {
		return NewTimestamp(r.now()), nil
	}

	if ms, err := strconv.ParseInt(input, 10, 64); err == nil {
		return NewTimestamp(time.UnixMilli(ms)), nil
	}

	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, input)
		if err != nil {
			continue
		}
		// zone token is ignored
		year, month, day := t.Date()
		return NewTimestamp(time.Date(year, month, day, 0, 0, 0, 0, time.UTC)), nil
	}

	return Timestamp{}, ErrInvalidDate
}
