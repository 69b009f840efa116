package models

import (
	"fmt"
	"time"
)

const (
	compactDateLayout = "20060102"
	dottedDateLayout  = "2006.01.02"
)

// LogDate is a calendar day embedded in a log file name. The zero value is not a valid date.
type LogDate struct {
	day time.Time
}

// ParseLogDate parses an 8-digit YYYYMMDD string. Out-of-range components such as
// June 31 are rejected instead of being normalized into the next month.
func ParseLogDate(s string) (LogDate, error) {
	if len(s) != len(compactDateLayout) {
		return LogDate{}, fmt.Errorf("invalid log date %q: want 8 digits", s)
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return LogDate{}, fmt.Errorf("invalid log date %q: want 8 digits", s)
		}
	}

	day, err := time.Parse(compactDateLayout, s)
	if err != nil {
		return LogDate{}, fmt.Errorf("invalid log date %q: %w", s, err)
	}
	return LogDate{day: day}, nil
}

// NewLogDate builds a LogDate from calendar components, normalizing like time.Date.
func NewLogDate(year int, month time.Month, day int) LogDate {
	return LogDate{day: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d LogDate) IsZero() bool { return d.day.IsZero() }

func (d LogDate) After(other LogDate) bool { return d.day.After(other.day) }

func (d LogDate) Equal(other LogDate) bool { return d.day.Equal(other.day) }

func (d LogDate) Time() time.Time { return d.day }

// Compact formats the date as it appears in log file names, e.g. 20170630.
func (d LogDate) Compact() string { return d.day.Format(compactDateLayout) }

// Dotted formats the date as it appears in report names, e.g. 2017.06.30.
func (d LogDate) Dotted() string { return d.day.Format(dottedDateLayout) }

func (d LogDate) String() string { return d.Dotted() }

func (d LogDate) MarshalText() ([]byte, error) {
	return []byte(d.Dotted()), nil
}

func (d *LogDate) UnmarshalText(text []byte) error {
	day, err := time.Parse(dottedDateLayout, string(text))
	if err != nil {
		return fmt.Errorf("invalid report date %q: %w", text, err)
	}
	d.day = day
	return nil
}
