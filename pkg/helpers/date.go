package helpers

import "time"

// DateLayout is the wire format for day-granularity dates.
const DateLayout = "2006-01-02"

// ParseDateInput parses a yyyy-mm-dd form value as local midnight.
func ParseDateInput(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.Local)
}

// Today returns the current day truncated to local midnight.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}

// ParseOptionalDate parses like ParseDateInput but maps "" to nil.
func ParseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := ParseDateInput(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
