package shared

import "time"

// ParseDate accepts RFC3339 or YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

// Today returns the current date in the canonical YYYY-MM-DD form used
// for log_date and attendance day columns.
func Today() string {
	return time.Now().Format("2006-01-02")
}
