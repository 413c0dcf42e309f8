package internal

import "time"

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate accepts ISO-8601 timestamps or plain dates. Malformed input is a
// ValidationError, never an uncaught parse failure.
func ParseDate(field, value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, NewValidationError(field+" must be an ISO-8601 date", ErrCodeInvalidDate)
}

// ParseOptionalDate parses when value is non-nil and non-empty.
func ParseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := ParseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
