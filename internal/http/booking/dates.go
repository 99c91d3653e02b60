package booking

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// parseDate accepts RFC3339 timestamps or calendar dates. Values without a
// zone are read as UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC3339", s)
}

// dateValue decodes a JSON string with parseDate.
type dateValue struct {
	time.Time
	set bool
}

func (d *dateValue) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.New("date must be a string")
	}

	if strings.TrimSpace(s) == "" {
		return nil
	}

	t, err := parseDate(s)
	if err != nil {
		return err
	}

	d.Time, d.set = t, true

	return nil
}
