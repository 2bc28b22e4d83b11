package models

import (
	"fmt"
	"strings"
	"time"
)

// Layouts accepted for publication dates, tried in order
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Date is a publication date decoded from a JSON string
type Date struct {
	time.Time
}

// ParseDate parses s with the first matching layout
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t}, nil
		}
	}
	return Date{}, fmt.Errorf("unrecognized date %q, use YYYY-MM-DD or RFC3339", s)
}

// MustDate is ParseDate for literals in tests and fixtures
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return fmt.Errorf("publication date is null")
	}
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return fmt.Errorf("publication date must be a string, got %s", raw)
	}
	parsed, err := ParseDate(raw[1 : len(raw)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// Long formats the date the way the pages display it, e.g. "June 1, 2024"
func (d Date) Long() string {
	return d.Format("January 2, 2006")
}
