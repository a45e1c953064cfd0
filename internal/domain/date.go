package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the day-month-year wire format used on every date field in
// client records, both in YAML inputs and batch CSV columns.
const DateLayout = "02-01-2006"

// Date is a calendar date carried in DD-MM-YYYY form. It wraps time.Time so
// the calculation code can use the standard library directly.
type Date struct {
	time.Time
}

// ParseDate parses a DD-MM-YYYY string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want DD-MM-YYYY): %w", s, err)
	}
	return Date{t}, nil
}

// NewDate builds a Date from calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// UnmarshalYAML accepts DD-MM-YYYY scalars.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML emits the DD-MM-YYYY form.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalJSON accepts DD-MM-YYYY strings.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON emits the DD-MM-YYYY form.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
