package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the only accepted calendar-date format.
const DateLayout = "2006-01-02"

// NullDate is a calendar date stored as YYYY-MM-DD text, or NULL.
type NullDate struct {
	Time  time.Time
	Valid bool
}

// NewNullDate returns a valid NullDate for t, truncated to the day.
func NewNullDate(t time.Time) NullDate {
	y, m, d := t.Date()
	return NullDate{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

// String returns the YYYY-MM-DD form, or "" when null.
func (d NullDate) String() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(DateLayout)
}

// Value implements driver.Valuer.
func (d NullDate) Value() (driver.Value, error) {
	if !d.Valid {
		return nil, nil
	}
	return d.Time.Format(DateLayout), nil
}

// Scan implements sql.Scanner. The sqlite3 driver hands DATE columns back as
// time.Time; expressions come back as text.
func (d *NullDate) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = NullDate{}
		return nil
	case time.Time:
		if v.IsZero() {
			*d = NullDate{}
			return nil
		}
		*d = NewNullDate(v)
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("NullDate: cannot scan %T", src)
	}
}

func (d *NullDate) parse(s string) error {
	if s == "" {
		*d = NullDate{}
		return nil
	}
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("NullDate: %w", err)
	}
	*d = NullDate{Time: t, Valid: true}
	return nil
}

// MarshalJSON renders the date as "YYYY-MM-DD" or null.
func (d NullDate) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(DateLayout))
}
