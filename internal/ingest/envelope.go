package ingest

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"findash/internal/domain"
)

// Scalar is a leaf value taken from the extraction output. Its dynamic type is
// always string, json.Number or bool.
type Scalar interface{}

// envelopeKey is the member that wraps every extracted value.
const envelopeKey = "value"

// Unwrap applies the value envelope to raw. A JSON object yields its "value"
// member (none when absent); anything else is taken as the literal. Only
// scalars count as values: null and nested structures yield none.
func Unwrap(raw interface{}) (Scalar, bool) {
	switch v := open(raw).(type) {
	case string, json.Number, bool:
		return v, true
	default:
		return nil, false
	}
}

// UnwrapObject applies the value envelope to a section container and returns
// it when it is a JSON object.
func UnwrapObject(raw interface{}) (map[string]interface{}, bool) {
	m, ok := open(raw).(map[string]interface{})
	return m, ok
}

// UnwrapArray applies the value envelope to a list container and returns it
// when it is a JSON array.
func UnwrapArray(raw interface{}) ([]interface{}, bool) {
	a, ok := open(raw).([]interface{})
	return a, ok
}

func open(raw interface{}) interface{} {
	if m, ok := raw.(map[string]interface{}); ok {
		return m[envelopeKey]
	}
	return raw
}

// ParseText renders an enveloped scalar as text. Numbers keep their JSON
// spelling; booleans become "true" or "false".
func ParseText(raw interface{}) *string {
	v, ok := Unwrap(raw)
	if !ok {
		return nil
	}
	s := scalarText(v)
	return &s
}

// ParseDate accepts only YYYY-MM-DD strings naming a real calendar day.
func ParseDate(raw interface{}) domain.NullDate {
	v, ok := Unwrap(raw)
	if !ok {
		return domain.NullDate{}
	}
	s, ok := v.(string)
	if !ok || len(s) != len(domain.DateLayout) {
		return domain.NullDate{}
	}
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return domain.NullDate{}
	}
	return domain.NewNullDate(t)
}

// ParseDecimal accepts JSON numbers and numeric strings. Everything else,
// including blank strings and booleans, is null.
func ParseDecimal(raw interface{}) decimal.NullDecimal {
	v, ok := Unwrap(raw)
	if !ok {
		return decimal.NullDecimal{}
	}
	return toDecimal(v)
}

// ParseInt accepts integral numbers and integer strings.
func ParseInt(raw interface{}) *int64 {
	v, ok := Unwrap(raw)
	if !ok {
		return nil
	}
	return toInt(v)
}

// ParseTimestamp reads an extended-JSON {"$date": "<ISO-8601>"} wrapper.
// Any other shape or unparseable text is null.
func ParseTimestamp(raw interface{}) *time.Time {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}
	s, ok := m["$date"].(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// parseFileSize reads {"$numberLong": "123"}, a bare number or a numeric
// string. Absent or unreadable sizes are 0.
func parseFileSize(raw interface{}) int64 {
	if m, ok := raw.(map[string]interface{}); ok {
		raw = m["$numberLong"]
	}
	switch raw.(type) {
	case string, json.Number:
		if n := toInt(raw); n != nil {
			return *n
		}
	}
	return 0
}

// plainText reads a top-level document field, which is never enveloped.
// Extended-JSON object ids ({"$oid": "..."}) are accepted.
func plainText(raw interface{}) *string {
	if m, ok := raw.(map[string]interface{}); ok {
		raw = m["$oid"]
	}
	switch v := raw.(type) {
	case string, json.Number, bool:
		s := scalarText(v)
		return &s
	default:
		return nil
	}
}

func plainBool(raw interface{}) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	default:
		return false
	}
}

func scalarText(v Scalar) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case bool:
		if s {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

func toDecimal(v Scalar) decimal.NullDecimal {
	var s string
	switch n := v.(type) {
	case json.Number:
		s = n.String()
	case string:
		s = strings.TrimSpace(n)
	default:
		return decimal.NullDecimal{}
	}
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func toInt(v Scalar) *int64 {
	d := toDecimal(v)
	if !d.Valid || !d.Decimal.IsInteger() {
		return nil
	}
	n := d.Decimal.IntPart()
	return &n
}
