package gateway

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"room-billing/internal/domain"
)

// flexNumber decodes a JSON number, a numeric string (DRF decimals) or a
// boolean. Anything else, null and non-finite values included, leaves it unset.
type flexNumber struct {
	value float64
	set   bool
}

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	*n = flexNumber{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case 'n', '{', '[':
		return nil
	case 't':
		*n = flexNumber{value: 1, set: true}
		return nil
	case 'f':
		*n = flexNumber{value: 0, set: true}
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = flexNumber{value: 0, set: true}
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && isFinite(f) {
			*n = flexNumber{value: f, set: true}
		}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil && isFinite(f) {
		*n = flexNumber{value: f, set: true}
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// flexText decodes a JSON string or number as text. Other values leave it empty.
type flexText string

func (t *flexText) UnmarshalJSON(b []byte) error {
	*t = ""
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			*t = flexText(s)
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		*t = flexText(b)
	}
	return nil
}

func (t flexText) String() string { return strings.TrimSpace(string(t)) }

// firstPresent returns the first field that was present in the payload.
func firstPresent(ns ...flexNumber) *float64 {
	for _, n := range ns {
		if n.set {
			v := n.value
			return &v
		}
	}
	return nil
}

// firstPresentOr is firstPresent with a default.
func firstPresentOr(def float64, ns ...flexNumber) float64 {
	if v := firstPresent(ns...); v != nil {
		return *v
	}
	return def
}

// firstNonZero returns the first present non-zero field, or zero.
func firstNonZero(ns ...flexNumber) float64 {
	for _, n := range ns {
		if n.set && n.value != 0 {
			return n.value
		}
	}
	return 0
}

// firstText returns the first non-blank text.
func firstText(ts ...flexText) string {
	for _, t := range ts {
		if s := t.String(); s != "" {
			return s
		}
	}
	return ""
}

func orPlaceholder(s string) string {
	if s == "" {
		return domain.Placeholder
	}
	return s
}

func joinName(first, last flexText) string {
	return strings.TrimSpace(first.String() + " " + last.String())
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// parseTimestamp accepts the ISO forms the backend emits. Zone-less values
// are read in loc. Unparseable input is treated as absent.
func parseTimestamp(s string, loc *time.Location) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t
		}
	}
	return nil
}

// firstTimestamp parses the first non-blank candidate.
func firstTimestamp(loc *time.Location, ts ...flexText) *time.Time {
	for _, t := range ts {
		if s := t.String(); s != "" {
			return parseTimestamp(s, loc)
		}
	}
	return nil
}

// leadingByte returns the first non-space byte of a payload.
func leadingByte(raw json.RawMessage) byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	return raw[0]
}

// patientRef decodes either a nested patient object or a bare id.
type patientRef struct {
	ID        flexText `json:"id"`
	FirstName flexText `json:"first_name"`
	LastName  flexText `json:"last_name"`
}

func (p *patientRef) UnmarshalJSON(b []byte) error {
	*p = patientRef{}
	if leadingByte(b) != '{' {
		return p.ID.UnmarshalJSON(b)
	}
	type plain patientRef
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	*p = patientRef(v)
	return nil
}

// roomRef decodes either a nested room object or a bare id.
type roomRef struct {
	Name        flexText   `json:"name"`
	PricePerDay flexNumber `json:"price_per_day"`
}

func (r *roomRef) UnmarshalJSON(b []byte) error {
	*r = roomRef{}
	if leadingByte(b) != '{' {
		return nil
	}
	type plain roomRef
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	*r = roomRef(v)
	return nil
}
