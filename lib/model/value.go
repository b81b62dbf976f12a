package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value is a time-series cell. A null Value is a known gap, not a zero.
type Value struct {
	Float float64
	Valid bool
}

var Null = Value{}

func NewValue(v float64) Value {
	return Value{Float: v, Valid: true}
}

// ParseValue reads a numeric cell. Thousands separators written as spaces are ignored and a
// single comma is accepted as decimal separator. Anything else, NaN and infinities included,
// is null.
func ParseValue(s string) Value {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	if s == "" {
		return Null
	}

	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Null
	}

	return NewValue(f)
}

func (v Value) String() string {
	if !v.Valid {
		return "null"
	}
	return strconv.FormatFloat(v.Float, 'f', -1, 64)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Float)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Null
		return nil
	}

	var f float64
	err := json.Unmarshal(data, &f)
	if err != nil {
		return err
	}

	*v = NewValue(f)
	return nil
}
