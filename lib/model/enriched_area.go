package model

import (
	"bytes"
	"encoding/json"
	"sort"
)

// DataPoint holds all indicator values of one area for one year.
type DataPoint struct {
	Year   int
	Values map[string]Value
}

func NewDataPoint(year int) DataPoint {
	return DataPoint{
		Year:   year,
		Values: map[string]Value{},
	}
}

func (d DataPoint) Get(indicator string) (Value, bool) {
	v, ok := d.Values[indicator]
	return v, ok
}

func (d DataPoint) Indicators() []string {
	result := make([]string, 0, len(d.Values))
	for k := range d.Values {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}

// MarshalJSON writes the point flat: {"year": 2010, "population": 100, "taxis": 5}.
func (d DataPoint) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"year":`)
	buf.WriteString(jsonInt(d.Year))

	for _, k := range d.Indicators() {
		if k == "year" {
			continue
		}

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := d.Values[k].MarshalJSON()
		if err != nil {
			return nil, err
		}

		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (d DataPoint) Clone() DataPoint {
	result := NewDataPoint(d.Year)
	for k, v := range d.Values {
		result.Values[k] = v
	}
	return result
}

// EnrichedArea is an area with its metadata and merged time series attached. It is built
// once per run and only read afterwards.
type EnrichedArea struct {
	Area
	Meta Fields
	Data []DataPoint
}

func NewEnrichedArea(a *Area) *EnrichedArea {
	return &EnrichedArea{
		Area: *a.Clone(),
		Meta: Fields{},
		Data: []DataPoint{},
	}
}

func (e *EnrichedArea) Clone() *EnrichedArea {
	result := &EnrichedArea{
		Area: *e.Area.Clone(),
		Meta: e.Meta.Clone(),
		Data: make([]DataPoint, 0, len(e.Data)),
	}
	for _, d := range e.Data {
		result.Data = append(result.Data, d.Clone())
	}
	return result
}

func jsonInt(v int) string {
	b, _ := json.Marshal(v)
	return string(b)
}
