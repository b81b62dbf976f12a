package model

import "fmt"

// Record is one time-series cell in long form.
type Record struct {
	AreaID    string
	Year      int
	Indicator string
	Value     Value
}

type RecordKey struct {
	AreaID    string
	Year      int
	Indicator string
}

func NewRecord(areaID string, year int, indicator string, value Value) Record {
	return Record{
		AreaID:    areaID,
		Year:      year,
		Indicator: indicator,
		Value:     value,
	}
}

func (r Record) Key() RecordKey {
	return RecordKey{AreaID: r.AreaID, Year: r.Year, Indicator: r.Indicator}
}

func (r Record) String() string {
	return fmt.Sprintf("{%v,%v,%v:%v}", r.AreaID, r.Year, r.Indicator, r.Value)
}
