package timeseries

import (
	"slices"

	"github.com/hashicorp/go-set/v2"

	"github.com/pescuma/taxis/lib/model"
)

type Policy struct {
	// CarryPastLast fills the years after an area's last record with its last value. When
	// false only the gaps up to the area's last record are filled.
	CarryPastLast bool
}

var DefaultPolicy = Policy{
	CarryPastLast: true,
}

// Backfill completes the series of each indicator so that every area has a record for every
// year of that indicator, starting at the area's first record. Missing and null values take
// the last known value of the area; with no known value yet they stay null. Years before the
// first record of an area are left absent. Backfill(Backfill(x)) == Backfill(x).
func Backfill(records []model.Record, policy Policy) []model.Record {
	o := newOrdering()
	for _, r := range records {
		o.see(r)
	}

	byIndicator := map[string][]model.Record{}
	for _, r := range records {
		byIndicator[r.Indicator] = append(byIndicator[r.Indicator], r)
	}

	result := make([]model.Record, 0, len(records))
	for _, indicator := range o.indicators {
		result = append(result, backfillIndicator(indicator, byIndicator[indicator], policy)...)
	}

	o.sort(result)

	return result
}

func backfillIndicator(indicator string, records []model.Record, policy Policy) []model.Record {
	years := set.New[int](16)
	var areas []string
	byArea := map[string]map[int]model.Value{}

	for _, r := range records {
		years.Insert(r.Year)

		values, ok := byArea[r.AreaID]
		if !ok {
			values = map[int]model.Value{}
			byArea[r.AreaID] = values
			areas = append(areas, r.AreaID)
		}

		values[r.Year] = r.Value
	}

	sortedYears := years.Slice()
	slices.Sort(sortedYears)
	if len(sortedYears) == 0 {
		return nil
	}

	result := make([]model.Record, 0, len(sortedYears)*len(areas))

	for _, area := range areas {
		values := byArea[area]

		first, last := yearRange(values)
		if policy.CarryPastLast {
			last = sortedYears[len(sortedYears)-1]
		}

		prev := model.Null
		for _, year := range sortedYears {
			if year < first || year > last {
				continue
			}

			v, ok := values[year]
			if ok && v.Valid {
				prev = v
			}

			result = append(result, model.NewRecord(area, year, indicator, prev))
		}
	}

	return result
}

func yearRange(values map[int]model.Value) (int, int) {
	first, last := 0, 0
	initialized := false

	for year := range values {
		if !initialized {
			first, last = year, year
			initialized = true
			continue
		}

		first = min(first, year)
		last = max(last, year)
	}

	return first, last
}

type ordering struct {
	areas      map[string]int
	indicators []string
	indexes    map[string]int
}

func newOrdering() *ordering {
	return &ordering{
		areas:   map[string]int{},
		indexes: map[string]int{},
	}
}

func (o *ordering) see(r model.Record) {
	if _, ok := o.areas[r.AreaID]; !ok {
		o.areas[r.AreaID] = len(o.areas)
	}
	if _, ok := o.indexes[r.Indicator]; !ok {
		o.indexes[r.Indicator] = len(o.indicators)
		o.indicators = append(o.indicators, r.Indicator)
	}
}

// sort orders records by area of first appearance, then year, then indicator of first appearance.
func (o *ordering) sort(records []model.Record) {
	slices.SortStableFunc(records, func(a, b model.Record) int {
		if c := o.areas[a.AreaID] - o.areas[b.AreaID]; c != 0 {
			return c
		}
		if c := a.Year - b.Year; c != 0 {
			return c
		}
		return o.indexes[a.Indicator] - o.indexes[b.Indicator]
	})
}
