package timeseries

import (
	"slices"

	"github.com/samber/lo"

	"github.com/pescuma/taxis/lib/model"
)

// Concat chains the record sets of several sources.
func Concat(sources ...[]model.Record) []model.Record {
	var result []model.Record
	for _, s := range sources {
		result = append(result, s...)
	}
	return result
}

// Join attaches the records to the areas, one data point per year with the values of all
// indicators of that year. Areas without records keep an empty series and records of unknown
// areas are ignored.
func Join(areas []*model.EnrichedArea, records []model.Record) []*model.EnrichedArea {
	byArea := lo.GroupBy(records, func(r model.Record) string {
		return r.AreaID
	})

	return lo.Map(areas, func(a *model.EnrichedArea, _ int) *model.EnrichedArea {
		result := a.Clone()
		result.Data = mergeYears(result.Data, byArea[a.ID])
		return result
	})
}

func mergeYears(existing []model.DataPoint, records []model.Record) []model.DataPoint {
	byYear := lo.KeyBy(existing, func(d model.DataPoint) int {
		return d.Year
	})

	for _, r := range records {
		d, ok := byYear[r.Year]
		if !ok {
			d = model.NewDataPoint(r.Year)
			byYear[r.Year] = d
		}
		d.Values[r.Indicator] = r.Value
	}

	result := lo.Values(byYear)
	slices.SortFunc(result, func(a, b model.DataPoint) int {
		return a.Year - b.Year
	})

	if result == nil {
		result = []model.DataPoint{}
	}

	return result
}
