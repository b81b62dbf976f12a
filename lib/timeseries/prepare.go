package timeseries

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pescuma/taxis/lib/model"
)

var periodRE = regexp.MustCompile(`^\s*(\d{4})(?:[\s_\-:]+(.+?))?\s*$`)

type period struct {
	column    string
	year      int
	indicator string
}

// ParsePeriod reads a wide-table header. "2010" is the year 2010 of the source indicator,
// "2010 licensed" is the year 2010 of the "<source>_licensed" indicator.
func ParsePeriod(source string, column string) (int, string, bool) {
	m := periodRE.FindStringSubmatch(column)
	if m == nil {
		return 0, "", false
	}

	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}

	if m[2] == "" {
		return year, source, true
	}

	sub := strings.ToLower(strings.Join(strings.Fields(m[2]), "_"))
	return year, source + "_" + sub, true
}

// Prepare pivots a wide table (one row per area, one column per period) into one record
// per (area, year, indicator). Columns that are not periods are dropped and cells that are
// not numbers become null records. Cells absent from a row produce no record. A key seen
// twice keeps the value of the later row.
func Prepare(source string, header []string, rows []model.Row, idColumn string) []model.Record {
	var periods []period
	for _, h := range header {
		year, indicator, ok := ParsePeriod(source, h)
		if ok {
			periods = append(periods, period{column: h, year: year, indicator: indicator})
		}
	}

	result := make([]model.Record, 0, len(rows)*len(periods))
	index := map[model.RecordKey]int{}

	for _, row := range rows {
		id := strings.TrimSpace(row[idColumn])
		if id == "" {
			continue
		}

		for _, p := range periods {
			cell, ok := row[p.column]
			if !ok {
				continue
			}

			r := model.NewRecord(id, p.year, p.indicator, model.ParseValue(cell))

			if i, ok := index[r.Key()]; ok {
				result[i] = r
				continue
			}

			index[r.Key()] = len(result)
			result = append(result, r)
		}
	}

	return result
}
