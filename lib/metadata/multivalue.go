package metadata

import (
	"strings"

	"github.com/hashicorp/go-set/v2"

	"github.com/pescuma/taxis/lib/model"
)

// MultiValueMarker flags a column as multi-valued when it ends its header.
const MultiValueMarker = "[]"

const DefaultDelimiter = "|"

// GetMultiValueFields returns the columns holding delimited lists: the ones marked in the
// header and the ones where any row contains the delimiter.
func GetMultiValueFields(header []string, rows []model.Row, delimiter string) *set.Set[string] {
	result := set.New[string](len(header))

	for _, h := range header {
		if strings.HasSuffix(h, MultiValueMarker) {
			result.Insert(h)
		}
	}

	if delimiter == "" {
		return result
	}

	for _, row := range rows {
		for k, v := range row {
			if strings.Contains(v, delimiter) {
				result.Insert(k)
			}
		}
	}

	return result
}

// NormalizeMultiValueFields turns the given columns into ordered lists of trimmed values.
// The marker is removed from the column name. Rows are not modified.
func NormalizeMultiValueFields(rows []model.Row, fields *set.Set[string], delimiter string) []model.Fields {
	result := make([]model.Fields, 0, len(rows))

	for _, row := range rows {
		fs := make(model.Fields, len(row))

		for k, v := range row {
			name := strings.TrimSuffix(k, MultiValueMarker)

			if fields.Contains(k) {
				fs[name] = model.ListField(SplitMultiValue(v, delimiter)...)
			} else {
				fs[name] = model.TextField(v)
			}
		}

		result = append(result, fs)
	}

	return result
}

func SplitMultiValue(v string, delimiter string) []string {
	result := []string{}

	if strings.TrimSpace(v) == "" {
		return result
	}

	var pieces []string
	if delimiter == "" {
		pieces = []string{v}
	} else {
		pieces = strings.Split(v, delimiter)
	}

	for _, p := range pieces {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}

	return result
}

// FromRows extracts the area id column from normalized rows. Rows without id are dropped.
func FromRows(rows []model.Fields, idField string) []model.Metadata {
	result := make([]model.Metadata, 0, len(rows))

	for _, row := range rows {
		id := strings.TrimSpace(row[idField].Text)
		if id == "" {
			continue
		}

		fs := row.Clone()
		delete(fs, idField)

		result = append(result, model.Metadata{
			AreaID: id,
			Fields: fs,
		})
	}

	return result
}
