package metadata

import (
	"github.com/samber/lo"

	"github.com/pescuma/taxis/lib/model"
)

// Join attaches metadata to areas by id. Areas without metadata keep their base fields and
// metadata for unknown areas is ignored. When an area has more than one metadata row the
// last one wins.
func Join(areas []*model.EnrichedArea, metas []model.Metadata) []*model.EnrichedArea {
	byID := lo.KeyBy(metas, func(m model.Metadata) string {
		return m.AreaID
	})

	return lo.Map(areas, func(a *model.EnrichedArea, _ int) *model.EnrichedArea {
		result := a.Clone()

		m, ok := byID[a.ID]
		if !ok {
			return result
		}

		for k, v := range m.Fields {
			result.Meta[k] = v.Clone()
		}

		return result
	})
}
