package timeseries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pescuma/taxis/lib/model"
)

func TestJoinMergesIndicatorsOfTheSameYear(t *testing.T) {
	t.Parallel()

	areas := []*model.EnrichedArea{
		model.NewEnrichedArea(model.NewArea("C1", "Braga", model.ConcelhoType, "N1")),
		model.NewEnrichedArea(model.NewArea("C2", "Barcelos", model.ConcelhoType, "N1")),
		model.NewEnrichedArea(model.NewArea("C3", "Vila Verde", model.ConcelhoType, "N1")),
	}

	taxis := Backfill([]model.Record{
		rec("C1", 2010, "taxis", 5),
		rec("C1", 2011, "taxis"),
		rec("C2", 2010, "taxis", 3),
	}, Policy{CarryPastLast: false})
	pop := []model.Record{
		rec("C1", 2010, "pop", 100),
		rec("C9", 2010, "pop", 1),
	}

	result := Join(areas, Concat(taxis, pop))

	require.Len(t, result, 3)

	c1 := result[0].Data
	require.Len(t, c1, 2)
	assert.Equal(t, 2010, c1[0].Year)
	assert.Equal(t, map[string]model.Value{"taxis": model.NewValue(5), "pop": model.NewValue(100)}, c1[0].Values)
	assert.Equal(t, 2011, c1[1].Year)
	assert.Equal(t, map[string]model.Value{"taxis": model.NewValue(5)}, c1[1].Values)

	c2 := result[1].Data
	require.Len(t, c2, 1)
	assert.Equal(t, 2010, c2[0].Year)

	assert.NotNil(t, result[2].Data)
	assert.Empty(t, result[2].Data)

	assert.Empty(t, areas[0].Data)
}

func TestJoinSortsYears(t *testing.T) {
	t.Parallel()

	areas := []*model.EnrichedArea{
		model.NewEnrichedArea(model.NewArea("C1", "Braga", model.ConcelhoType, "")),
	}

	result := Join(areas, []model.Record{
		rec("C1", 2012, "taxis", 1),
		rec("C1", 2010, "taxis", 2),
		rec("C1", 2011, "pop", 3),
	})

	years := []int{}
	for _, d := range result[0].Data {
		years = append(years, d.Year)
	}
	assert.Equal(t, []int{2010, 2011, 2012}, years)
}
