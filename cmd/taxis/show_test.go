package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pescuma/taxis/lib/model"
)

func TestShowPrintsTreeInChildrenOrder(t *testing.T) {
	t.Parallel()

	newArea := func(id, name string, ty model.AreaType, parent string, children ...string) *model.EnrichedArea {
		a := model.NewArea(id, name, ty, parent)
		a.Children = append(a.Children, children...)
		return model.NewEnrichedArea(a)
	}

	c2 := newArea("C2", "Barcelos", model.ConcelhoType, "N1")
	c2.Data = append(c2.Data, model.NewDataPoint(2010), model.NewDataPoint(2012))
	c2.Files = []string{"C2/a.pdf"}

	areas := []*model.EnrichedArea{
		newArea("D1", "Braga", model.DistrictType, "", "N1"),
		newArea("N1", "Cávado", model.Nut3Type, "D1", "C2", "C1"),
		newArea("C1", "Braga", model.ConcelhoType, "N1"),
		c2,
	}

	var out bytes.Buffer
	cmd := &ShowCmd{WithYears: true, WithFiles: true}
	cmd.print(&out, areas)

	assert.Equal(t, `district Braga (D1) 1 child
   nut3 Cávado (N1) 2 children
      concelho Barcelos (C2) data 2010-2012
         - C2/a.pdf
      concelho Braga (C1)
`, out.String())
}
