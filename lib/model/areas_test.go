package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAreasKeepInsertionOrder(t *testing.T) {
	t.Parallel()

	as := NewAreas()
	as.Add(NewArea("C2", "Braga", ConcelhoType, "N1"))
	as.Add(NewArea("N1", "Cávado", Nut3Type, ""))
	as.Add(NewArea("C1", "Barcelos", ConcelhoType, "N1"))

	ids := []string{}
	for _, a := range as.List() {
		ids = append(ids, a.ID)
	}

	assert.Equal(t, []string{"C2", "N1", "C1"}, ids)
	assert.Equal(t, []AreaType{ConcelhoType, Nut3Type}, as.Types())
	assert.Len(t, as.ListByType(ConcelhoType), 2)
}

func TestAreasRejectDuplicates(t *testing.T) {
	t.Parallel()

	as := NewAreas()

	assert.True(t, as.Add(NewArea("C1", "a", ConcelhoType, "")))
	assert.False(t, as.Add(NewArea("C1", "b", ConcelhoType, "")))
	assert.Equal(t, "a", as.Get("C1").Name)
	assert.Equal(t, 1, as.Len())
}

func TestAreaCloneIsIndependent(t *testing.T) {
	t.Parallel()

	a := NewArea("N1", "Cávado", Nut3Type, "")
	a.Children = append(a.Children, "C1")

	c := a.Clone()
	c.Children = append(c.Children, "C2")
	c.Children[0] = "X"

	assert.Equal(t, []string{"C1"}, a.Children)
}

func TestParseAreaType(t *testing.T) {
	t.Parallel()

	for s, expected := range map[string]AreaType{
		"district": DistrictType,
		"NUT3":     Nut3Type,
		" nuts3 ":  Nut3Type,
		"concelho": ConcelhoType,
	} {
		at, err := ParseAreaType(s)
		assert.NoError(t, err)
		assert.Equal(t, expected, at)
	}

	_, err := ParseAreaType("sea")
	assert.Error(t, err)
}

func TestEnclosingType(t *testing.T) {
	t.Parallel()

	p, ok := ConcelhoType.Enclosing()
	assert.True(t, ok)
	assert.Equal(t, Nut3Type, p)

	p, ok = Nut3Type.Enclosing()
	assert.True(t, ok)
	assert.Equal(t, DistrictType, p)

	_, ok = DistrictType.Enclosing()
	assert.False(t, ok)
}
