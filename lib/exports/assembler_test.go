package exports

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pescuma/taxis/lib/model"
	"github.com/pescuma/taxis/lib/topology"
)

func sampleAreas() []*model.EnrichedArea {
	newArea := func(id, name string, t model.AreaType, parent string, children ...string) *model.EnrichedArea {
		a := model.NewArea(id, name, t, parent)
		a.Children = append(a.Children, children...)
		return model.NewEnrichedArea(a)
	}

	d1 := newArea("D1", "Braga", model.DistrictType, "", "N1")
	n1 := newArea("N1", "Cávado", model.Nut3Type, "D1", "C1", "C2", "C9")
	n1.Abbreviation = "CAV"
	n1.Meta["region"] = model.TextField("Norte")

	c1 := newArea("C1", "Braga", model.ConcelhoType, "N1")
	c1.Meta["tags"] = model.ListField("a", "b")
	c1.Meta["id"] = model.TextField("overridden")
	c1.Files = []string{"C1/map.pdf"}
	p := model.NewDataPoint(2010)
	p.Values["taxis"] = model.NewValue(5)
	p.Values["population"] = model.NewValue(100)
	c1.Data = append(c1.Data, p)

	c2 := newArea("C2", "Barcelos", model.ConcelhoType, "N1")

	return []*model.EnrichedArea{d1, n1, c1, c2}
}

func toJSON(t *testing.T, v any) any {
	data, err := json.Marshal(v)
	require.NoError(t, err)

	var result any
	require.NoError(t, json.Unmarshal(data, &result))
	return result
}

func TestFullViewJSON(t *testing.T) {
	t.Parallel()

	areas := sampleAreas()

	assert.Equal(t, map[string]any{
		"id":       "C1",
		"name":     "Braga",
		"type":     "concelho",
		"parent":   "N1",
		"children": []any{},
		"files":    []any{"C1/map.pdf"},
		"tags":     []any{"a", "b"},
		"data": []any{
			map[string]any{"year": 2010.0, "taxis": 5.0, "population": 100.0},
		},
	}, toJSON(t, NewFullView(areas[2])))
}

func TestFullByType(t *testing.T) {
	t.Parallel()

	areas := sampleAreas()

	concelhos := FullByType(areas, model.ConcelhoType)
	require.Len(t, concelhos, 2)
	assert.Equal(t, "C1", concelhos[0].ID)
	assert.Equal(t, "C2", concelhos[1].ID)

	assert.Len(t, FullByType(areas, model.DistrictType), 1)
	assert.NotNil(t, FullByType(nil, model.Nut3Type))
}

func TestNationalResolvesConcelhosAndAppendsAggregate(t *testing.T) {
	t.Parallel()

	areas := sampleAreas()

	result := National(areas, json.RawMessage(`{"id":"PT","dormidas":[1,2]}`))
	require.Len(t, result, 2)

	v := toJSON(t, result).([]any)
	n1 := v[0].(map[string]any)
	assert.Equal(t, "N1", n1["id"])
	assert.Equal(t, "CAV", n1["abbreviation"])
	assert.Equal(t, "Norte", n1["region"])
	assert.NotContains(t, n1, "children")

	concelhos := n1["concelhos"].([]any)
	require.Len(t, concelhos, 2)
	assert.Equal(t, "C1", concelhos[0].(map[string]any)["id"])
	assert.Equal(t, "C2", concelhos[1].(map[string]any)["id"])
	assert.Contains(t, concelhos[0].(map[string]any), "data")

	assert.Equal(t, map[string]any{"id": "PT", "dormidas": []any{1.0, 2.0}}, v[1])
}

func TestNationalWithoutAggregate(t *testing.T) {
	t.Parallel()

	assert.Len(t, National(sampleAreas(), nil), 1)
}

func assertNoKeys(t *testing.T, v any, keys ...string) {
	switch v := v.(type) {
	case map[string]any:
		for _, k := range keys {
			assert.NotContains(t, v, k)
		}
		for _, c := range v {
			assertNoKeys(t, c, keys...)
		}
	case []any:
		for _, c := range v {
			assertNoKeys(t, c, keys...)
		}
	}
}

func TestMenuHasNoTypeChildrenOrData(t *testing.T) {
	t.Parallel()

	menu := Menu(sampleAreas())
	require.Len(t, menu, 1)
	require.Len(t, menu[0].Concelhos, 2)

	v := toJSON(t, menu)
	assertNoKeys(t, v, "type", "children", "data")

	n1 := v.([]any)[0].(map[string]any)
	assert.Equal(t, "Cávado", n1["name"])
	c1 := n1["concelhos"].([]any)[0].(map[string]any)
	assert.Equal(t, []any{"a", "b"}, c1["tags"])
	assert.Equal(t, "C1", c1["id"])
}

func TestJoinedTopologyCarriesFullRecords(t *testing.T) {
	t.Parallel()

	doc, err := topology.Parse([]byte(`{"type":"Topology","objects":{"areas":{"type":"GeometryCollection","geometries":[
		{"type":"Polygon","id":"C1","arcs":[[0]],"properties":{"shape":"x"}},
		{"type":"Polygon","id":"C3","arcs":[[1]]}]}},"arcs":[[[0,0],[1,1]],[[2,2],[3,3]]]}`))
	require.NoError(t, err)

	joined, err := JoinedTopology(doc, sampleAreas(), "id")
	require.NoError(t, err)

	features := joined.ListFeatures()
	require.Len(t, features, 2)
	assert.Equal(t, json.RawMessage(`"Braga"`), features[0].Properties["name"])
	assert.Equal(t, json.RawMessage(`"x"`), features[0].Properties["shape"])
	assert.Empty(t, features[1].Properties)
	assert.Equal(t, doc.Raw("arcs"), joined.Raw("arcs"))
}

func TestAssembleProducesEveryArtifactInOrder(t *testing.T) {
	t.Parallel()

	doc, err := topology.Parse([]byte(`{"type":"Topology","objects":{},"arcs":[]}`))
	require.NoError(t, err)

	areas := sampleAreas()
	before := toJSON(t, fullViews(areas))

	artifacts, err := Assemble(Input{
		Areas:     areas,
		Aggregate: json.RawMessage(`{}`),
		Topology:  doc,
	})
	require.NoError(t, err)

	names := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{
		"district-full.json", "nut3-full.json", "concelho-full.json",
		NationalFile, NationalMenuFile, TopologyDataFile,
	}, names)

	assert.True(t, artifacts[len(artifacts)-1].Raw)
	assert.NotEmpty(t, artifacts[0].Description)

	assert.Equal(t, before, toJSON(t, fullViews(areas)))
}

func TestAssembleWithoutTopology(t *testing.T) {
	t.Parallel()

	artifacts, err := Assemble(Input{Areas: sampleAreas()})
	require.NoError(t, err)
	assert.Len(t, artifacts, 5)
}

// fullViews renders the areas as full views, to compare them before and after other calls.
func fullViews(areas []*model.EnrichedArea) []FullView {
	result := make([]FullView, 0, len(areas))
	for _, a := range areas {
		result = append(result, NewFullView(a))
	}
	return result
}
