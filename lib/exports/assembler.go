package exports

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/pescuma/taxis/lib/model"
	"github.com/pescuma/taxis/lib/topology"
	"github.com/pescuma/taxis/lib/utils"
)

const (
	NationalFile     = "national.json"
	NationalMenuFile = "national-menu.json"
	TopologyFile     = "admin-areas.topojson"
	TopologyDataFile = "admin-areas-data.topojson"
)

// Artifact is one output document. Raw artifacts are written without the description envelope.
type Artifact struct {
	Name        string
	Description string
	Payload     any
	Raw         bool
}

func FullFileName(t model.AreaType) string {
	return fmt.Sprintf("%v-full.json", t)
}

// FullByType returns the full records of every area of one type, in area order.
func FullByType(areas []*model.EnrichedArea, t model.AreaType) []FullView {
	result := []FullView{}
	for _, a := range areas {
		if a.Type == t {
			result = append(result, NewFullView(a))
		}
	}
	return result
}

// National returns the NUT3 areas with their concelhos resolved, followed by the national
// aggregate when there is one. Children that are not known areas are skipped.
func National(areas []*model.EnrichedArea, aggregate json.RawMessage) []any {
	byID := index(areas)

	result := []any{}
	for _, a := range areas {
		if a.Type != model.Nut3Type {
			continue
		}

		full := NewFullView(a)
		v := NationalView{
			ID:           full.ID,
			Name:         full.Name,
			Abbreviation: full.Abbreviation,
			Type:         full.Type,
			Parent:       full.Parent,
			Files:        full.Files,
			Data:         full.Data,
			Meta:         full.Meta,
			Concelhos:    []FullView{},
		}

		for _, id := range a.Children {
			if c, ok := byID[id]; ok {
				v.Concelhos = append(v.Concelhos, NewFullView(c))
			}
		}

		result = append(result, v)
	}

	if len(aggregate) > 0 {
		result = append(result, aggregate)
	}

	return result
}

// Menu returns the NUT3/concelho hierarchy without any time series.
func Menu(areas []*model.EnrichedArea) []MenuGroup {
	byID := index(areas)

	result := []MenuGroup{}
	for _, a := range areas {
		if a.Type != model.Nut3Type {
			continue
		}

		item := NewMenuItem(a)
		g := MenuGroup{
			ID:           item.ID,
			Name:         item.Name,
			Abbreviation: item.Abbreviation,
			Parent:       item.Parent,
			Files:        item.Files,
			Meta:         item.Meta,
			Concelhos:    []MenuItem{},
		}

		for _, id := range a.Children {
			if c, ok := byID[id]; ok {
				g.Concelhos = append(g.Concelhos, NewMenuItem(c))
			}
		}

		result = append(result, g)
	}

	return result
}

// JoinedTopology attaches the full record of every area to the matching feature.
func JoinedTopology(doc *topology.Document, areas []*model.EnrichedArea, key string) (*topology.Document, error) {
	data := make([]topology.Properties, 0, len(areas))
	for _, a := range areas {
		p, err := topology.ToProperties(NewFullView(a))
		if err != nil {
			return nil, err
		}
		data = append(data, p)
	}

	return topology.Join(doc, data, key), nil
}

func index(areas []*model.EnrichedArea) map[string]*model.EnrichedArea {
	return lo.KeyBy(areas, func(a *model.EnrichedArea) string {
		return a.ID
	})
}

type Input struct {
	Areas     []*model.EnrichedArea
	Aggregate json.RawMessage
	Topology  *topology.Document
	JoinKey   string
}

// Assemble builds every artifact concurrently. The areas are only read.
func Assemble(in Input) ([]Artifact, error) {
	types := lo.Uniq(lo.Map(in.Areas, func(a *model.EnrichedArea, _ int) model.AreaType {
		return a.Type
	}))

	var jobs []func() (Artifact, error)

	for _, t := range types {
		t := t
		jobs = append(jobs, func() (Artifact, error) {
			return Artifact{
				Name:        FullFileName(t),
				Description: fmt.Sprintf("Data about taxis in Portugal from 2006 on, aggregated by %v", t),
				Payload:     FullByType(in.Areas, t),
			}, nil
		})
	}

	jobs = append(jobs, func() (Artifact, error) {
		return Artifact{
			Name:        NationalFile,
			Description: "Data about taxis in Portugal from 2006 on, aggregated by NUT3 and concelho",
			Payload:     National(in.Areas, in.Aggregate),
		}, nil
	})

	jobs = append(jobs, func() (Artifact, error) {
		return Artifact{
			Name:        NationalMenuFile,
			Description: "The NUT3 areas with their concelhos",
			Payload:     Menu(in.Areas),
		}, nil
	})

	if in.Topology != nil {
		jobs = append(jobs, func() (Artifact, error) {
			doc, err := JoinedTopology(in.Topology, in.Areas, utils.Coalesce(in.JoinKey, "id"))
			if err != nil {
				return Artifact{}, err
			}

			return Artifact{
				Name:    TopologyDataFile,
				Payload: doc,
				Raw:     true,
			}, nil
		})
	}

	result, err := utils.ParallelFor(jobs, func(job func() (Artifact, error)) (Artifact, error) {
		return job()
	}).Wait()
	if err != nil {
		return nil, err
	}

	order := map[string]int{}
	for i, t := range types {
		order[FullFileName(t)] = i
	}
	order[NationalFile] = len(types)
	order[NationalMenuFile] = len(types) + 1
	order[TopologyDataFile] = len(types) + 2

	sort.SliceStable(result, func(i, j int) bool {
		return order[result[i].Name] < order[result[j].Name]
	})

	return result, nil
}
