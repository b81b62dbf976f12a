package hierarchy

import (
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"v.io/x/lib/toposort"

	"github.com/pescuma/taxis/lib/model"
)

type Columns struct {
	ID           string
	Name         string
	Type         string
	Parent       string
	Abbreviation string
}

var DefaultColumns = Columns{
	ID:           "id",
	Name:         "name",
	Type:         "type",
	Parent:       "parent",
	Abbreviation: "abbreviation",
}

// Input is everything the builder needs: the area list, the rows used to resolve display
// names and the files found for each area.
type Input struct {
	Areas         []model.Row
	Abbreviations []model.Row
	Files         map[string][]string
}

// Build creates one area per row and links every area to its parent's children, in source
// order. The result lists parents before their children. Invalid rows (no id, unknown
// type, duplicated id, unknown parent or a parent of the wrong type) are all reported in a
// single model.IntegrityErrors.
func Build(in Input, cols Columns) (*model.Areas, error) {
	areas := model.NewAreas()
	var errs model.IntegrityErrors

	for i, row := range in.Areas {
		id := strings.TrimSpace(row[cols.ID])
		if id == "" {
			errs = append(errs, &model.ReferentialIntegrityError{
				AreaID: "#" + strconv.Itoa(i+1),
				Reason: "missing id",
			})
			continue
		}

		t, err := model.ParseAreaType(row[cols.Type])
		if err != nil {
			errs = append(errs, &model.ReferentialIntegrityError{AreaID: id, Reason: err.Error()})
			continue
		}

		area := model.NewArea(id, strings.TrimSpace(row[cols.Name]), t, strings.TrimSpace(row[cols.Parent]))
		if !areas.Add(area) {
			errs = append(errs, &model.ReferentialIntegrityError{AreaID: id, Reason: "duplicated id"})
		}
	}

	resolveDisplayNames(areas, in.Abbreviations, cols)
	attachFiles(areas, in.Files)

	for _, area := range areas.List() {
		if area.IsRoot() {
			continue
		}

		parent := areas.Get(area.ParentID)
		if parent == nil {
			errs = append(errs, &model.ReferentialIntegrityError{
				AreaID:   area.ID,
				ParentID: area.ParentID,
				Reason:   "parent does not exist",
			})
			continue
		}

		expected, ok := area.Type.Enclosing()
		if !ok || parent.Type != expected {
			errs = append(errs, &model.ReferentialIntegrityError{
				AreaID:   area.ID,
				ParentID: area.ParentID,
				Reason:   "a " + area.Type.String() + " can not be inside a " + parent.Type.String(),
			})
			continue
		}

		if !parent.HasChild(area.ID) {
			parent.Children = append(parent.Children, area.ID)
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return parentsFirst(areas), nil
}

// parentsFirst returns the areas ordered so that every area comes after its parent. Areas
// that do not depend on each other keep their source order.
func parentsFirst(areas *model.Areas) *model.Areas {
	graph := toposort.Sorter{}
	for _, a := range areas.List() {
		graph.AddNode(a.ID)
		if !a.IsRoot() {
			graph.AddEdge(a.ID, a.ParentID)
		}
	}

	sorted, cycles := graph.Sort()
	if len(cycles) > 0 || len(sorted) != areas.Len() {
		return areas
	}

	result := model.NewAreas()
	for _, id := range sorted {
		result.Add(areas.Get(id.(string)))
	}
	return result
}

// resolveDisplayNames applies the abbreviation rows. A row is matched by id, or else by its
// folded name, restricted to the row type when it has one. Names shared by more than one
// candidate area are not matched.
func resolveDisplayNames(areas *model.Areas, rows []model.Row, cols Columns) {
	byName := map[string][]*model.Area{}
	for _, a := range areas.List() {
		key := FoldName(a.Name)
		byName[key] = append(byName[key], a)
	}

	for _, row := range rows {
		name := strings.TrimSpace(row[cols.Name])

		area := areas.Get(strings.TrimSpace(row[cols.ID]))
		if area == nil && name != "" {
			area = findByName(byName[FoldName(name)], row[cols.Type])
		}
		if area == nil {
			continue
		}

		if name != "" {
			area.Name = name
		}
		if abbr := strings.TrimSpace(row[cols.Abbreviation]); abbr != "" {
			area.Abbreviation = abbr
		}
	}
}

func findByName(candidates []*model.Area, rowType string) *model.Area {
	if strings.TrimSpace(rowType) != "" {
		t, err := model.ParseAreaType(rowType)
		if err != nil {
			return nil
		}

		candidates = lo.Filter(candidates, func(a *model.Area, _ int) bool {
			return a.Type == t
		})
	}

	if len(candidates) != 1 {
		return nil
	}
	return candidates[0]
}

func attachFiles(areas *model.Areas, files map[string][]string) {
	for id, fs := range files {
		area := areas.Get(id)
		if area == nil {
			continue
		}

		area.Files = slices.Clone(fs)
		slices.Sort(area.Files)
	}
}
