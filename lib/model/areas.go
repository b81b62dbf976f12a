package model

import (
	"github.com/hashicorp/go-set/v2"
)

// Areas is an arena of areas keyed by id. Children are stored as id lists, so the
// hierarchy never holds pointers between areas.
type Areas struct {
	byID  map[string]*Area
	order []string
}

func NewAreas() *Areas {
	return &Areas{
		byID: map[string]*Area{},
	}
}

// Add registers an area. It returns false, leaving the arena untouched, when the id is taken.
func (as *Areas) Add(a *Area) bool {
	if len(a.ID) == 0 {
		panic("empty id not supported")
	}

	if _, ok := as.byID[a.ID]; ok {
		return false
	}

	as.byID[a.ID] = a
	as.order = append(as.order, a.ID)
	return true
}

func (as *Areas) Get(id string) *Area {
	return as.byID[id]
}

func (as *Areas) Contains(id string) bool {
	_, ok := as.byID[id]
	return ok
}

func (as *Areas) Len() int {
	return len(as.order)
}

// List returns the areas in insertion order.
func (as *Areas) List() []*Area {
	result := make([]*Area, 0, len(as.order))
	for _, id := range as.order {
		result = append(result, as.byID[id])
	}
	return result
}

func (as *Areas) ListByType(t AreaType) []*Area {
	var result []*Area
	for _, id := range as.order {
		a := as.byID[id]
		if a.Type == t {
			result = append(result, a)
		}
	}
	return result
}

// Types returns the distinct area types in order of first appearance.
func (as *Areas) Types() []AreaType {
	seen := set.New[AreaType](len(AllAreaTypes))

	var result []AreaType
	for _, id := range as.order {
		t := as.byID[id].Type
		if seen.Insert(t) {
			result = append(result, t)
		}
	}
	return result
}
