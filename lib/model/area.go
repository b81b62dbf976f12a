package model

import (
	"fmt"
	"slices"
)

type Area struct {
	ID           string
	Name         string
	Abbreviation string
	Type         AreaType
	ParentID     string
	Children     []string
	Files        []string
}

func NewArea(id string, name string, t AreaType, parentID string) *Area {
	return &Area{
		ID:       id,
		Name:     name,
		Type:     t,
		ParentID: parentID,
		Children: []string{},
	}
}

func (a *Area) String() string {
	return fmt.Sprintf("%v[%v]", a.ID, a.Type)
}

func (a *Area) IsRoot() bool {
	return a.ParentID == ""
}

func (a *Area) HasChild(id string) bool {
	return slices.Contains(a.Children, id)
}

// Clone returns a copy that shares nothing mutable with the receiver.
func (a *Area) Clone() *Area {
	result := *a
	result.Children = slices.Clone(a.Children)
	result.Files = slices.Clone(a.Files)
	if result.Children == nil {
		result.Children = []string{}
	}
	return &result
}
