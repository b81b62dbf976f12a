package exports

import (
	"bytes"
	"encoding/json"
	"slices"
	"sort"

	"github.com/pescuma/taxis/lib/model"
)

// FullView is the complete record of an area, as written to <type>-full.json.
type FullView struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Abbreviation string            `json:"abbreviation,omitempty"`
	Type         model.AreaType    `json:"type"`
	Parent       string            `json:"parent,omitempty"`
	Children     []string          `json:"children"`
	Files        []string          `json:"files,omitempty"`
	Data         []model.DataPoint `json:"data"`

	Meta model.Fields `json:"-"`
}

func NewFullView(a *model.EnrichedArea) FullView {
	c := a.Clone()
	return FullView{
		ID:           c.ID,
		Name:         c.Name,
		Abbreviation: c.Abbreviation,
		Type:         c.Type,
		Parent:       c.ParentID,
		Children:     c.Children,
		Files:        c.Files,
		Data:         c.Data,
		Meta:         c.Meta,
	}
}

func (v FullView) MarshalJSON() ([]byte, error) {
	type plain FullView
	return marshalWithMeta(plain(v), v.Meta)
}

// NationalView is a NUT3 area with its concelhos resolved to full records.
type NationalView struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Abbreviation string            `json:"abbreviation,omitempty"`
	Type         model.AreaType    `json:"type"`
	Parent       string            `json:"parent,omitempty"`
	Files        []string          `json:"files,omitempty"`
	Data         []model.DataPoint `json:"data"`
	Concelhos    []FullView        `json:"concelhos"`

	Meta model.Fields `json:"-"`
}

func (v NationalView) MarshalJSON() ([]byte, error) {
	type plain NationalView
	return marshalWithMeta(plain(v), v.Meta)
}

// MenuItem is a concelho entry of the menu. Menus carry no type, children or data.
type MenuItem struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Abbreviation string   `json:"abbreviation,omitempty"`
	Parent       string   `json:"parent,omitempty"`
	Files        []string `json:"files,omitempty"`

	Meta model.Fields `json:"-"`
}

func NewMenuItem(a *model.EnrichedArea) MenuItem {
	return MenuItem{
		ID:           a.ID,
		Name:         a.Name,
		Abbreviation: a.Abbreviation,
		Parent:       a.ParentID,
		Files:        slices.Clone(a.Files),
		Meta:         a.Meta.Clone(),
	}
}

func (v MenuItem) MarshalJSON() ([]byte, error) {
	type plain MenuItem
	return marshalWithMeta(plain(v), v.Meta)
}

// MenuGroup is a NUT3 entry of the menu.
type MenuGroup struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Abbreviation string     `json:"abbreviation,omitempty"`
	Parent       string     `json:"parent,omitempty"`
	Files        []string   `json:"files,omitempty"`
	Concelhos    []MenuItem `json:"concelhos"`

	Meta model.Fields `json:"-"`
}

func (v MenuGroup) MarshalJSON() ([]byte, error) {
	type plain MenuGroup
	return marshalWithMeta(plain(v), v.Meta)
}

// reservedKeys can not be overwritten by metadata columns.
var reservedKeys = map[string]bool{
	"id": true, "name": true, "abbreviation": true, "type": true, "parent": true,
	"children": true, "files": true, "data": true, "concelhos": true,
}

// marshalWithMeta writes base and then appends the metadata fields to the same object.
func marshalWithMeta(base any, meta model.Fields) ([]byte, error) {
	data, err := json.Marshal(base)
	if err != nil {
		return nil, err
	}

	if len(meta) == 0 {
		return data, nil
	}

	keys := make([]string, 0, len(meta))
	for k := range meta {
		if !reservedKeys[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(bytes.TrimSuffix(bytes.TrimSpace(data), []byte("}")))

	for _, k := range keys {
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(meta[k])
		if err != nil {
			return nil, err
		}

		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
