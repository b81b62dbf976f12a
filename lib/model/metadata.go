package model

import (
	"encoding/json"
	"slices"
)

// FieldValue is a metadata value: plain text, or an ordered list for multi-value fields.
type FieldValue struct {
	Text  string
	List  []string
	Multi bool
}

func TextField(s string) FieldValue {
	return FieldValue{Text: s}
}

func ListField(vs ...string) FieldValue {
	if vs == nil {
		vs = []string{}
	}
	return FieldValue{List: vs, Multi: true}
}

func (f FieldValue) MarshalJSON() ([]byte, error) {
	if f.Multi {
		if f.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(f.List)
	}
	return json.Marshal(f.Text)
}

func (f *FieldValue) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = ListField(list...)
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	*f = TextField(text)
	return nil
}

func (f FieldValue) Clone() FieldValue {
	if f.Multi {
		f.List = slices.Clone(f.List)
		if f.List == nil {
			f.List = []string{}
		}
	}
	return f
}

type Fields map[string]FieldValue

func (fs Fields) Clone() Fields {
	result := make(Fields, len(fs))
	for k, v := range fs {
		result[k] = v.Clone()
	}
	return result
}

// Metadata holds the descriptive fields of one area.
type Metadata struct {
	AreaID string
	Fields Fields
}
