package topology

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

// Properties are the attributes attached to a feature. Values stay raw so that unknown
// attributes survive a round trip untouched.
type Properties map[string]json.RawMessage

// Document is a TopoJSON topology (features under "objects") or a GeoJSON feature
// collection (features under "features"). Arcs, transforms, coordinates and any other
// member are kept as raw JSON and never reinterpreted.
type Document struct {
	Objects  map[string]*Feature
	Features []*Feature

	fields map[string]json.RawMessage
}

// Feature is a geometry object. Collections hold their members in Geometries.
type Feature struct {
	id         json.RawMessage
	Properties Properties
	Geometries []*Feature

	fields map[string]json.RawMessage
}

func Parse(data []byte) (*Document, error) {
	var doc Document
	err := json.Unmarshal(data, &doc)
	if err != nil {
		return nil, errors.Wrap(err, "invalid topology document")
	}
	return &doc, nil
}

func (d *Document) Type() string {
	return rawString(d.fields["type"])
}

// Raw returns a member of the document other than objects or features.
func (d *Document) Raw(name string) json.RawMessage {
	return d.fields[name]
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	err := json.Unmarshal(data, &fields)
	if err != nil {
		return err
	}
	if fields == nil {
		return errors.New("topology document must be an object")
	}

	if raw, ok := fields["objects"]; ok {
		err = json.Unmarshal(raw, &d.Objects)
		if err != nil {
			return errors.Wrap(err, "invalid objects")
		}
		delete(fields, "objects")
	}

	if raw, ok := fields["features"]; ok {
		err = json.Unmarshal(raw, &d.Features)
		if err != nil {
			return errors.Wrap(err, "invalid features")
		}
		delete(fields, "features")
	}

	d.fields = fields
	return nil
}

func (d *Document) MarshalJSON() ([]byte, error) {
	result := make(map[string]any, len(d.fields)+2)
	for k, v := range d.fields {
		result[k] = v
	}
	if d.Objects != nil {
		result["objects"] = d.Objects
	}
	if d.Features != nil {
		result["features"] = d.Features
	}
	return json.Marshal(result)
}

// ListFeatures returns every feature that is not a collection, depth first.
func (d *Document) ListFeatures() []*Feature {
	var result []*Feature

	var walk func(f *Feature)
	walk = func(f *Feature) {
		if f == nil {
			return
		}
		if f.IsCollection() {
			for _, c := range f.Geometries {
				walk(c)
			}
			return
		}
		result = append(result, f)
	}

	for _, name := range d.ObjectNames() {
		walk(d.Objects[name])
	}
	for _, f := range d.Features {
		walk(f)
	}

	return result
}

func (d *Document) ObjectNames() []string {
	result := make([]string, 0, len(d.Objects))
	for k := range d.Objects {
		result = append(result, k)
	}
	sortStrings(result)
	return result
}

func (f *Feature) Type() string {
	return rawString(f.fields["type"])
}

func (f *Feature) IsCollection() bool {
	return f.Geometries != nil
}

// ID returns the feature id as text. Numeric ids are returned as written.
func (f *Feature) ID() (string, bool) {
	if len(f.id) == 0 || string(f.id) == "null" {
		return "", false
	}
	return rawText(f.id), true
}

// Raw returns a member of the feature other than id, properties or geometries.
func (f *Feature) Raw(name string) json.RawMessage {
	return f.fields[name]
}

func (f *Feature) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	err := json.Unmarshal(data, &fields)
	if err != nil {
		return err
	}
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}

	if raw, ok := fields["id"]; ok {
		f.id = raw
		delete(fields, "id")
	}

	if raw, ok := fields["properties"]; ok {
		err = json.Unmarshal(raw, &f.Properties)
		if err != nil {
			return errors.Wrap(err, "invalid properties")
		}
		delete(fields, "properties")
	}

	if raw, ok := fields["geometries"]; ok && rawString(fields["type"]) == "GeometryCollection" {
		err = json.Unmarshal(raw, &f.Geometries)
		if err != nil {
			return errors.Wrap(err, "invalid geometries")
		}
		if f.Geometries == nil {
			f.Geometries = []*Feature{}
		}
		delete(fields, "geometries")
	}

	f.fields = fields
	return nil
}

func (f *Feature) MarshalJSON() ([]byte, error) {
	result := make(map[string]any, len(f.fields)+3)
	for k, v := range f.fields {
		result[k] = v
	}
	if len(f.id) > 0 {
		result["id"] = f.id
	}
	if f.Properties != nil {
		result["properties"] = f.Properties
	}
	if f.Geometries != nil {
		result["geometries"] = f.Geometries
	}
	return json.Marshal(result)
}

func rawString(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func rawText(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}

	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return strconv.FormatInt(i, 10)
		}
		return n.String()
	}

	return string(raw)
}
