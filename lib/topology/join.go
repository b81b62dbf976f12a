package topology

import (
	"encoding/json"
	"sort"
)

// Join returns a copy of the document where each feature matching an entry of data has the
// entry merged over its properties. Features match when the value of key is the same on both
// sides; key "id" matches the feature id instead of a property. Features without a match are
// kept as they are, and nothing but properties changes in the copy.
func Join(doc *Document, data []Properties, key string) *Document {
	byKey := make(map[string]Properties, len(data))
	for _, d := range data {
		raw, ok := d[key]
		if !ok {
			continue
		}
		byKey[rawText(raw)] = d
	}

	result := &Document{
		fields: doc.fields,
	}

	if doc.Objects != nil {
		result.Objects = make(map[string]*Feature, len(doc.Objects))
		for k, f := range doc.Objects {
			result.Objects[k] = joinFeature(f, byKey, key)
		}
	}

	if doc.Features != nil {
		result.Features = make([]*Feature, 0, len(doc.Features))
		for _, f := range doc.Features {
			result.Features = append(result.Features, joinFeature(f, byKey, key))
		}
	}

	return result
}

func joinFeature(f *Feature, byKey map[string]Properties, key string) *Feature {
	if f == nil {
		return nil
	}

	result := &Feature{
		id:         f.id,
		Properties: f.Properties,
		fields:     f.fields,
	}

	if f.Geometries != nil {
		result.Geometries = make([]*Feature, 0, len(f.Geometries))
		for _, g := range f.Geometries {
			result.Geometries = append(result.Geometries, joinFeature(g, byKey, key))
		}
		return result
	}

	k, ok := featureKey(f, key)
	if !ok {
		return result
	}

	data, ok := byKey[k]
	if !ok {
		return result
	}

	props := make(Properties, len(f.Properties)+len(data))
	for pk, pv := range f.Properties {
		props[pk] = pv
	}
	for dk, dv := range data {
		props[dk] = dv
	}
	result.Properties = props

	return result
}

func featureKey(f *Feature, key string) (string, bool) {
	if key == "id" {
		return f.ID()
	}

	raw, ok := f.Properties[key]
	if !ok || string(raw) == "null" {
		return "", false
	}
	return rawText(raw), true
}

// ToProperties converts any JSON-marshalable value into feature properties.
func ToProperties(v any) (Properties, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var result Properties
	err = json.Unmarshal(data, &result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func sortStrings(s []string) {
	sort.Strings(s)
}
