package model

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

type AreaType int

const (
	DistrictType AreaType = iota
	Nut3Type
	ConcelhoType
)

var AllAreaTypes = []AreaType{DistrictType, Nut3Type, ConcelhoType}

func ParseAreaType(s string) (AreaType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "district", "distrito":
		return DistrictType, nil
	case "nut3", "nuts3":
		return Nut3Type, nil
	case "concelho", "municipality":
		return ConcelhoType, nil
	default:
		return 0, errors.Errorf("unknown area type: '%v'", s)
	}
}

func (t AreaType) String() string {
	switch t {
	case DistrictType:
		return "district"
	case Nut3Type:
		return "nut3"
	case ConcelhoType:
		return "concelho"
	default:
		return "<unknown>"
	}
}

// Enclosing returns the type a parent of this type must have. Districts have none.
func (t AreaType) Enclosing() (AreaType, bool) {
	switch t {
	case ConcelhoType:
		return Nut3Type, true
	case Nut3Type:
		return DistrictType, true
	default:
		return 0, false
	}
}

func (t AreaType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *AreaType) UnmarshalJSON(data []byte) error {
	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		return err
	}

	*t, err = ParseAreaType(s)
	return err
}
