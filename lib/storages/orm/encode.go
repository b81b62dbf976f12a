package orm

import (
	"strconv"
	"strings"

	"github.com/pescuma/taxis/lib/model"
	"github.com/pescuma/taxis/lib/utils"
)

func encodeValue(v model.Value) *float64 {
	return utils.IIf(v.Valid, &v.Float, nil)
}

func decodeValue(v *float64) model.Value {
	if v == nil {
		return model.Null
	} else {
		return model.NewValue(*v)
	}
}

func encodeList(v []string) []string {
	if len(v) == 0 {
		return nil
	}
	return v
}

func encodeFields(v model.Fields) model.Fields {
	if len(v) == 0 {
		return nil
	}
	return v.Clone()
}

func encodeYear(y int) string {
	return strconv.Itoa(y)
}

func compositeKey(ids ...string) string {
	return strings.Join(ids, "\n")
}
