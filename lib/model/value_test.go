package model

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, NewValue(5), ParseValue("5"))
	assert.Equal(t, NewValue(1234.5), ParseValue(" 1 234,5 "))
	assert.Equal(t, NewValue(0.25), ParseValue("0.25"))
	assert.Equal(t, Null, ParseValue(""))
	assert.Equal(t, Null, ParseValue("n/a"))
	assert.Equal(t, Null, ParseValue("1,234,5"))
}

func TestParseValueRejectsNonFiniteNumbers(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"NaN", "nan", "Inf", "+Inf", "-inf", "infinity", "-Infinity", "1e400"} {
		v := ParseValue(s)
		assert.Equal(t, Null, v, s)

		d := NewDataPoint(2010)
		d.Values["taxis"] = v
		b, err := json.Marshal(d)
		require.NoError(t, err, s)
		assert.Equal(t, `{"year":2010,"taxis":null}`, string(b), s)
	}
}

func TestValueJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal([]Value{NewValue(5), Null, NewValue(2.5)})
	require.NoError(t, err)
	assert.Equal(t, `[5,null,2.5]`, string(b))

	var vs []Value
	require.NoError(t, json.Unmarshal(b, &vs))
	assert.Equal(t, []Value{NewValue(5), Null, NewValue(2.5)}, vs)
}

func TestDataPointMarshalsFlat(t *testing.T) {
	t.Parallel()

	d := NewDataPoint(2010)
	d.Values["taxis"] = NewValue(5)
	d.Values["pop"] = NewValue(100)
	d.Values["dormidas"] = Null

	b, err := json.Marshal(d)
	require.NoError(t, err)

	assert.Equal(t, `{"year":2010,"dormidas":null,"pop":100,"taxis":5}`, string(b))
}

func TestFieldValueJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(Fields{
		"a": TextField("x"),
		"b": ListField("1", "2"),
		"c": ListField(),
	})
	require.NoError(t, err)

	assert.Equal(t, `{"a":"x","b":["1","2"],"c":[]}`, string(b))
}

func TestIsFatal(t *testing.T) {
	t.Parallel()

	assert.True(t, IsFatal(NewSourceReadError("taxis", "taxis.csv", errors.New("boom"))))
	assert.True(t, IsFatal(errors.Wrap(&ReferentialIntegrityError{AreaID: "C1", ParentID: "N9"}, "build")))
	assert.False(t, IsFatal(errors.New("other")))
}
