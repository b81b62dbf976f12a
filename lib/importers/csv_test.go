package importers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pescuma/taxis/lib/model"
)

func TestParseTableKeepsHeaderOrder(t *testing.T) {
	t.Parallel()

	table, err := ParseTable(strings.NewReader("id,name,type,parent\nD1,Lisboa,district,\nN1,Grande Lisboa,nut3,D1\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "type", "parent"}, table.Header)
	assert.Equal(t, []model.Row{
		{"id": "D1", "name": "Lisboa", "type": "district", "parent": ""},
		{"id": "N1", "name": "Grande Lisboa", "type": "nut3", "parent": "D1"},
	}, table.Rows)
}

func TestParseTableStripsBOM(t *testing.T) {
	t.Parallel()

	table, err := ParseTable(strings.NewReader("\ufeffid,2010\nC1,5\n"))
	require.NoError(t, err)

	assert.Equal(t, "id", table.Header[0])
	assert.Equal(t, "C1", table.Rows[0].Get("id"))
}

func TestParseTableSkipsBlankLinesAndKeepsShortRowsShort(t *testing.T) {
	t.Parallel()

	table, err := ParseTable(strings.NewReader("id,a,b\n\nC1,1\n , ,\nC2,\"x, y\",3\n"))
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, model.Row{"id": "C1", "a": "1"}, table.Rows[0])
	assert.Equal(t, "", table.Rows[0].Get("b"))
	assert.Equal(t, model.Row{"id": "C2", "a": "x, y", "b": "3"}, table.Rows[1])
}

func TestParseTableEmpty(t *testing.T) {
	t.Parallel()

	_, err := ParseTable(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseTableInvalidQuotes(t *testing.T) {
	t.Parallel()

	_, err := ParseTable(strings.NewReader("id,a\nC1,\"broken\n"))
	assert.Error(t, err)
}
