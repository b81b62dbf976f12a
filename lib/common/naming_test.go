package common_test

import (
	"testing"

	"github.com/gertd/go-pluralize"
	"github.com/stretchr/testify/assert"

	"github.com/pescuma/taxis/lib/common"
)

func TestCount(t *testing.T) {
	t.Parallel()

	pc := pluralize.NewClient()

	assert.Equal(t, "1 district", common.Count(pc, 1, "district"))
	assert.Equal(t, "18 districts", common.Count(pc, 18, "district"))
	assert.Equal(t, "0 rows", common.Count(pc, 0, "row"))
	assert.Equal(t, "2 files", common.Count(nil, 2, "file"))
}
