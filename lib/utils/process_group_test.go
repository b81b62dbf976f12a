package utils

import (
	"sort"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelForCollectsAllOutputs(t *testing.T) {
	t.Parallel()

	result, err := ParallelFor([]int{1, 2, 3, 4, 5}, func(i int) (int, error) {
		return i * 10, nil
	}, ParallelOptions{Routines: 3}).Wait()
	require.NoError(t, err)

	sort.Ints(result)
	assert.Equal(t, []int{10, 20, 30, 40, 50}, result)
}

func TestParallelForReturnsFirstError(t *testing.T) {
	t.Parallel()

	var started atomic.Int32

	_, err := ParallelFor([]int{1, 2, 3, 4, 5, 6, 7, 8}, func(i int) (int, error) {
		started.Add(1)
		if i == 1 {
			return 0, errors.New("boom")
		}
		return i, nil
	}, ParallelOptions{Routines: 1, InputFactor: 1}).Wait()

	assert.EqualError(t, err, "boom")
	assert.Less(t, started.Load(), int32(8))
}

func TestParallelForEmptyInput(t *testing.T) {
	t.Parallel()

	result, err := ParallelFor([]string{}, func(s string) (string, error) {
		return s, nil
	}).Wait()

	assert.NoError(t, err)
	assert.Empty(t, result)
}

func TestMinMax(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, Min(3, 1, 2))
	assert.Equal(t, 3, Max(3, 1, 2))
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, "x", IIf(true, "x", "y"))
}
