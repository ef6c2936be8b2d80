package fenwick

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	_, err := New(0)
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = New(-3)
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = NewFromArray(nil)
	assert.ErrorIs(t, err, ErrInvalidSize)

	ft, err := New(5)
	require.NoError(t, err)
	assert.Equal(t, 5, ft.Size())
}

func TestUpdateAndQuery(t *testing.T) {
	ft, err := New(8)
	require.NoError(t, err)

	arr := []int64{3, 2, -1, 6, 5, 4, -3, 3}
	ft.BuildFromArray(arr)

	// 前綴和與樸素計算比對
	var sum int64
	for i, v := range arr {
		sum += v
		assert.Equal(t, sum, ft.Query(i), "prefix sum mismatch at %d", i)
	}
}

func TestRangeSum(t *testing.T) {
	arr := []int64{1, 7, 3, 0, 5, 8, 3, 2, 6, 2}
	ft, err := NewFromArray(arr)
	require.NoError(t, err)

	naive := func(l, r int) int64 {
		var s int64
		for i := l; i <= r; i++ {
			s += arr[i]
		}
		return s
	}

	for l := 0; l < len(arr); l++ {
		for r := l; r < len(arr); r++ {
			assert.Equal(t, naive(l, r), ft.RangeSum(l, r), "range [%d,%d]", l, r)
		}
	}
}

func TestIncrementalUpdate(t *testing.T) {
	ft, err := New(4)
	require.NoError(t, err)

	ft.Update(1, 10)
	ft.Update(3, 5)
	assert.Equal(t, int64(0), ft.Query(0))
	assert.Equal(t, int64(10), ft.Query(1))
	assert.Equal(t, int64(15), ft.Query(3))

	// delta 疊加在既有值之上
	ft.Update(1, -4)
	assert.Equal(t, int64(6), ft.Query(1))
}

func TestOutOfRangePanics(t *testing.T) {
	ft, err := New(4)
	require.NoError(t, err)

	assert.Panics(t, func() { ft.Update(4, 1) })
	assert.Panics(t, func() { ft.Update(-1, 1) })
	assert.Panics(t, func() { ft.Query(4) })
	assert.Panics(t, func() { ft.RangeSum(2, 1) })
}

func TestSingleElement(t *testing.T) {
	ft, err := NewFromArray([]int64{42})
	require.NoError(t, err)
	assert.Equal(t, int64(42), ft.Query(0))
	assert.Equal(t, int64(42), ft.RangeSum(0, 0))
}
