// Package fenwick 實作 Fenwick tree (binary indexed tree)，
// 支援 O(log n) 的單點更新與前綴和查詢。
package fenwick

import "errors"

var ErrInvalidSize = errors.New("fenwick: size must be >= 1")

// Tree Fenwick tree。內部使用 1-based 陣列，公開介面為 0-based 索引。
type Tree struct {
	size int
	tree []int64
}

// New 建立大小為 size 的 Fenwick tree，所有值初始為 0
func New(size int) (*Tree, error) {
	if size < 1 {
		return nil, ErrInvalidSize
	}
	return &Tree{
		size: size,
		tree: make([]int64, size+1),
	}, nil
}

// NewFromArray 由既有陣列建立 Fenwick tree
func NewFromArray(arr []int64) (*Tree, error) {
	t, err := New(len(arr))
	if err != nil {
		return nil, err
	}
	t.BuildFromArray(arr)
	return t, nil
}

// Update 將 index 位置的值加上 delta。
// index 越界屬於程式錯誤，直接 panic。
func (t *Tree) Update(index int, delta int64) {
	if index < 0 || index >= t.size {
		panic("fenwick: index out of range")
	}
	for i := index + 1; i <= t.size; i += i & (-i) {
		t.tree[i] += delta
	}
}

// Query 回傳 [0, index]（含）的前綴和
func (t *Tree) Query(index int) int64 {
	if index < 0 || index >= t.size {
		panic("fenwick: index out of range")
	}
	var sum int64
	for i := index + 1; i > 0; i -= i & (-i) {
		sum += t.tree[i]
	}
	return sum
}

// RangeSum 回傳 [left, right]（含端點）的區間和
func (t *Tree) RangeSum(left, right int) int64 {
	if left > right {
		panic("fenwick: left > right")
	}
	if left > 0 {
		return t.Query(right) - t.Query(left-1)
	}
	return t.Query(right)
}

// BuildFromArray 將陣列的值逐一累加進樹（會疊加在現有值之上）
func (t *Tree) BuildFromArray(arr []int64) {
	for i, v := range arr {
		if i >= t.size {
			break
		}
		t.Update(i, v)
	}
}

// Size 陣列大小
func (t *Tree) Size() int {
	return t.size
}
