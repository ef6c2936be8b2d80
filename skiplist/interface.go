package skiplist

type K = int64
type V = float64

// Entry 一筆 (key, value) 資料
type Entry struct {
	Key   K
	Value V
}

type SkipList interface {
	Contains(key K) bool
	Get(key K) (V, bool)
	Put(key K, value V)
	// Delete 刪除 key，回傳是否有刪除（key 不存在時回傳 false）
	Delete(key K) bool
	// Size 目前元素數量，O(1)
	Size() int
	GetHead() Nodelike
}

// Analyable 提供分析功能的介面
type Analyable interface {
	SkipList
	// GetMaxStats 獲取節點數和目前最高層級索引（level 0 起算）
	GetMaxStats() (nodes int, topLevel int)
}

type Nodelike interface {
	GetKey() K
	GetValue() V
	// GetLevel 節點參與的最高層級索引（= 層數 - 1）
	GetLevel() int32
	GetNextAt(level int32) Nodelike
}
