// Package probskip 實作標準的機率型 skip list（Pugh 1990），
// 以隨機層級取代平衡樹的旋轉維護，期望 O(log n) 查詢/插入/刪除。
package probskip

import (
	"errors"
	"math"
	"math/rand"

	"github.com/mahmoudalaa98/Advanced-Data-Structures/skiplist"
)

const (
	// DefaultP 升層機率，0.5 時期望高度約 log2(n)
	DefaultP = 0.5
	// DefaultMaxLevel 預設層數上限，約可容納 1e6 個元素
	DefaultMaxLevel = 20
)

var (
	ErrInvalidProbability = errors.New("probskip: p must be in (0, 1)")
	ErrInvalidMaxLevel    = errors.New("probskip: max level must be >= 1")
)

// headKey 永遠小於任何真實 key，head 不參與比較，只作為每層的入口
const headKey = skiplist.K(math.MinInt64)

type node struct {
	key   skiplist.K
	value skiplist.V
	next  []*node // len(next) = 節點層數，next[i] 為第 i 層的後繼
}

func newNode(key skiplist.K, value skiplist.V, level int) *node {
	return &node{
		key:   key,
		value: value,
		next:  make([]*node, level),
	}
}

// SkipList 機率型 skip list。非 thread-safe，跨 goroutine 共用需外部加鎖。
type SkipList struct {
	head     *node
	level    int // 目前使用中的層數（>= 1）
	maxLevel int
	p        float64
	size     int
	rng      *rand.Rand // 結構自帶的隨機源，確保可重現
}

// New 以預設參數（p=0.5, maxLevel=20）建立 skip list
func New(seed int64) *SkipList {
	sl, _ := NewWithOptions(DefaultP, DefaultMaxLevel, seed)
	return sl
}

// NewWithOptions 以指定的升層機率與層數上限建立 skip list。
// p 必須落在 (0,1)，maxLevel 必須 >= 1。
func NewWithOptions(p float64, maxLevel int, seed int64) (*SkipList, error) {
	if p <= 0 || p >= 1 {
		return nil, ErrInvalidProbability
	}
	if maxLevel < 1 {
		return nil, ErrInvalidMaxLevel
	}
	return &SkipList{
		head:     newNode(headKey, 0, maxLevel),
		level:    1,
		maxLevel: maxLevel,
		p:        p,
		rng:      rand.New(rand.NewSource(seed)),
	}, nil
}

// NewForExpectedSize 依預期元素數量推導層數上限：
// maxLevel = ceil(log_{1/p}(n))，最少 1 層。
func NewForExpectedSize(expectedSize int, p float64, seed int64) (*SkipList, error) {
	if p <= 0 || p >= 1 {
		return nil, ErrInvalidProbability
	}
	return NewWithOptions(p, MaxLevelFor(expectedSize, p), seed)
}

// MaxLevelFor 計算容納 n 個元素所需的層數上限
func MaxLevelFor(n int, p float64) int {
	if n < 2 {
		return 1
	}
	lvl := int(math.Ceil(math.Log(float64(n)) / math.Log(1/p)))
	if lvl < 1 {
		lvl = 1
	}
	return lvl
}

// randomLevel 以幾何分布抽出新節點層數：P(level >= k) = p^(k-1)
func (sl *SkipList) randomLevel() int {
	lvl := 1
	for sl.rng.Float64() < sl.p && lvl < sl.maxLevel {
		lvl++
	}
	return lvl
}

// findUpdate 由最高層往下貪婪前進，記錄每層的前驅節點。
// update[i] 為第 i 層最後一個 key < target 的節點，即插入/刪除時要改寫的位置。
func (sl *SkipList) findUpdate(key skiplist.K) []*node {
	update := make([]*node, sl.maxLevel)
	curr := sl.head
	for i := sl.level - 1; i >= 0; i-- {
		for curr.next[i] != nil && curr.next[i].key < key {
			curr = curr.next[i]
		}
		update[i] = curr
	}
	return update
}

// Put 插入或更新。key 已存在時就地改寫 value，不重抽層數也不動結構。
func (sl *SkipList) Put(key skiplist.K, value skiplist.V) {
	update := sl.findUpdate(key)

	if hit := update[0].next[0]; hit != nil && hit.key == key {
		hit.value = value
		return
	}

	lvl := sl.randomLevel()
	if lvl > sl.level {
		// 新節點比現有最高層還高，新增層的前驅就是 head
		for i := sl.level; i < lvl; i++ {
			update[i] = sl.head
		}
		sl.level = lvl
	}

	n := newNode(key, value, lvl)
	for i := 0; i < lvl; i++ {
		n.next[i] = update[i].next[i]
		update[i].next[i] = n
	}
	sl.size++
}

// Get 取得 key 對應的 value
func (sl *SkipList) Get(key skiplist.K) (skiplist.V, bool) {
	curr := sl.head
	for i := sl.level - 1; i >= 0; i-- {
		for curr.next[i] != nil && curr.next[i].key < key {
			curr = curr.next[i]
		}
	}
	if hit := curr.next[0]; hit != nil && hit.key == key {
		return hit.value, true
	}
	return 0, false
}

// Contains 判斷 key 是否存在
func (sl *SkipList) Contains(key skiplist.K) bool {
	_, found := sl.Get(key)
	return found
}

// Delete 刪除 key，回傳是否有刪除。
// 只改寫真的指向目標節點的前驅，目標之上的層級不受影響；
// 刪除後若最高層已空則收縮 level。
func (sl *SkipList) Delete(key skiplist.K) bool {
	update := sl.findUpdate(key)

	target := update[0].next[0]
	if target == nil || target.key != key {
		return false
	}

	for i := 0; i < len(target.next); i++ {
		if update[i].next[i] != target {
			break
		}
		update[i].next[i] = target.next[i]
	}

	for sl.level > 1 && sl.head.next[sl.level-1] == nil {
		sl.level--
	}
	sl.size--
	return true
}

// Size 目前元素數量
func (sl *SkipList) Size() int {
	return sl.size
}

// P 升層機率
func (sl *SkipList) P() float64 {
	return sl.p
}

// MaxLevel 層數上限
func (sl *SkipList) MaxLevel() int {
	return sl.maxLevel
}

// Range 回傳 [start, end]（含端點）內所有 (key, value)，依 key 升冪
func (sl *SkipList) Range(start, end skiplist.K) []skiplist.Entry {
	var result []skiplist.Entry
	it := sl.RangeIterator(start, end)
	for {
		k, v, ok := it.Next()
		if !ok {
			break
		}
		result = append(result, skiplist.Entry{Key: k, Value: v})
	}
	return result
}

// Entries 回傳全部 (key, value)，依 key 升冪
func (sl *SkipList) Entries() []skiplist.Entry {
	var result []skiplist.Entry
	for n := sl.head.next[0]; n != nil; n = n.next[0] {
		result = append(result, skiplist.Entry{Key: n.key, Value: n.value})
	}
	return result
}

// seek 回傳第一個 key >= target 的節點
func (sl *SkipList) seek(target skiplist.K) *node {
	curr := sl.head
	for i := sl.level - 1; i >= 0; i-- {
		for curr.next[i] != nil && curr.next[i].key < target {
			curr = curr.next[i]
		}
	}
	return curr.next[0]
}

// GetHead 實現 SkipList interface
func (sl *SkipList) GetHead() skiplist.Nodelike {
	return sl.head
}

// GetMaxStats 實現 Analyable interface，回傳節點數與目前最高層級索引
func (sl *SkipList) GetMaxStats() (int, int) {
	return sl.size, sl.level - 1
}

// Nodelike 介面實作

func (nd *node) GetKey() skiplist.K {
	return nd.key
}

func (nd *node) GetValue() skiplist.V {
	return nd.value
}

func (nd *node) GetLevel() int32 {
	return int32(len(nd.next) - 1)
}

func (nd *node) GetNextAt(level int32) skiplist.Nodelike {
	if level < 0 || level >= int32(len(nd.next)) {
		return nil
	}
	if nd.next[level] == nil {
		return nil
	}
	return nd.next[level]
}
