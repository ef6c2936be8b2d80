package probskip

import "github.com/mahmoudalaa98/Advanced-Data-Structures/skiplist"

// Iterator 依 key 升冪走訪 level 0 的惰性迭代器。
// Reset 可重新走訪。走訪期間不可對 skip list 做結構性修改。
type Iterator struct {
	sl      *SkipList
	start   skiplist.K
	end     skiplist.K
	bounded bool
	curr    *node
}

// Iterator 走訪全部元素
func (sl *SkipList) Iterator() *Iterator {
	it := &Iterator{sl: sl}
	it.Reset()
	return it
}

// RangeIterator 走訪 [start, end]（含端點）內的元素。
// 起點以層級下降搜尋定位，不從 level 0 線性掃描。
func (sl *SkipList) RangeIterator(start, end skiplist.K) *Iterator {
	it := &Iterator{sl: sl, start: start, end: end, bounded: true}
	it.Reset()
	return it
}

// Next 回傳下一筆 (key, value)；走訪結束時回傳零值與 false
func (it *Iterator) Next() (skiplist.K, skiplist.V, bool) {
	n := it.curr
	if n == nil {
		return 0, 0, false
	}
	if it.bounded && n.key > it.end {
		it.curr = nil
		return 0, 0, false
	}
	it.curr = n.next[0]
	return n.key, n.value, true
}

// Reset 游標重置到起點
func (it *Iterator) Reset() {
	if it.bounded {
		it.curr = it.sl.seek(it.start)
	} else {
		it.curr = it.sl.head.next[0]
	}
}
