// Package datastream 提供 benchmark 用的資料流：
// 合成分布（uniform / Zipf）的 key 取樣、隨機單字產生，
// 以及可重播的操作序列與二進位 bench 檔案格式。
package datastream

import (
	"math"
	"math/rand"

	"github.com/mahmoudalaa98/Advanced-Data-Structures/skiplist"
)

// DataStream 定義 key 資料流的介面
type DataStream interface {
	Close() error
	Next() int
	GetKeyMap() map[skiplist.K]float64
	GetCDF() []float64
	GetPDF() []float64
	Entropy() float64
}

// OperationType 表示操作種類
type OperationType uint8

const (
	OpQuery OperationType = iota
	OpInsert
	OpDelete
)

func (t OperationType) String() string {
	switch t {
	case OpQuery:
		return "Query"
	case OpInsert:
		return "Insert"
	case OpDelete:
		return "Delete"
	default:
		return "Unknown"
	}
}

// Operation 表示一筆操作
type Operation struct {
	Type OperationType
	Key  int
}

// SequenceModel 以既有的 Operation 序列提供順序重播
type SequenceModel struct {
	ops []Operation
	pos int
}

// NewSequenceModelFromOps 由外部供給的操作序列建立模型
func NewSequenceModelFromOps(ops []Operation) *SequenceModel {
	cp := make([]Operation, len(ops))
	copy(cp, ops)
	return &SequenceModel{ops: cp}
}

// Next 回傳下一筆操作，若結束則回傳零值與 false
func (m *SequenceModel) Next() (Operation, bool) {
	if m.pos >= len(m.ops) {
		return Operation{}, false
	}
	op := m.ops[m.pos]
	m.pos++
	return op, true
}

// NextN 回傳接下來 n 筆（或直到結束）的操作
func (m *SequenceModel) NextN(n int) []Operation {
	if n <= 0 || m.pos >= len(m.ops) {
		return nil
	}
	end := m.pos + n
	if end > len(m.ops) {
		end = len(m.ops)
	}
	out := m.ops[m.pos:end]
	m.pos = end
	// 回傳淺拷貝避免外部修改底層切片
	cp := make([]Operation, len(out))
	copy(cp, out)
	return cp
}

// Reset 游標重置到起點
func (m *SequenceModel) Reset() { m.pos = 0 }

// cdfSampler 以反 CDF 二分搜尋取樣離散分布
type cdfSampler struct {
	cdf []float64
	rng *rand.Rand
}

func (s *cdfSampler) sample() int {
	r := s.rng.Float64()
	lo, hi := 0, len(s.cdf)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if r > s.cdf[mid] {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// entropyOf 計算機率分布的熵（單位：bit），忽略 <= 0 的值
func entropyOf(pdf []float64) float64 {
	h := 0.0
	for _, p := range pdf {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}

// cdfOf 由 PDF 建立累積分布函數
func cdfOf(pdf []float64) []float64 {
	cdf := make([]float64, len(pdf))
	sum := 0.0
	for i, p := range pdf {
		sum += p
		cdf[i] = sum
	}
	return cdf
}
