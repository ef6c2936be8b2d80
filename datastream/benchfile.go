package datastream

import (
	"bufio"
	"encoding/binary"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"

	randv2 "math/rand/v2"

	"github.com/mahmoudalaa98/Advanced-Data-Structures/skiplist"
)

// Bench 檔案格式（LittleEndian）：
// [8]byte  Magic: "ADSBNCH1"
// uint16   Version: 1
// uint16   Reserved: 0
// uint32   DistCount
// 重複 DistCount 次：
//   int64   Key
//   float64 Weight
// uint64   OpCount
// 重複 OpCount 次：
//   uint8   OperationType (0=Query,1=Insert,2=Delete)
//   int64   Key

var benchMagic = [8]byte{'A', 'D', 'S', 'B', 'N', 'C', 'H', '1'}

const benchVersion = uint16(1)

// BenchOp bench 檔中的一筆操作
type BenchOp struct {
	Type OperationType
	Key  skiplist.K
}

// BenchFile 讀入的 bench 檔內容：key 的機率分布與操作序列
type BenchFile struct {
	Dist map[skiplist.K]float64
	Ops  []BenchOp
}

// BenchSpec 描述要產生的 bench 檔。
// S = 0 時使用平均分布；否則為 Zipf 分布，需 S > 1、V >= 1。
type BenchSpec struct {
	N           int     // key 數量
	S           float64 // Zipf s 參數（0 表示 uniform）
	V           float64 // Zipf v 參數
	Seed        uint64
	Ops         int     // 操作總數，需 >= N 以保證每個 key 至少插入一次
	Phase1Ratio float64 // 第一階段（涵蓋所有 key）佔比
	DeleteRatio float64 // 已存在 key 被刪除的機率
	SimpleKey   bool    // true 時 key 為 0..N-1 的打亂；否則為隨機 uint32
}

// BenchInfo 產生結果的摘要
type BenchInfo struct {
	Dist    map[int64]float64
	Entropy float64
}

func (spec *BenchSpec) validate() error {
	if spec.N <= 0 {
		return fmt.Errorf("invalid n: %d", spec.N)
	}
	if spec.S != 0 && (spec.S <= 1.0 || spec.V < 1.0) {
		return fmt.Errorf("invalid zipf params: s=%v must >1, v=%v must >=1", spec.S, spec.V)
	}
	if spec.Ops < spec.N {
		return fmt.Errorf("ops (%d) must be >= n (%d) to ensure each key appears at least once", spec.Ops, spec.N)
	}
	phase1 := spec.phase1Size()
	if phase1 < spec.N || phase1 > spec.Ops {
		return fmt.Errorf("phase1 size (%d) must satisfy n <= phase1 <= ops", phase1)
	}
	if spec.DeleteRatio < 0.0 || spec.DeleteRatio > 1.0 {
		return fmt.Errorf("deleteRatio (%v) must be between 0.0 and 1.0", spec.DeleteRatio)
	}
	return nil
}

func (spec *BenchSpec) phase1Size() int {
	return int(float64(spec.Ops) * spec.Phase1Ratio)
}

// rankToKey 建立 rank -> key 的隨機對應（key 不重複）
func (spec *BenchSpec) rankToKey(r *randv2.Rand) []int64 {
	keys := make([]int64, spec.N)
	if spec.SimpleKey {
		for i := range keys {
			keys[i] = int64(i)
		}
		r.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
		return keys
	}
	seen := make(map[int64]struct{}, spec.N)
	for i := range keys {
		k := int64(r.Uint32())
		for _, dup := seen[k]; dup; _, dup = seen[k] {
			k = int64(r.Uint32())
		}
		keys[i] = k
		seen[k] = struct{}{}
	}
	return keys
}

// rankWeights 各 rank 的理論機率（已正規化）
func (spec *BenchSpec) rankWeights() []float64 {
	weights := make([]float64, spec.N)
	if spec.S == 0 {
		for i := range weights {
			weights[i] = 1.0 / float64(spec.N)
		}
		return weights
	}
	var sum float64
	for i := range weights {
		w := 1.0 / math.Pow(spec.V+float64(i), spec.S)
		weights[i] = w
		sum += w
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}

// WriteBenchFile 依 spec 產生操作序列並寫入 bench 檔。
// 規則：
//   - 第一階段先保證每個 key 至少插入一次（順序隨機打亂）
//   - 之後的操作：key 不在表中則 Insert；已在表中則依 DeleteRatio 決定
//     Delete 或 Query
func WriteBenchFile(spec BenchSpec, filename string) (*BenchInfo, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	r := randv2.New(randv2.NewPCG(spec.Seed, 0))
	rankToKey := spec.rankToKey(r)
	weights := spec.rankWeights()

	// rank 取樣器
	var nextRank func() int
	if spec.S == 0 {
		nextRank = func() int { return r.IntN(spec.N) }
	} else {
		zipf := randv2.NewZipf(r, spec.S, spec.V, uint64(spec.N-1))
		nextRank = func() int { return int(zipf.Uint64()) }
	}

	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	w := bufio.NewWriter(file)

	// Header
	if _, err := w.Write(benchMagic[:]); err != nil {
		return nil, err
	}
	if err := binary.Write(w, binary.LittleEndian, benchVersion); err != nil {
		return nil, err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil { // reserved
		return nil, err
	}

	// 分布表：依 key 升冪輸出，確保可重現
	type kv struct {
		k int64
		w float64
	}
	pairs := make([]kv, spec.N)
	for rank := 0; rank < spec.N; rank++ {
		pairs[rank] = kv{k: rankToKey[rank], w: weights[rank]}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].k < pairs[j].k })

	if err := binary.Write(w, binary.LittleEndian, uint32(spec.N)); err != nil {
		return nil, err
	}
	dist := make(map[int64]float64, spec.N)
	for _, p := range pairs {
		if err := binary.Write(w, binary.LittleEndian, p.k); err != nil {
			return nil, err
		}
		if err := binary.Write(w, binary.LittleEndian, p.w); err != nil {
			return nil, err
		}
		dist[p.k] = p.w
	}

	if err := binary.Write(w, binary.LittleEndian, uint64(spec.Ops)); err != nil {
		return nil, err
	}

	// 第一階段 key 列表：前 n 個涵蓋所有 key，其餘依分布取樣補齊，再打亂
	phase1 := spec.phase1Size()
	phase1Keys := make([]int64, phase1)
	copy(phase1Keys, rankToKey)
	for i := spec.N; i < phase1; i++ {
		phase1Keys[i] = rankToKey[nextRank()]
	}
	r.Shuffle(len(phase1Keys), func(i, j int) { phase1Keys[i], phase1Keys[j] = phase1Keys[j], phase1Keys[i] })

	present := make(map[int64]bool, spec.N)
	emit := func(key int64) error {
		var op OperationType
		if !present[key] {
			op = OpInsert
			present[key] = true
		} else if r.Float64() < spec.DeleteRatio {
			op = OpDelete
			present[key] = false
		} else {
			op = OpQuery
		}
		if err := binary.Write(w, binary.LittleEndian, uint8(op)); err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, key)
	}

	for _, key := range phase1Keys {
		if err := emit(key); err != nil {
			return nil, err
		}
	}
	// 第二階段：剩餘操作依分布取樣
	for i := phase1; i < spec.Ops; i++ {
		if err := emit(rankToKey[nextRank()]); err != nil {
			return nil, err
		}
	}

	if err := w.Flush(); err != nil {
		return nil, err
	}
	return &BenchInfo{Dist: dist, Entropy: EntropyFromDist(dist)}, nil
}

// SequenceReader 逐筆讀取 bench 檔的操作序列，不需整檔載入記憶體。
// 開啟時即讀完 header 與分布表，之後 Next 逐筆取得操作。
type SequenceReader struct {
	fd        *os.File
	r         *bufio.Reader
	dist      map[skiplist.K]float64
	remaining uint64
}

// OpenBenchFile 開啟 bench 檔並讀取 header 與分布表
func OpenBenchFile(filename string) (*SequenceReader, error) {
	fd, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	r := bufio.NewReader(fd)

	var magic [8]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		fd.Close()
		return nil, err
	}
	if magic != benchMagic {
		fd.Close()
		return nil, fmt.Errorf("invalid magic: %q", magic)
	}
	var ver, reserved uint16
	if err := binary.Read(r, binary.LittleEndian, &ver); err != nil {
		fd.Close()
		return nil, err
	}
	if ver != benchVersion {
		fd.Close()
		return nil, fmt.Errorf("unsupported version: %d", ver)
	}
	if err := binary.Read(r, binary.LittleEndian, &reserved); err != nil {
		fd.Close()
		return nil, err
	}

	var distCount uint32
	if err := binary.Read(r, binary.LittleEndian, &distCount); err != nil {
		fd.Close()
		return nil, err
	}
	dist := make(map[skiplist.K]float64, distCount)
	for i := uint32(0); i < distCount; i++ {
		var key int64
		var weight float64
		if err := binary.Read(r, binary.LittleEndian, &key); err != nil {
			fd.Close()
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &weight); err != nil {
			fd.Close()
			return nil, err
		}
		dist[skiplist.K(key)] = weight
	}

	var opCount uint64
	if err := binary.Read(r, binary.LittleEndian, &opCount); err != nil {
		fd.Close()
		return nil, err
	}
	return &SequenceReader{fd: fd, r: r, dist: dist, remaining: opCount}, nil
}

// Dist 分布表（key -> 機率）
func (sr *SequenceReader) Dist() map[skiplist.K]float64 {
	return sr.dist
}

// Remaining 尚未讀取的操作數
func (sr *SequenceReader) Remaining() uint64 {
	return sr.remaining
}

// Next 讀取下一筆操作，序列結束時回傳 io.EOF
func (sr *SequenceReader) Next() (BenchOp, error) {
	if sr.remaining == 0 {
		return BenchOp{}, io.EOF
	}
	var t uint8
	var key int64
	if err := binary.Read(sr.r, binary.LittleEndian, &t); err != nil {
		return BenchOp{}, err
	}
	if err := binary.Read(sr.r, binary.LittleEndian, &key); err != nil {
		return BenchOp{}, err
	}
	sr.remaining--
	return BenchOp{Type: OperationType(t), Key: skiplist.K(key)}, nil
}

func (sr *SequenceReader) Close() error {
	return sr.fd.Close()
}

// ReadBenchFile 讀取整個 bench 檔，回傳分布與操作序列
func ReadBenchFile(filename string) (*BenchFile, error) {
	sr, err := OpenBenchFile(filename)
	if err != nil {
		return nil, err
	}
	defer sr.Close()

	ops := make([]BenchOp, 0, sr.Remaining())
	for {
		op, err := sr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return &BenchFile{Dist: sr.Dist(), Ops: ops}, nil
}

// WriteDistCSV 將分布表依 key 升冪寫成 CSV（key, weight 兩欄）
func WriteDistCSV(w *csv.Writer, dist map[skiplist.K]float64) error {
	keys := make([]int64, 0, len(dist))
	for k := range dist {
		keys = append(keys, int64(k))
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	if err := w.Write([]string{"key", "weight"}); err != nil {
		return err
	}
	for _, k := range keys {
		row := []string{
			strconv.FormatInt(k, 10),
			strconv.FormatFloat(dist[skiplist.K(k)], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ToSequenceModel 將 BenchFile 轉為可重播的 SequenceModel（以 int key）
func (bf *BenchFile) ToSequenceModel() *SequenceModel {
	if bf == nil {
		return NewSequenceModelFromOps(nil)
	}
	ops := make([]Operation, len(bf.Ops))
	for i, op := range bf.Ops {
		ops[i] = Operation{Type: op.Type, Key: int(op.Key)}
	}
	return NewSequenceModelFromOps(ops)
}

// EntropyFromDist 計算分布的熵（單位：bit）。
// dist 的 value 應為已正規化的機率；會自動忽略 <= 0 的值。
func EntropyFromDist(dist map[int64]float64) float64 {
	h := 0.0
	for _, p := range dist {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}
