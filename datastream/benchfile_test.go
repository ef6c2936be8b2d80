package datastream

import (
	"bytes"
	"encoding/csv"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/mahmoudalaa98/Advanced-Data-Structures/skiplist"
)

func floatAlmostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestWriteAndReadBenchFile(t *testing.T) {
	spec := BenchSpec{
		N: 8, S: 1.2, V: 1.0, Seed: 42, Ops: 200,
		Phase1Ratio: 0.5, DeleteRatio: 0.1,
	}

	tmp := t.TempDir()
	file := filepath.Join(tmp, "bench.bin")

	info, err := WriteBenchFile(spec, file)
	if err != nil {
		t.Fatalf("WriteBenchFile error: %v", err)
	}
	if len(info.Dist) != spec.N {
		t.Fatalf("info dist len mismatch: got %d, want %d", len(info.Dist), spec.N)
	}
	if info.Entropy <= 0 {
		t.Fatalf("entropy must be positive, got %v", info.Entropy)
	}

	bf, err := ReadBenchFile(file)
	if err != nil {
		t.Fatalf("ReadBenchFile error: %v", err)
	}

	// 驗證分布 map 與寫入時一致
	if len(bf.Dist) != spec.N {
		t.Fatalf("dist len mismatch: got %d, want %d", len(bf.Dist), spec.N)
	}
	for k, want := range info.Dist {
		got, ok := bf.Dist[skiplist.K(k)]
		if !ok {
			t.Fatalf("missing key in dist: %v", k)
		}
		if !floatAlmostEqual(got, want, 1e-12) {
			t.Fatalf("weight mismatch for key %v: got %v, want %v", k, got, want)
		}
	}

	// 驗證理論權重集合（Zipf，rank 對 key 的映射是隨機的）
	weights := make([]float64, spec.N)
	var sumW float64
	for i := range weights {
		w := 1.0 / math.Pow(spec.V+float64(i), spec.S)
		weights[i] = w
		sumW += w
	}
	for i := range weights {
		weights[i] /= sumW
	}
	used := make([]bool, spec.N)
	for _, got := range bf.Dist {
		matched := false
		for j, w := range weights {
			if !used[j] && floatAlmostEqual(got, w, 1e-12) {
				used[j] = true
				matched = true
				break
			}
		}
		if !matched {
			t.Fatalf("unexpected weight in dist: %v", got)
		}
	}

	// 驗證操作序列
	if len(bf.Ops) != spec.Ops {
		t.Fatalf("ops len mismatch: got %d, want %d", len(bf.Ops), spec.Ops)
	}
	present := map[skiplist.K]bool{}
	for i, op := range bf.Ops {
		switch op.Type {
		case OpInsert:
			present[op.Key] = true
		case OpQuery, OpDelete:
			if !present[op.Key] {
				t.Fatalf("op[%d] %v on key %d before any insert", i, op.Type, op.Key)
			}
			if op.Type == OpDelete {
				present[op.Key] = false
			}
		default:
			t.Fatalf("op[%d] unknown type %v", i, op.Type)
		}
	}

	// 分布中的每個 key 至少出現一次
	seen := map[skiplist.K]struct{}{}
	for _, op := range bf.Ops {
		seen[op.Key] = struct{}{}
	}
	for k := range bf.Dist {
		if _, ok := seen[k]; !ok {
			t.Fatalf("key %d did not appear in ops at least once", k)
		}
	}
}

func TestWriteBenchFileUniform(t *testing.T) {
	spec := BenchSpec{
		N: 16, S: 0, Seed: 7, Ops: 160,
		Phase1Ratio: 0.5, DeleteRatio: 0.0, SimpleKey: true,
	}
	tmp := t.TempDir()
	file := filepath.Join(tmp, "uniform.bin")

	info, err := WriteBenchFile(spec, file)
	if err != nil {
		t.Fatalf("WriteBenchFile error: %v", err)
	}
	// 平均分布：每個權重都是 1/n，熵 = log2(n)
	for k, w := range info.Dist {
		if !floatAlmostEqual(w, 1.0/16, 1e-12) {
			t.Fatalf("uniform weight mismatch for key %d: %v", k, w)
		}
		if k < 0 || k >= 16 {
			t.Fatalf("simpleKey must map keys into 0..n-1, got %d", k)
		}
	}
	if !floatAlmostEqual(info.Entropy, 4.0, 1e-9) {
		t.Fatalf("uniform entropy: got %v, want 4", info.Entropy)
	}

	bf, err := ReadBenchFile(file)
	if err != nil {
		t.Fatalf("ReadBenchFile error: %v", err)
	}
	if len(bf.Ops) != spec.Ops {
		t.Fatalf("ops len mismatch: got %d, want %d", len(bf.Ops), spec.Ops)
	}
	// DeleteRatio = 0 時不應出現 Delete
	for i, op := range bf.Ops {
		if op.Type == OpDelete {
			t.Fatalf("op[%d] is Delete but deleteRatio is 0", i)
		}
	}
}

func TestWriteBenchFileValidation(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "invalid.bin")

	cases := []BenchSpec{
		{N: 0, Ops: 10},
		{N: 10, S: 0.5, V: 1, Ops: 100, Phase1Ratio: 0.5},   // s <= 1
		{N: 10, S: 1.2, V: 0.5, Ops: 100, Phase1Ratio: 0.5}, // v < 1
		{N: 100, S: 1.2, V: 1, Ops: 50, Phase1Ratio: 0.5},   // ops < n
		{N: 10, S: 1.2, V: 1, Ops: 100, Phase1Ratio: 0.01},  // phase1 < n
		{N: 10, S: 1.2, V: 1, Ops: 100, Phase1Ratio: 0.5, DeleteRatio: 1.5},
	}
	for i, spec := range cases {
		if _, err := WriteBenchFile(spec, file); err == nil {
			t.Errorf("case %d: expected validation error for %+v", i, spec)
		}
	}
}

func TestBenchFileDeterminism(t *testing.T) {
	spec := BenchSpec{
		N: 32, S: 1.5, V: 1.0, Seed: 99, Ops: 500,
		Phase1Ratio: 0.5, DeleteRatio: 0.1,
	}
	tmp := t.TempDir()

	fileA := filepath.Join(tmp, "a.bin")
	fileB := filepath.Join(tmp, "b.bin")
	if _, err := WriteBenchFile(spec, fileA); err != nil {
		t.Fatalf("write a: %v", err)
	}
	if _, err := WriteBenchFile(spec, fileB); err != nil {
		t.Fatalf("write b: %v", err)
	}

	a, err := ReadBenchFile(fileA)
	if err != nil {
		t.Fatalf("read a: %v", err)
	}
	b, err := ReadBenchFile(fileB)
	if err != nil {
		t.Fatalf("read b: %v", err)
	}
	if len(a.Ops) != len(b.Ops) {
		t.Fatalf("same seed produced different op counts: %d vs %d", len(a.Ops), len(b.Ops))
	}
	for i := range a.Ops {
		if a.Ops[i] != b.Ops[i] {
			t.Fatalf("same seed produced different op at %d: %v vs %v", i, a.Ops[i], b.Ops[i])
		}
	}
}

func TestToSequenceModel(t *testing.T) {
	spec := BenchSpec{
		N: 8, S: 0, Seed: 1, Ops: 40,
		Phase1Ratio: 0.5, DeleteRatio: 0.1, SimpleKey: true,
	}
	tmp := t.TempDir()
	file := filepath.Join(tmp, "seq.bin")
	if _, err := WriteBenchFile(spec, file); err != nil {
		t.Fatalf("WriteBenchFile error: %v", err)
	}
	bf, err := ReadBenchFile(file)
	if err != nil {
		t.Fatalf("ReadBenchFile error: %v", err)
	}

	m := bf.ToSequenceModel()
	count := 0
	for {
		if _, ok := m.Next(); !ok {
			break
		}
		count++
	}
	if count != spec.Ops {
		t.Fatalf("sequence model length mismatch: got %d, want %d", count, spec.Ops)
	}

	m.Reset()
	if got := m.NextN(10); len(got) != 10 {
		t.Fatalf("NextN(10) returned %d ops", len(got))
	}
}

func TestSequenceReader(t *testing.T) {
	spec := BenchSpec{
		N: 16, S: 0, Seed: 5, Ops: 80,
		Phase1Ratio: 0.5, DeleteRatio: 0.1, SimpleKey: true,
	}
	file := filepath.Join(t.TempDir(), "stream.bin")
	if _, err := WriteBenchFile(spec, file); err != nil {
		t.Fatalf("WriteBenchFile error: %v", err)
	}

	// 整檔讀取與逐筆讀取必須得到相同序列
	bf, err := ReadBenchFile(file)
	if err != nil {
		t.Fatalf("ReadBenchFile error: %v", err)
	}

	sr, err := OpenBenchFile(file)
	if err != nil {
		t.Fatalf("OpenBenchFile error: %v", err)
	}
	defer sr.Close()

	if len(sr.Dist()) != spec.N {
		t.Fatalf("dist len: got %d, want %d", len(sr.Dist()), spec.N)
	}
	if sr.Remaining() != uint64(spec.Ops) {
		t.Fatalf("remaining: got %d, want %d", sr.Remaining(), spec.Ops)
	}

	for i := range bf.Ops {
		op, err := sr.Next()
		if err != nil {
			t.Fatalf("Next at %d: %v", i, err)
		}
		if op != bf.Ops[i] {
			t.Fatalf("op %d mismatch: streamed %+v, loaded %+v", i, op, bf.Ops[i])
		}
	}
	if _, err := sr.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF after last op, got %v", err)
	}
}

func TestWriteDistCSV(t *testing.T) {
	dist := map[skiplist.K]float64{
		30: 0.2,
		10: 0.5,
		20: 0.3,
	}
	var buf bytes.Buffer
	if err := WriteDistCSV(csv.NewWriter(&buf), dist); err != nil {
		t.Fatalf("WriteDistCSV error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	want := [][]string{
		{"key", "weight"},
		{"10", "0.5"},
		{"20", "0.3"},
		{"30", "0.2"},
	}
	if len(rows) != len(want) {
		t.Fatalf("row count: got %d, want %d", len(rows), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if rows[i][j] != want[i][j] {
				t.Errorf("row %d col %d: got %q, want %q", i, j, rows[i][j], want[i][j])
			}
		}
	}
}

func TestReadBenchFileRejectsGarbage(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "garbage.bin")
	if err := os.WriteFile(file, []byte("not a bench file at all"), 0644); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	if _, err := ReadBenchFile(file); err == nil {
		t.Fatal("expected error for file with wrong magic")
	}
}
