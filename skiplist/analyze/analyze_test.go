package analyze

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/mahmoudalaa98/Advanced-Data-Structures/datastream"
	"github.com/mahmoudalaa98/Advanced-Data-Structures/skiplist"
	"github.com/mahmoudalaa98/Advanced-Data-Structures/skiplist/probskip"
)

func buildList(t *testing.T, keys []skiplist.K) *probskip.SkipList {
	t.Helper()
	sl := probskip.New(42)
	for _, k := range keys {
		sl.Put(k, skiplist.V(k))
	}
	return sl
}

func TestCheckStruct(t *testing.T) {
	sl := probskip.New(42)
	if !CheckStruct(sl) {
		t.Error("empty list must pass the structure check")
	}

	for i := skiplist.K(0); i < 500; i++ {
		sl.Put(i*3%499, skiplist.V(i))
	}
	if !CheckStruct(sl) {
		t.Error("structure check failed after inserts")
	}

	for i := skiplist.K(0); i < 250; i++ {
		sl.Delete(i * 2)
	}
	if !CheckStruct(sl) {
		t.Error("structure check failed after deletes")
	}
}

func TestFindStep(t *testing.T) {
	sl := buildList(t, []skiplist.K{1, 2, 3, 4, 5, 6, 7, 8})

	step, perLevel := FindStep(sl, 5)
	if step <= 0 {
		t.Errorf("expected positive step count for existing key, got %d", step)
	}
	_, topLevel := sl.GetMaxStats()
	if len(perLevel) != topLevel+1 {
		t.Errorf("perLevel length mismatch: got %d, want %d", len(perLevel), topLevel+1)
	}

	// 不存在的 key 也應回傳搜尋過程的步數
	stepMissing, _ := FindStep(sl, 100)
	if stepMissing <= 0 {
		t.Errorf("expected positive step count for missing key, got %d", stepMissing)
	}
}

func TestAnalyzeStep(t *testing.T) {
	gen := datastream.NewZipfDataGenerator(200, 1.5, 1, 42)
	kmap := gen.GetKeyMap()

	sl := probskip.New(42)
	for k, v := range kmap {
		sl.Put(k, v)
	}

	avg, steps := AnalyzeStep(sl, kmap)
	if avg <= 0 {
		t.Errorf("expected positive expected-step count, got %f", avg)
	}
	if len(steps) != 200 {
		t.Errorf("expected steps for all 200 keys, got %d", len(steps))
	}

	// 空分布
	if avg, _ := AnalyzeStep(sl, nil); avg != 0 {
		t.Errorf("empty distribution should yield 0, got %f", avg)
	}
}

func TestCountLevel(t *testing.T) {
	sl := buildList(t, []skiplist.K{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	counts := CountLevel(sl)
	if counts[0] != 10 {
		t.Errorf("level 0 must contain all nodes: got %d, want 10", counts[0])
	}
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[i-1] {
			t.Errorf("level %d has more nodes (%d) than level %d (%d)", i, counts[i], i-1, counts[i-1])
		}
	}
}

func TestStructToCSV(t *testing.T) {
	sl := buildList(t, []skiplist.K{1, 2, 3})

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := StructToCSV(sl, w); err != nil {
		t.Fatalf("StructToCSV: %v", err)
	}
	w.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	_, topLevel := sl.GetMaxStats()
	if len(lines) != topLevel+1 {
		t.Errorf("expected %d rows, got %d", topLevel+1, len(lines))
	}
	// 最後一列是 level 0，應包含所有 key
	last := lines[len(lines)-1]
	for _, want := range []string{"level 0", "1", "2", "3"} {
		if !strings.Contains(last, want) {
			t.Errorf("level 0 row missing %q: %s", want, last)
		}
	}
}

func TestPrintSkipList(t *testing.T) {
	// 煙霧測試：不應 panic
	PrintSkipList(buildList(t, []skiplist.K{1, 2, 3}), 5, 10)
	PrintSkipList(probskip.New(42), 5, 10)
}
