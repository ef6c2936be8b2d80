// genbench 產生 benchmark 測資：
//   - bench 操作檔（ADSBNCH1 .bin，供 benchrun 重播）
//   - trie 用的單字清單（換行分隔文字檔）
//
// -s 可給逗號分隔的多個 Zipf 參數，一次產生多個檔案。
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mahmoudalaa98/Advanced-Data-Structures/datastream"
)

func main() {
	var outDir string
	var n int
	var sList string
	var v float64
	var k int
	var seed uint64
	var phase1Ratio float64
	var deleteRatio float64
	var simpleKey bool

	var distCSV bool

	var words int
	var minLen int
	var maxLen int

	flag.StringVar(&outDir, "out", "benchdata", "output directory")
	flag.IntVar(&n, "n", 10000, "number of keys")
	flag.StringVar(&sList, "s", "1.07", "comma separated Zipf s values (0 = uniform)")
	flag.Float64Var(&v, "v", 1.0, "Zipf parameter v")
	flag.IntVar(&k, "k", 0, "number of operations (default 10*n)")
	flag.Uint64Var(&seed, "seed", 42, "random seed")
	flag.Float64Var(&phase1Ratio, "phase1Ratio", 0.5, "ratio of phase1 operations")
	flag.Float64Var(&deleteRatio, "deleteRatio", 0.1, "ratio of delete operations")
	flag.BoolVar(&simpleKey, "simpleKey", false, "use keys 0..n-1 instead of random uint32 keys")
	flag.BoolVar(&distCSV, "csv", false, "also write the key distribution of each bench file as CSV")

	flag.IntVar(&words, "words", 0, "also generate a word list of this many words")
	flag.IntVar(&minLen, "minLen", 3, "minimum word length")
	flag.IntVar(&maxLen, "maxLen", 10, "maximum word length")
	flag.Parse()

	if k == 0 {
		k = 10 * n
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	for _, raw := range strings.Split(sList, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		s, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Fatalf("invalid -s value %q: %v", raw, err)
		}

		spec := datastream.BenchSpec{
			N: n, S: s, V: v, Seed: seed, Ops: k,
			Phase1Ratio: phase1Ratio,
			DeleteRatio: deleteRatio,
			SimpleKey:   simpleKey,
		}
		name := benchFileName(n, s, k)
		path := filepath.Join(outDir, name)
		info, err := datastream.WriteBenchFile(spec, path)
		if err != nil {
			log.Fatalf("write bench file %s: %v", path, err)
		}
		fmt.Printf("wrote %s (n=%d ops=%d entropy=%.6f)\n", path, n, k, info.Entropy)

		if distCSV {
			csvPath := strings.TrimSuffix(path, ".bin") + ".csv"
			if err := writeDistCSV(csvPath, info.Dist); err != nil {
				log.Fatalf("write distribution csv %s: %v", csvPath, err)
			}
			fmt.Printf("wrote %s\n", csvPath)
		}
	}

	if words > 0 {
		gen, err := datastream.NewWordGenerator(minLen, maxLen, int64(seed))
		if err != nil {
			log.Fatalf("word generator: %v", err)
		}
		path := filepath.Join(outDir, fmt.Sprintf("words_%d.txt", words))
		if err := gen.WriteWordsToFile(path, words); err != nil {
			log.Fatalf("write word list %s: %v", path, err)
		}
		fmt.Printf("wrote %s (%d words)\n", path, words)
	}
}

// benchFileName 檔名編碼參數，小數點以底線代替
func benchFileName(n int, s float64, k int) string {
	sStr := strings.ReplaceAll(strconv.FormatFloat(s, 'f', -1, 64), ".", "_")
	return fmt.Sprintf("bench_n%d_s%s_k%d.bin", n, sStr, k)
}

func writeDistCSV(path string, dist map[int64]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return datastream.WriteDistCSV(csv.NewWriter(f), dist)
}
