// benchrun 執行資料結構的效能測試。
//
// 兩種模式：
//  1. 重播模式：-file / -dir 指定既有 bench 檔（或 -out 搭配產生參數先產生），
//     將操作序列重播到 skip list 上計時。
//  2. 掃描模式（預設）：依設定檔（-config）或預設參數，對 skip list / trie /
//     fenwick 在多個資料量下測量 insert/search 時間。
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mahmoudalaa98/Advanced-Data-Structures/benchconfig"
	"github.com/mahmoudalaa98/Advanced-Data-Structures/datastream"
	"github.com/mahmoudalaa98/Advanced-Data-Structures/fenwick"
	"github.com/mahmoudalaa98/Advanced-Data-Structures/skiplist"
	"github.com/mahmoudalaa98/Advanced-Data-Structures/skiplist/analyze"
	"github.com/mahmoudalaa98/Advanced-Data-Structures/skiplist/probskip"
	"github.com/mahmoudalaa98/Advanced-Data-Structures/trie"
	"github.com/olekukonko/tablewriter"
)

func main() {
	var configPath string
	var file string
	var dir string
	var out string
	var n int
	var s float64
	var v float64
	var k int
	var seed int64
	var runs int
	var phase1Ratio float64
	var deleteRatio float64

	flag.StringVar(&configPath, "config", "", "YAML config for the size-sweep mode")
	flag.StringVar(&file, "file", "", "existing bench streamfile (ADSBNCH1 format)")
	flag.StringVar(&dir, "dir", "", "directory containing bench files to test (will test all .bin files)")
	flag.StringVar(&out, "out", "", "output path to write generated bench streamfile")
	flag.IntVar(&n, "n", 0, "number of keys for the generated bench file")
	flag.Float64Var(&s, "s", 1.07, "Zipf parameter s (0 = uniform)")
	flag.Float64Var(&v, "v", 1.0, "Zipf parameter v")
	flag.IntVar(&k, "k", 0, "number of operations to generate")
	flag.Int64Var(&seed, "seed", 0, "seed override (0 = config/default seed)")
	flag.IntVar(&runs, "runs", 0, "runs override (0 = config/default runs)")
	flag.Float64Var(&phase1Ratio, "phase1Ratio", 0.5, "ratio of phase1 operations")
	flag.Float64Var(&deleteRatio, "deleteRatio", 0.1, "ratio of delete operations")
	flag.Parse()

	cfg := benchconfig.Default()
	if configPath != "" {
		loaded, err := benchconfig.Load(configPath)
		if err != nil {
			log.Fatalf("load config %s: %v", configPath, err)
		}
		cfg = loaded
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if runs != 0 {
		cfg.Runs = runs
	}

	if dir != "" || file != "" || out != "" {
		benchPaths := resolveBenchPaths(file, dir, out, n, s, v, k, uint64(cfg.Seed), phase1Ratio, deleteRatio)
		fmt.Printf("replaying %d bench file(s), runs=%d\n", len(benchPaths), cfg.Runs)
		fmt.Println(strings.Repeat("=", 80))
		runReplay(benchPaths, cfg.Runs, cfg.Seed)
		return
	}

	fmt.Printf("size sweep: sizes=%v structures=%v runs=%d seed=%d\n",
		cfg.Sizes, cfg.Structures, cfg.Runs, cfg.Seed)
	fmt.Println(strings.Repeat("=", 80))
	runSweep(cfg)
}

// resolveBenchPaths 決定要重播哪些 bench 檔；必要時依參數先產生一份
func resolveBenchPaths(file, dir, out string, n int, s, v float64, k int, seed uint64, phase1Ratio, deleteRatio float64) []string {
	if dir != "" {
		files, err := collectBenchFilesFromDir(dir)
		if err != nil {
			log.Fatalf("scan directory %s: %v", dir, err)
		}
		if len(files) == 0 {
			log.Fatalf("no .bin files found in directory: %s", dir)
		}
		return files
	}
	if file != "" {
		return []string{file}
	}
	if n <= 0 || k < n {
		log.Fatalf("generation needs -n > 0 and -k >= n, got n=%d k=%d", n, k)
	}
	spec := datastream.BenchSpec{
		N: n, S: s, V: v, Seed: seed, Ops: k,
		Phase1Ratio: phase1Ratio, DeleteRatio: deleteRatio,
	}
	if _, err := datastream.WriteBenchFile(spec, out); err != nil {
		log.Fatalf("generate bench file: %v", err)
	}
	fmt.Printf("generated bench_file: %s\n", out)
	return []string{out}
}

// collectBenchFilesFromDir 收集指定目錄下所有 .bin 檔案
func collectBenchFilesFromDir(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".bin" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// 排序檔案名稱以確保順序一致
	sort.Strings(files)
	return files, nil
}

type benchStats struct {
	avgMs    float64
	minMs    float64
	maxMs    float64
	avgSteps float64 // 一次取樣的期望搜尋步數，無法分析時為 NaN
}

// runReplay 重播 bench 檔到 skip list 上，輸出每檔的統計
func runReplay(benchPaths []string, runs int, seed int64) {
	rows := make([][]string, 0, len(benchPaths))
	for idx, path := range benchPaths {
		fmt.Printf("[%d/%d] %s\n", idx+1, len(benchPaths), filepath.Base(path))
		bf, err := datastream.ReadBenchFile(path)
		if err != nil {
			log.Printf("  ERROR reading bench file: %v", err)
			continue
		}
		stats := replayStats(bf, runs, seed)
		thr := float64(len(bf.Ops)) / (stats.avgMs / 1000.0)
		steps := "N/A"
		if !math.IsNaN(stats.avgSteps) {
			steps = fmt.Sprintf("%.6f", stats.avgSteps)
		}
		rows = append(rows, []string{
			filepath.Base(path),
			fmt.Sprintf("%d", len(bf.Ops)),
			fmt.Sprintf("%.6f", distEntropy(bf.Dist)),
			fmt.Sprintf("%.3f", stats.avgMs),
			fmt.Sprintf("%.3f", stats.minMs),
			fmt.Sprintf("%.3f", stats.maxMs),
			fmt.Sprintf("%.2f", thr),
			steps,
		})
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"File", "Ops", "Entropy", "Avg(ms)", "Min(ms)", "Max(ms)", "Ops/s", "AvgSteps"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

func replayStats(bf *datastream.BenchFile, runs int, seed int64) benchStats {
	durations := make([]float64, 0, runs)
	sampleSteps := math.NaN()
	for i := 0; i < runs; i++ {
		sl := probskip.New(seed)
		elapsed := replayOps(sl, bf)
		durations = append(durations, float64(elapsed.Microseconds())/1000.0)
		if math.IsNaN(sampleSteps) {
			steps, _ := analyze.AnalyzeStep(sl, bf.Dist)
			sampleSteps = steps
		}
	}
	sort.Float64s(durations)
	return benchStats{
		avgMs:    average(durations),
		minMs:    durations[0],
		maxMs:    durations[len(durations)-1],
		avgSteps: sampleSteps,
	}
}

func replayOps(sl *probskip.SkipList, bf *datastream.BenchFile) time.Duration {
	start := time.Now()
	for _, op := range bf.Ops {
		switch op.Type {
		case datastream.OpQuery:
			sl.Get(op.Key)
		case datastream.OpInsert:
			sl.Put(op.Key, skiplist.V(bf.Dist[op.Key]))
		case datastream.OpDelete:
			sl.Delete(op.Key)
		}
	}
	return time.Since(start)
}

// runSweep 在多個資料量下測量各結構的 insert/build 與 search/query 時間
func runSweep(cfg *benchconfig.Config) {
	type sweepRow struct {
		size      int
		structure string
		buildMs   []float64
		searchMs  []float64
	}
	var rows []sweepRow

	for _, size := range cfg.Sizes {
		fmt.Printf("testing with %d elements...\n", size)
		for _, structure := range cfg.Structures {
			r := sweepRow{size: size, structure: structure}
			for run := 0; run < cfg.Runs; run++ {
				// 每輪換 seed，避免重複測同一份資料
				runSeed := cfg.Seed + int64(run)
				var build, search float64
				switch structure {
				case "skiplist":
					build, search = sweepSkipList(size, cfg, runSeed)
				case "trie":
					build, search = sweepTrie(size, cfg, runSeed)
				case "fenwick":
					build, search = sweepFenwick(size, cfg, runSeed)
				default:
					log.Fatalf("unknown structure: %s", structure)
				}
				r.buildMs = append(r.buildMs, build)
				r.searchMs = append(r.searchMs, search)
			}
			rows = append(rows, r)
		}
	}

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			fmt.Sprintf("%d", r.size),
			r.structure,
			fmt.Sprintf("%d", cfg.Runs),
			fmt.Sprintf("%.3f", average(r.buildMs)),
			fmt.Sprintf("%.3f", average(r.searchMs)),
		})
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Size", "Structure", "Runs", "Insert/Build(ms)", "Search/Query(ms)"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoWrapText(false)
	table.AppendBulk(out)
	table.Render()
}

func sweepSkipList(size int, cfg *benchconfig.Config, seed int64) (buildMs, searchMs float64) {
	var gen datastream.DataStream
	var seq func(int) []int
	if cfg.ZipfS == 0 {
		u := datastream.NewUniformDataGenerator(size, seed)
		gen, seq = u, u.GenerateSequence
	} else {
		z := datastream.NewZipfDataGenerator(size, cfg.ZipfS, cfg.ZipfV, seed)
		gen, seq = z, z.GenerateSequence
	}

	sl, err := probskip.NewForExpectedSize(size, probskip.DefaultP, seed)
	if err != nil {
		log.Fatalf("new skip list: %v", err)
	}

	start := time.Now()
	for key, weight := range gen.GetKeyMap() {
		sl.Put(key, weight)
	}
	buildMs = msSince(start)

	queries := seq(cfg.Searches)
	start = time.Now()
	for _, q := range queries {
		sl.Get(skiplist.K(q))
	}
	searchMs = msSince(start)
	return buildMs, searchMs
}

func sweepTrie(size int, cfg *benchconfig.Config, seed int64) (buildMs, searchMs float64) {
	gen, err := datastream.NewWordGenerator(cfg.MinWordLen, cfg.MaxWordLen, seed)
	if err != nil {
		log.Fatalf("new word generator: %v", err)
	}
	words := gen.GenerateWords(size)

	tr := trie.New()
	start := time.Now()
	for _, w := range words {
		tr.Insert(w)
	}
	buildMs = msSince(start)

	searches := cfg.Searches
	if searches > len(words) {
		searches = len(words)
	}
	start = time.Now()
	for i := 0; i < searches; i++ {
		tr.Search(words[i])
	}
	searchMs = msSince(start)
	return buildMs, searchMs
}

func sweepFenwick(size int, cfg *benchconfig.Config, seed int64) (buildMs, searchMs float64) {
	valGen := datastream.NewUniformDataGenerator(100, seed)
	arr := make([]int64, size)
	for i := range arr {
		arr[i] = int64(valGen.Next() + 1)
	}

	ft, err := fenwick.New(size)
	if err != nil {
		log.Fatalf("new fenwick tree: %v", err)
	}
	start := time.Now()
	ft.BuildFromArray(arr)
	buildMs = msSince(start)

	idxGen := datastream.NewUniformDataGenerator(size, seed+1)
	start = time.Now()
	for i := 0; i < cfg.Searches; i++ {
		ft.Query(idxGen.Next())
	}
	searchMs = msSince(start)
	return buildMs, searchMs
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

// 輔助函數：計算平均值
func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func distEntropy(m map[skiplist.K]float64) float64 {
	h := 0.0
	for _, p := range m {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}
