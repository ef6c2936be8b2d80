// Package benchconfig 提供 benchmark 的 YAML 設定檔載入與預設值。
package benchconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultRuns        = 5
	defaultSeed        = 42
	defaultZipfS       = 1.07
	defaultZipfV       = 1.0
	defaultOpsPerKey   = 10
	defaultPhase1Ratio = 0.5
	defaultDeleteRatio = 0.1
	defaultSearches    = 1000
	defaultMinWordLen  = 3
	defaultMaxWordLen  = 10
)

// Config benchmark 的全部可調參數
type Config struct {
	// Sizes 要測試的資料量
	Sizes []int `yaml:"sizes"`
	// Runs 每個測項重複次數
	Runs int `yaml:"runs"`
	// Seed 隨機種子，固定即可重現
	Seed int64 `yaml:"seed"`
	// Structures 要測試的結構（skiplist, trie, fenwick）
	Structures []string `yaml:"structures"`

	// ZipfS / ZipfV 操作流的 Zipf 參數（ZipfS = 0 表示 uniform）
	ZipfS float64 `yaml:"zipf_s"`
	ZipfV float64 `yaml:"zipf_v"`
	// OpsPerKey 操作總數 = size * OpsPerKey
	OpsPerKey   int     `yaml:"ops_per_key"`
	Phase1Ratio float64 `yaml:"phase1_ratio"`
	DeleteRatio float64 `yaml:"delete_ratio"`

	// Searches 每輪的查詢次數
	Searches int `yaml:"searches"`

	// MinWordLen / MaxWordLen trie 測資的單字長度範圍
	MinWordLen int `yaml:"min_word_len"`
	MaxWordLen int `yaml:"max_word_len"`
}

// Default 回傳填滿預設值的 Config
func Default() *Config {
	return &Config{
		Sizes:       []int{1000, 10000, 100000},
		Runs:        defaultRuns,
		Seed:        defaultSeed,
		Structures:  []string{"skiplist", "trie", "fenwick"},
		ZipfS:       defaultZipfS,
		ZipfV:       defaultZipfV,
		OpsPerKey:   defaultOpsPerKey,
		Phase1Ratio: defaultPhase1Ratio,
		DeleteRatio: defaultDeleteRatio,
		Searches:    defaultSearches,
		MinWordLen:  defaultMinWordLen,
		MaxWordLen:  defaultMaxWordLen,
	}
}

// FillDefaults 將零值欄位補上預設值
func (c *Config) FillDefaults() {
	def := Default()
	if len(c.Sizes) == 0 {
		c.Sizes = def.Sizes
	}
	if c.Runs == 0 {
		c.Runs = def.Runs
	}
	if c.Seed == 0 {
		c.Seed = def.Seed
	}
	if len(c.Structures) == 0 {
		c.Structures = def.Structures
	}
	// ZipfS 不補預設值：0 本身就是合法設定（uniform 分布）
	if c.ZipfV == 0 {
		c.ZipfV = def.ZipfV
	}
	if c.OpsPerKey == 0 {
		c.OpsPerKey = def.OpsPerKey
	}
	if c.Phase1Ratio == 0 {
		c.Phase1Ratio = def.Phase1Ratio
	}
	if c.DeleteRatio == 0 {
		c.DeleteRatio = def.DeleteRatio
	}
	if c.Searches == 0 {
		c.Searches = def.Searches
	}
	if c.MinWordLen == 0 {
		c.MinWordLen = def.MinWordLen
	}
	if c.MaxWordLen == 0 {
		c.MaxWordLen = def.MaxWordLen
	}
}

// Load 讀取 YAML 設定檔並補上預設值
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.FillDefaults()
	return &cfg, nil
}
