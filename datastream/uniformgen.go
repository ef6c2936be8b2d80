package datastream

import (
	"math"
	"math/rand"

	"github.com/mahmoudalaa98/Advanced-Data-Structures/skiplist"
)

// UniformDataGenerator 產生平均分布的查詢序列，每個 key 出現機率相同。
// n: key 數量（回傳索引 0..n-1），seed: 隨機種子。
type UniformDataGenerator struct {
	n       int
	sampler cdfSampler
}

func NewUniformDataGenerator(n int, seed int64) *UniformDataGenerator {
	pdf := make([]float64, n)
	for i := range pdf {
		pdf[i] = 1.0 / float64(n)
	}
	return &UniformDataGenerator{
		n: n,
		sampler: cdfSampler{
			cdf: cdfOf(pdf),
			rng: rand.New(rand.NewSource(seed)),
		},
	}
}

// Next 產生一筆查詢 (回傳索引 0~n-1)
func (u *UniformDataGenerator) Next() int {
	return u.sampler.sample()
}

// GenerateSequence 產生指定長度的查詢序列
func (u *UniformDataGenerator) GenerateSequence(seqLen int) []int {
	seq := make([]int, seqLen)
	for i := range seq {
		seq[i] = u.Next()
	}
	return seq
}

func (u *UniformDataGenerator) GetKeyMap() map[skiplist.K]float64 {
	result := make(map[skiplist.K]float64, u.n)
	for i := 0; i < u.n; i++ {
		result[skiplist.K(i)] = 1.0 / float64(u.n)
	}
	return result
}

func (u *UniformDataGenerator) GetCDF() []float64 {
	cdf := make([]float64, u.n)
	copy(cdf, u.sampler.cdf)
	return cdf
}

func (u *UniformDataGenerator) GetPDF() []float64 {
	pdf := make([]float64, u.n)
	for i := range pdf {
		pdf[i] = 1.0 / float64(u.n)
	}
	return pdf
}

func (u *UniformDataGenerator) Entropy() float64 {
	// 平均分布的熵有閉式解 log2(n)
	return math.Log2(float64(u.n))
}

func (u *UniformDataGenerator) Close() error {
	return nil
}
