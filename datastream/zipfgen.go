package datastream

import (
	"math"
	"math/rand"

	"github.com/mahmoudalaa98/Advanced-Data-Structures/skiplist"
)

// ZipfDataGenerator 產生符合 Zipf 分布的查詢序列。
// 權重 w_i = 1/(i+b)^a 正規化後隨機打亂，使熱點 key 不集中在小索引。
type ZipfDataGenerator struct {
	n       int
	a, b    float64
	weights []float64
	sampler cdfSampler
}

func NewZipfDataGenerator(n int, a, b float64, seed int64) *ZipfDataGenerator {
	rng := rand.New(rand.NewSource(seed))

	weights := make([]float64, n)
	var sum float64
	for i := 1; i <= n; i++ {
		weights[i-1] = 1.0 / math.Pow(float64(i)+b, a)
		sum += weights[i-1]
	}
	for i := range weights {
		weights[i] /= sum
	}
	rng.Shuffle(len(weights), func(i, j int) {
		weights[i], weights[j] = weights[j], weights[i]
	})

	return &ZipfDataGenerator{
		n:       n,
		a:       a,
		b:       b,
		weights: weights,
		sampler: cdfSampler{cdf: cdfOf(weights), rng: rng},
	}
}

// Next 產生一筆查詢 (回傳索引 0~n-1)
func (z *ZipfDataGenerator) Next() int {
	return z.sampler.sample()
}

// GenerateSequence 產生指定長度的查詢序列
func (z *ZipfDataGenerator) GenerateSequence(seqLen int) []int {
	seq := make([]int, seqLen)
	for i := range seq {
		seq[i] = z.Next()
	}
	return seq
}

func (z *ZipfDataGenerator) GetKeyMap() map[skiplist.K]float64 {
	result := make(map[skiplist.K]float64, z.n)
	for i, w := range z.weights {
		result[skiplist.K(i)] = w
	}
	return result
}

func (z *ZipfDataGenerator) GetCDF() []float64 {
	cdf := make([]float64, len(z.sampler.cdf))
	copy(cdf, z.sampler.cdf)
	return cdf
}

func (z *ZipfDataGenerator) GetPDF() []float64 {
	pdf := make([]float64, len(z.weights))
	copy(pdf, z.weights)
	return pdf
}

func (z *ZipfDataGenerator) Entropy() float64 {
	return entropyOf(z.weights)
}

func (z *ZipfDataGenerator) Close() error {
	return nil
}
