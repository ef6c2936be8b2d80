package datastream

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"
)

const wordAlphabet = "abcdefghijklmnopqrstuvwxyz"

// WordGenerator 產生隨機小寫單字，長度落在 [minLen, maxLen]，
// 作為 trie 的 benchmark 資料來源。
type WordGenerator struct {
	minLen int
	maxLen int
	rng    *rand.Rand
}

func NewWordGenerator(minLen, maxLen int, seed int64) (*WordGenerator, error) {
	if minLen < 1 || maxLen < minLen {
		return nil, fmt.Errorf("invalid word length range: [%d, %d]", minLen, maxLen)
	}
	return &WordGenerator{
		minLen: minLen,
		maxLen: maxLen,
		rng:    rand.New(rand.NewSource(seed)),
	}, nil
}

// Next 產生一個隨機單字
func (g *WordGenerator) Next() string {
	length := g.minLen + g.rng.Intn(g.maxLen-g.minLen+1)
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteByte(wordAlphabet[g.rng.Intn(len(wordAlphabet))])
	}
	return sb.String()
}

// GenerateWords 產生 count 個隨機單字（可能重複）
func (g *WordGenerator) GenerateWords(count int) []string {
	words := make([]string, count)
	for i := range words {
		words[i] = g.Next()
	}
	return words
}

// WriteWordsToFile 產生 count 個單字並以換行分隔寫入檔案
func (g *WordGenerator) WriteWordsToFile(filename string, count int) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for i := 0; i < count; i++ {
		if _, err := w.WriteString(g.Next()); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}

// ReadWordsFromFile 讀取換行分隔的單字檔
func ReadWordsFromFile(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			words = append(words, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
