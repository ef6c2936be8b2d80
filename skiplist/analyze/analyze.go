// Package analyze 提供 skip list 結構的檢查、統計與視覺化工具。
// 只透過 skiplist.Analyable / Nodelike 介面存取結構，不依賴具體實作。
package analyze

import (
	"encoding/csv"
	"fmt"
	"sort"

	"github.com/mahmoudalaa98/Advanced-Data-Structures/skiplist"
)

// StepMap 記錄每個 key 的搜尋步數
type StepMap map[skiplist.K]int

// FindStep 計算搜尋指定 key 的總步數與各層步數。
// 水平前進與向下移動各算一步。
func FindStep(sl skiplist.Analyable, key skiplist.K) (step int, perLevel []int) {
	cur := sl.GetHead()
	if cur == nil {
		return 0, nil
	}

	_, topLevel := sl.GetMaxStats()
	perLevel = make([]int, topLevel+1)
	total := 0

	for h := topLevel; h >= 0; h-- {
		levelSteps := 0
		for {
			next := cur.GetNextAt(int32(h))
			if next == nil || next.GetKey() >= key {
				break
			}
			cur = next
			levelSteps++
		}

		if next := cur.GetNextAt(int32(h)); next != nil && next.GetKey() == key {
			// 找到目標，最後一步也計入
			perLevel[h] = levelSteps + 1
			total += levelSteps + 1
			return total, perLevel
		}

		perLevel[h] = levelSteps
		total += levelSteps + 1 // 向下移動
	}
	return total, perLevel
}

// AnalyzeStep 依 key 的出現機率計算期望搜尋步數。
// 以 DFS 走訪整個結構，每個節點在其最高層首次到達時記錄路徑長度。
func AnalyzeStep(sl skiplist.Analyable, keys map[skiplist.K]float64) (float64, StepMap) {
	if len(keys) == 0 {
		return 0.0, nil
	}

	steps := StepMap{}
	var expected, totalProb float64

	var dfs func(node skiplist.Nodelike, level int, pathLen int)
	dfs = func(node skiplist.Nodelike, level int, pathLen int) {
		if node == nil {
			return
		}

		if node.GetLevel() == int32(level) && node.GetKey() != headSentinelKey(sl) {
			if p, ok := keys[node.GetKey()]; ok {
				expected += float64(pathLen) * p
				totalProb += p
				steps[node.GetKey()] = pathLen
			}
		}
		if level > 0 {
			dfs(node, level-1, pathLen+1)
		}
		next := node.GetNextAt(int32(level))
		if next != nil && next.GetLevel() == int32(level) {
			// 下一個節點更高時不屬於本層走訪
			dfs(next, level, pathLen+1)
		}
	}

	_, topLevel := sl.GetMaxStats()
	if head := sl.GetHead(); head != nil {
		dfs(head, topLevel, 0)
	}

	if totalProb > 0 {
		return expected / totalProb, steps
	}
	return 0.0, steps
}

func headSentinelKey(sl skiplist.Analyable) skiplist.K {
	if head := sl.GetHead(); head != nil {
		return head.GetKey()
	}
	return 0
}

// PrintSkipList 打印 skip list 的結構，最多顯示 maxNodes 個節點
func PrintSkipList(sl skiplist.Analyable, maxLevel, maxNodes int) {
	_, topLevel := sl.GetMaxStats()
	if maxLevel > topLevel {
		maxLevel = topLevel
	}

	head := sl.GetHead()
	if head == nil || head.GetNextAt(0) == nil {
		fmt.Println("skip list 為空")
		return
	}

	lines := make([]string, maxLevel+1)
	for i := range lines {
		lines[i] = fmt.Sprintf("level %d : ", i)
	}

	count := 0
	for node := head.GetNextAt(0); node != nil && count < maxNodes; node = node.GetNextAt(0) {
		lv := int(node.GetLevel())
		for i := range lines {
			if i <= lv {
				lines[i] += fmt.Sprintf("%4d ->", node.GetKey())
			} else {
				lines[i] += "     ->"
			}
		}
		count++
	}

	for i := maxLevel; i >= 0; i-- {
		fmt.Println(lines[i])
	}
}

// CheckStruct 檢查 skip list 的結構不變量：
//  1. 每一層自 head 出發的序列依 key 嚴格遞增
//  2. 每層序列為 level 0 序列的子序列（節點出現在第 i 層就必出現在所有更低層）
//  3. 節點宣告的層級與實際連結一致
//
// 結構損壞屬於程式錯誤，呼叫端應視 false 為 fatal。
func CheckStruct(sl skiplist.Analyable) bool {
	head := sl.GetHead()
	if head == nil {
		return true
	}
	_, topLevel := sl.GetMaxStats()

	// level 0 全序列
	base := map[skiplist.K]int32{}
	var prev *skiplist.K
	for node := head.GetNextAt(0); node != nil; node = node.GetNextAt(0) {
		k := node.GetKey()
		if prev != nil && *prev >= k {
			fmt.Printf("level 0 ordering violated: %d >= %d\n", *prev, k)
			return false
		}
		kk := k
		prev = &kk
		base[k] = node.GetLevel()
	}

	for i := 1; i <= topLevel; i++ {
		var prevKey *skiplist.K
		for node := head.GetNextAt(int32(i)); node != nil; node = node.GetNextAt(int32(i)) {
			k := node.GetKey()
			if prevKey != nil && *prevKey >= k {
				fmt.Printf("level %d ordering violated: %d >= %d\n", i, *prevKey, k)
				return false
			}
			kk := k
			prevKey = &kk

			lv, ok := base[k]
			if !ok {
				fmt.Printf("node %d linked at level %d but missing from level 0\n", k, i)
				return false
			}
			if lv < int32(i) {
				fmt.Printf("node %d linked at level %d above its own level %d\n", k, i, lv)
				return false
			}
		}
	}
	return true
}

// CountLevel 統計每層的節點數量並打印
func CountLevel(sl skiplist.Analyable) []int {
	nodes, topLevel := sl.GetMaxStats()
	counts := make([]int, topLevel+1)

	head := sl.GetHead()
	if head == nil {
		return counts
	}
	for node := head.GetNextAt(0); node != nil; node = node.GetNextAt(0) {
		lv := int(node.GetLevel())
		for i := 0; i <= lv && i < len(counts); i++ {
			counts[i]++
		}
	}

	fmt.Printf("層級節點統計 (總節點數: %d, 最高層級: %d):\n", nodes, topLevel)
	for i := topLevel; i >= 0; i-- {
		fmt.Printf("Level %2d: %d 個節點\n", i, counts[i])
	}
	return counts
}

// StructToCSV 將 skip list 的結構輸出到 CSV，一層一列，由高層到低層
func StructToCSV(sl skiplist.Analyable, writer *csv.Writer) error {
	_, topLevel := sl.GetMaxStats()
	head := sl.GetHead()
	if head == nil {
		return nil
	}

	rows := make([][]string, topLevel+1)
	for node := head.GetNextAt(0); node != nil; node = node.GetNextAt(0) {
		lv := int(node.GetLevel())
		for i := 0; i <= topLevel; i++ {
			if i <= lv {
				rows[i] = append(rows[i], fmt.Sprintf("%d", node.GetKey()))
			} else {
				rows[i] = append(rows[i], "")
			}
		}
	}

	for i := topLevel; i >= 0; i-- {
		row := append([]string{fmt.Sprintf("level %d", i)}, rows[i]...)
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Print 依 key 升冪打印每個 key 的搜尋步數
func (mp StepMap) Print() {
	out := make([][2]int, 0, len(mp))
	for k, v := range mp {
		out = append(out, [2]int{int(k), v})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i][0] < out[j][0]
	})

	for _, v := range out {
		fmt.Printf("%2d  ", v[0])
	}
	fmt.Println()
	for _, v := range out {
		fmt.Printf("%2d  ", v[1])
	}
	fmt.Println()
}
