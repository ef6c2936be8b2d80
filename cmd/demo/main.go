// demo 以固定 seed 展示三種結構的基本操作與 skip list 的內部形狀。
package main

import (
	"fmt"
	"log"

	"github.com/mahmoudalaa98/Advanced-Data-Structures/fenwick"
	"github.com/mahmoudalaa98/Advanced-Data-Structures/skiplist"
	"github.com/mahmoudalaa98/Advanced-Data-Structures/skiplist/analyze"
	"github.com/mahmoudalaa98/Advanced-Data-Structures/skiplist/probskip"
	"github.com/mahmoudalaa98/Advanced-Data-Structures/trie"
)

const seed = 42

func main() {
	demoSkipList()
	demoTrie()
	demoFenwick()
}

func demoSkipList() {
	fmt.Println("=== skip list ===")
	sl := probskip.New(seed)
	for _, k := range []skiplist.K{3, 1, 4, 1, 5, 9, 2, 6} {
		sl.Put(k, skiplist.V(k))
	}
	fmt.Printf("size: %d\n", sl.Size())

	analyze.PrintSkipList(sl, 8, 16)
	if !analyze.CheckStruct(sl) {
		log.Fatal("skip list structure corrupted")
	}

	if v, ok := sl.Get(4); ok {
		fmt.Printf("get(4) = %g\n", v)
	}
	sl.Delete(4)
	if _, ok := sl.Get(4); !ok {
		fmt.Println("get(4) after delete: not found")
	}

	fmt.Print("range [2, 6]:")
	for _, e := range sl.Range(2, 6) {
		fmt.Printf(" (%d,%g)", e.Key, e.Value)
	}
	fmt.Println()
	fmt.Println()
}

func demoTrie() {
	fmt.Println("=== trie ===")
	tr := trie.New()
	for _, w := range []string{"cat", "car", "card", "care", "dog", "do"} {
		tr.Insert(w)
	}
	fmt.Printf("words: %d\n", tr.WordCount())
	fmt.Printf("search(card) = %v\n", tr.Search("card"))
	fmt.Printf("startsWith(ca) = %v\n", tr.StartsWith("ca"))
	fmt.Printf("wordsWithPrefix(car) = %v\n", tr.WordsWithPrefix("car"))
	tr.Delete("car")
	fmt.Printf("after delete(car): search(car)=%v search(card)=%v\n",
		tr.Search("car"), tr.Search("card"))
	fmt.Println()
}

func demoFenwick() {
	fmt.Println("=== fenwick tree ===")
	arr := []int64{3, 2, -1, 6, 5, 4, -3, 3}
	ft, err := fenwick.NewFromArray(arr)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("array: %v\n", arr)
	fmt.Printf("prefix sum [0..3] = %d\n", ft.Query(3))
	fmt.Printf("range sum [2..5] = %d\n", ft.RangeSum(2, 5))
	ft.Update(2, 4) // -1 -> 3
	fmt.Printf("after update(2, +4): range sum [2..5] = %d\n", ft.RangeSum(2, 5))
}
