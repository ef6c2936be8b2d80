// Package trie 實作前綴樹 (prefix tree)，支援 O(m) 的單字插入、查詢與前綴搜尋。
package trie

import "sort"

type trieNode struct {
	children map[rune]*trieNode
	end      bool // 是否為某個單字的結尾
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// Trie 前綴樹
type Trie struct {
	root  *trieNode
	words int
}

// New 建立空的 Trie
func New() *Trie {
	return &Trie{root: newTrieNode()}
}

// Insert 插入單字，重複插入不改變字數
func (t *Trie) Insert(word string) {
	node := t.root
	for _, ch := range word {
		child, ok := node.children[ch]
		if !ok {
			child = newTrieNode()
			node.children[ch] = child
		}
		node = child
	}
	if !node.end {
		node.end = true
		t.words++
	}
}

// Search 判斷完整單字是否存在
func (t *Trie) Search(word string) bool {
	node := t.walk(word)
	return node != nil && node.end
}

// StartsWith 判斷是否有任何單字以 prefix 開頭
func (t *Trie) StartsWith(prefix string) bool {
	return t.walk(prefix) != nil
}

// Delete 刪除單字，回傳是否有刪除。
// 只清除結尾標記，不移除節點，避免影響共用前綴的其他單字。
func (t *Trie) Delete(word string) bool {
	node := t.walk(word)
	if node == nil || !node.end {
		return false
	}
	node.end = false
	t.words--
	return true
}

// WordsWithPrefix 回傳所有以 prefix 開頭的單字，依字典序排序
func (t *Trie) WordsWithPrefix(prefix string) []string {
	node := t.walk(prefix)
	if node == nil {
		return nil
	}
	var results []string
	collect(node, prefix, &results)
	sort.Strings(results)
	return results
}

// WordCount 目前的單字數量
func (t *Trie) WordCount() int {
	return t.words
}

// walk 沿著字串走訪，回傳結尾節點；路徑不存在時回傳 nil
func (t *Trie) walk(s string) *trieNode {
	node := t.root
	for _, ch := range s {
		child, ok := node.children[ch]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

func collect(node *trieNode, current string, results *[]string) {
	if node.end {
		*results = append(*results, current)
	}
	for ch, child := range node.children {
		collect(child, current+string(ch), results)
	}
}
