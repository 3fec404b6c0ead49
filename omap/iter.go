package omap

import "iter"

// All 按插入顺序遍历所有键值对
//
// 每次 range 开始时对序列做快照，遍历过程中的增删不会影响本次遍历。
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, e := range m.seq.Clone() {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Keys 按插入顺序遍历所有键
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values 按插入顺序遍历所有值
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}
