package omap

import (
	"fmt"
	"slices"
)

// Entry 键值对，持久化时字段名为 key / value
type Entry[K comparable, V any] struct {
	Key   K `json:"key" yaml:"key" cbor:"key"`
	Value V `json:"value" yaml:"value" cbor:"value"`
}

// Sequence 有序条目序列，宿主唯一持久化的状态
type Sequence[K comparable, V any] struct {
	items []Entry[K, V]
}

// Append 追加到末尾
func (s *Sequence[K, V]) Append(e Entry[K, V]) {
	s.items = append(s.items, e)
}

// RemoveAt 删除第 i 个条目，后续条目前移一位
func (s *Sequence[K, V]) RemoveAt(i int) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.items = slices.Delete(s.items, i, i+1)
	return nil
}

// At 返回第 i 个条目
func (s *Sequence[K, V]) At(i int) (Entry[K, V], error) {
	if err := s.check(i); err != nil {
		return Entry[K, V]{}, err
	}
	return s.items[i], nil
}

// Len 条目数量
func (s *Sequence[K, V]) Len() int {
	return len(s.items)
}

// Clone 返回底层条目的拷贝，空序列返回非 nil 的空切片
func (s *Sequence[K, V]) Clone() []Entry[K, V] {
	out := make([]Entry[K, V], len(s.items))
	copy(out, s.items)
	return out
}

func (s *Sequence[K, V]) setValue(i int, v V) {
	s.items[i].Value = v
}

func (s *Sequence[K, V]) reset(items []Entry[K, V]) {
	s.items = items
}

func (s *Sequence[K, V]) check(i int) error {
	if i < 0 || i >= len(s.items) {
		return fmt.Errorf("%w: %d (长度 %d)", ErrIndexOutOfRange, i, len(s.items))
	}
	return nil
}
