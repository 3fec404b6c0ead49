package omap

import (
	"fmt"
	"iter"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Container 键值容器能力集
type Container[K comparable, V any] interface {
	Get(key K) (V, error)
	Set(key K, value V)
	Add(key K, value V) error
	Contains(key K) bool
	TryGet(key K) (V, bool)
	Remove(key K) bool
	Keys() iter.Seq[K]
	Values() iter.Seq[V]
	Len() int
	All() iter.Seq2[K, V]
	CopyTo(dst []Entry[K, V], offset int) error
}

var _ Container[string, int] = (*Map[string, int])(nil)

// Map 有序 Map，保证按插入顺序遍历。零值可直接使用。
type Map[K comparable, V any] struct {
	seq   Sequence[K, V]
	index positionIndex[K]
}

// New 创建空 Map
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{}
}

// FromEntries 按给定顺序构建 Map，出现重复键时返回 ErrDuplicateKey
func FromEntries[K comparable, V any](entries ...Entry[K, V]) (*Map[K, V], error) {
	m := New[K, V]()
	if err := m.Restore(entries); err != nil {
		return nil, err
	}
	return m, nil
}

// Reindex 索引失效时立即全量重建，索引有效时不做任何事
func (m *Map[K, V]) Reindex() {
	if !m.index.valid {
		m.index.build(m.seq.Len(), func(i int) K { return m.seq.items[i].Key })
	}
}

// slot 查找键所在槽位
func (m *Map[K, V]) slot(key K) (int, bool) {
	m.Reindex()
	return m.index.get(key)
}

// Get 获取值，键不存在返回 ErrKeyNotFound
func (m *Map[K, V]) Get(key K) (V, error) {
	i, ok := m.slot(key)
	if !ok {
		var zero V
		return zero, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	return m.seq.items[i].Value, nil
}

// Set 键存在时原地更新，否则追加到末尾
func (m *Map[K, V]) Set(key K, value V) {
	if i, ok := m.slot(key); ok {
		m.seq.setValue(i, value)
		return
	}
	m.append(key, value)
}

// Add 追加新键，键已存在时返回 ErrDuplicateKey 且不修改原值
func (m *Map[K, V]) Add(key K, value V) error {
	if _, ok := m.slot(key); ok {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, key)
	}
	m.append(key, value)
	return nil
}

// AddEntry 等价于 Add(e.Key, e.Value)
func (m *Map[K, V]) AddEntry(e Entry[K, V]) error {
	return m.Add(e.Key, e.Value)
}

// append 调用方必须已确认键不存在（此时索引一定有效）
func (m *Map[K, V]) append(key K, value V) {
	m.seq.Append(Entry[K, V]{Key: key, Value: value})
	m.index.put(key, m.seq.Len()-1)
}

// Contains 检查键是否存在
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.slot(key)
	return ok
}

// ContainsEntry 只比较键，值不参与比较
func (m *Map[K, V]) ContainsEntry(e Entry[K, V]) bool {
	return m.Contains(e.Key)
}

// TryGet 获取值，不存在时返回零值和 false
func (m *Map[K, V]) TryGet(key K) (V, bool) {
	i, ok := m.slot(key)
	if !ok {
		var zero V
		return zero, false
	}
	return m.seq.items[i].Value, true
}

// Lookup 以 mo.Option 形式返回值
func (m *Map[K, V]) Lookup(key K) mo.Option[V] {
	v, ok := m.TryGet(key)
	return mo.TupleToOption(v, ok)
}

// Remove 删除键，不存在时返回 false
//
// 删除后所有后续条目的槽位前移一位，索引整体失效，下次查找时重建。
func (m *Map[K, V]) Remove(key K) bool {
	i, ok := m.slot(key)
	if !ok {
		return false
	}
	if err := m.seq.RemoveAt(i); err != nil {
		// 索引有效时 i 一定在范围内
		panic(fmt.Errorf("%w: %v", ErrCorrupt, err))
	}
	m.index.invalidate()
	return true
}

// RemoveEntry 只按键删除
func (m *Map[K, V]) RemoveEntry(e Entry[K, V]) bool {
	return m.Remove(e.Key)
}

// Clear 清空所有条目
func (m *Map[K, V]) Clear() {
	m.seq.reset(nil)
	m.index.invalidate()
}

// Len 条目数量
func (m *Map[K, V]) Len() int {
	return m.seq.Len()
}

// At 返回第 i 个条目，越界返回 ErrIndexOutOfRange
func (m *Map[K, V]) At(i int) (Entry[K, V], error) {
	return m.seq.At(i)
}

// CopyTo 从 dst[offset] 开始依次写入全部条目
//
// 剩余空间不足时返回 ErrCapacity，此时 dst 不会被修改。
func (m *Map[K, V]) CopyTo(dst []Entry[K, V], offset int) error {
	if offset < 0 || offset > len(dst) {
		return fmt.Errorf("%w: offset %d (长度 %d)", ErrIndexOutOfRange, offset, len(dst))
	}
	if room := len(dst) - offset; room < m.seq.Len() {
		return fmt.Errorf("%w: 需要 %d, 剩余 %d", ErrCapacity, m.seq.Len(), room)
	}
	copy(dst[offset:], m.seq.items)
	return nil
}

// Entries 返回持久化序列的拷贝
func (m *Map[K, V]) Entries() []Entry[K, V] {
	return m.seq.Clone()
}

// Restore 用给定条目整体替换序列，出现重复键时返回 ErrDuplicateKey 且不修改 Map
func (m *Map[K, V]) Restore(entries []Entry[K, V]) error {
	if dup, ok := firstDuplicate(entries); ok {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, dup)
	}
	items := make([]Entry[K, V], len(entries))
	copy(items, entries)
	m.seq.reset(items)
	m.index.invalidate()
	return nil
}

// Clone 深拷贝条目序列，值本身按值复制
func (m *Map[K, V]) Clone() *Map[K, V] {
	c := New[K, V]()
	c.seq.reset(m.seq.Clone())
	return c
}

// KeySlice 按顺序返回所有键
func (m *Map[K, V]) KeySlice() []K {
	return lo.Map(m.seq.items, func(e Entry[K, V], _ int) K { return e.Key })
}

// ValueSlice 按顺序返回所有值
func (m *Map[K, V]) ValueSlice() []V {
	return lo.Map(m.seq.items, func(e Entry[K, V], _ int) V { return e.Value })
}

// Rebuilds 返回位置索引的重建次数
func (m *Map[K, V]) Rebuilds() uint64 {
	return m.index.builds
}

// Validate 检查键唯一，以及索引有效时与序列一致
func (m *Map[K, V]) Validate() error {
	if dup, ok := firstDuplicate(m.seq.items); ok {
		return fmt.Errorf("%w: 重复键 %v", ErrCorrupt, dup)
	}
	if !m.index.valid {
		return nil
	}
	if len(m.index.slots) != m.seq.Len() {
		return fmt.Errorf("%w: 索引大小 %d, 序列长度 %d", ErrCorrupt, len(m.index.slots), m.seq.Len())
	}
	for i, e := range m.seq.items {
		if got, ok := m.index.get(e.Key); !ok || got != i {
			return fmt.Errorf("%w: 键 %v 位于槽位 %d, 索引记录为 %d", ErrCorrupt, e.Key, i, got)
		}
	}
	return nil
}

func firstDuplicate[K comparable, V any](entries []Entry[K, V]) (K, bool) {
	seen := make(map[K]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.Key]; ok {
			return e.Key, true
		}
		seen[e.Key] = struct{}{}
	}
	var zero K
	return zero, false
}
