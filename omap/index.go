package omap

// positionIndex 键 -> 槽位，仅存在于内存
//
// valid 为 false 时 slots 内容不可信，下次查找前必须整体重建。
type positionIndex[K comparable] struct {
	slots  map[K]int
	valid  bool
	builds uint64
}

// invalidate 标记索引失效，不立即重建
func (p *positionIndex[K]) invalidate() {
	p.valid = false
}

// build 全量扫描重建；新表构建完成后才替换旧表
func (p *positionIndex[K]) build(n int, keyAt func(int) K) {
	slots := make(map[K]int, n)
	for i := 0; i < n; i++ {
		slots[keyAt(i)] = i
	}
	p.slots = slots
	p.valid = true
	p.builds++
}

// put 追加后登记新槽位，索引失效时忽略
func (p *positionIndex[K]) put(key K, slot int) {
	if !p.valid {
		return
	}
	p.slots[key] = slot
}

func (p *positionIndex[K]) get(key K) (int, bool) {
	i, ok := p.slots[key]
	return i, ok
}
