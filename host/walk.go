package host

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/reflectwalk"
)

// receiverWalker 收集对象图中所有可寻址的 Receiver
//
// 只经过导出字段；父对象先于子对象。对象图不能有环。
type receiverWalker struct {
	found []Receiver
}

func (w *receiverWalker) Struct(v reflect.Value) error {
	if !v.CanAddr() {
		return nil
	}
	if r, ok := v.Addr().Interface().(Receiver); ok {
		w.found = append(w.found, r)
	}
	return nil
}

func (w *receiverWalker) StructField(f reflect.StructField, _ reflect.Value) error {
	if !f.IsExported() {
		return reflectwalk.SkipEntry
	}
	return nil
}

// receivers 遍历 v 并返回其中的 Receiver
func (h *Host) receivers(v any) ([]Receiver, error) {
	if err := checkPointer(v); err != nil {
		return nil, err
	}
	w := &receiverWalker{}
	if err := reflectwalk.Walk(v, w); err != nil {
		return nil, fmt.Errorf("遍历对象失败: %w", err)
	}
	return w.found, nil
}
