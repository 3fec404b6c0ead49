package omap

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"reflect"

	"github.com/bytedance/sonic"
	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-yaml"
)

// cborEnc 嵌套 map 按确定顺序编码
var cborEnc = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// cborDec 值为 any 时嵌套 map 解码为 map[string]any，保证可再编码为 JSON
var cborDec = func() cbor.DecMode {
	dm, err := cbor.DecOptions{DefaultMapType: reflect.TypeOf(map[string]any(nil))}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}()

// OnBeforeSave 保存前回调。序列本身就是持久化形式，无需转换。
func (m *Map[K, V]) OnBeforeSave() {}

// OnAfterLoad 加载后回调，标记索引失效，下一次查找时重建
func (m *Map[K, V]) OnAfterLoad() {
	m.index.invalidate()
}

// persisted 返回用于编码的序列，空 Map 编码为 [] 而不是 null
func (m Map[K, V]) persisted() []Entry[K, V] {
	return m.seq.Clone()
}

// MarshalJSON 值接收者，使非指针字段同样按序列编码
func (m Map[K, V]) MarshalJSON() ([]byte, error) {
	return sonic.ConfigStd.Marshal(m.persisted())
}

// UnmarshalJSON 解析有序数组，失败时 Map 保持不变。null 不做任何修改。
func (m *Map[K, V]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var entries []Entry[K, V]
	if err := sonic.ConfigStd.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("解析 JSON 条目失败: %w", err)
	}
	return m.Restore(entries)
}

// MarshalYAML 实现 yaml.InterfaceMarshaler
func (m Map[K, V]) MarshalYAML() (any, error) {
	return m.persisted(), nil
}

// UnmarshalYAML 实现 yaml.BytesUnmarshaler
func (m *Map[K, V]) UnmarshalYAML(data []byte) error {
	var entries []Entry[K, V]
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("解析 YAML 条目失败: %w", err)
	}
	return m.Restore(entries)
}

// MarshalCBOR 实现 cbor.Marshaler
func (m Map[K, V]) MarshalCBOR() ([]byte, error) {
	return cborEnc.Marshal(m.persisted())
}

// UnmarshalCBOR 实现 cbor.Unmarshaler
func (m *Map[K, V]) UnmarshalCBOR(data []byte) error {
	var entries []Entry[K, V]
	if err := cborDec.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("解析 CBOR 条目失败: %w", err)
	}
	return m.Restore(entries)
}

// GormDataType 作为 JSON 列存储
func (m Map[K, V]) GormDataType() string {
	return "json"
}

// Value 实现 driver.Valuer，写入 JSON 数组
func (m Map[K, V]) Value() (driver.Value, error) {
	data, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan 实现 sql.Scanner，SQL NULL 清空 Map
func (m *Map[K, V]) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		m.Clear()
		return nil
	case []byte:
		return m.UnmarshalJSON(v)
	case string:
		return m.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("omap: 无法从 %T 扫描", src)
	}
}
