// Package codec 提供宿主持久化使用的编解码器：JSON、YAML、CBOR。
package codec

import (
	"reflect"

	"github.com/bytedance/sonic"
	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-yaml"
)

// Codec 编解码器
type Codec interface {
	// Name 编解码器名称，如 json
	Name() string
	// Extensions 关联的文件扩展名（含点号）
	Extensions() []string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSON 基于 sonic，使用与 encoding/json 兼容的配置
type JSON struct {
	// Indent 非空时输出缩进格式
	Indent string
}

func (JSON) Name() string         { return "json" }
func (JSON) Extensions() []string { return []string{".json"} }

func (c JSON) Marshal(v any) ([]byte, error) {
	if c.Indent != "" {
		return sonic.ConfigStd.MarshalIndent(v, "", c.Indent)
	}
	return sonic.ConfigStd.Marshal(v)
}

func (JSON) Unmarshal(data []byte, v any) error {
	return sonic.ConfigStd.Unmarshal(data, v)
}

// YAML 基于 goccy/go-yaml
type YAML struct{}

func (YAML) Name() string         { return "yaml" }
func (YAML) Extensions() []string { return []string{".yaml", ".yml"} }

func (YAML) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (YAML) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// CBOR 基于 fxamacker/cbor，使用 Core Deterministic 编码，相同输入得到相同字节
type CBOR struct{}

var cborEnc = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// cborDec 未指定类型的 map 解码为 map[string]any，与 JSON/YAML 的结果一致
var cborDec = func() cbor.DecMode {
	dm, err := cbor.DecOptions{DefaultMapType: reflect.TypeOf(map[string]any(nil))}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}()

func (CBOR) Name() string         { return "cbor" }
func (CBOR) Extensions() []string { return []string{".cbor"} }

func (CBOR) Marshal(v any) ([]byte, error) {
	return cborEnc.Marshal(v)
}

func (CBOR) Unmarshal(data []byte, v any) error {
	return cborDec.Unmarshal(data, v)
}
