package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// ErrUnknownCodec 找不到对应的编解码器
var ErrUnknownCodec = errors.New("codec: 未知编解码器")

// Registry 编解码器注册表
// 名称与扩展名都只能绑定一个编解码器
type Registry struct {
	mu sync.RWMutex

	// codecs 名称 -> 编解码器
	codecs map[string]Codec

	// extensions 扩展名 -> 编解码器
	extensions map[string]Codec
}

// NewRegistry 创建新的注册表
func NewRegistry() *Registry {
	return &Registry{
		codecs:     make(map[string]Codec),
		extensions: make(map[string]Codec),
	}
}

// Register 注册编解码器
// 如果名称或扩展名已被占用，返回错误
func (r *Registry) Register(c Codec) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.ToLower(c.Name())
	if name == "" {
		return errors.New("codec: 名称不能为空")
	}

	if _, ok := r.codecs[name]; ok {
		return fmt.Errorf("编解码器 %q 已注册", name)
	}

	for _, ext := range c.Extensions() {
		if existing, ok := r.extensions[strings.ToLower(ext)]; ok {
			return fmt.Errorf("扩展名 %s 已被编解码器 %q 绑定，无法被 %q 再次绑定",
				ext, existing.Name(), name)
		}
	}

	r.codecs[name] = c
	for _, ext := range c.Extensions() {
		r.extensions[strings.ToLower(ext)] = c
	}
	return nil
}

// MustRegister 注册编解码器，失败时 panic
func (r *Registry) MustRegister(c Codec) {
	if err := r.Register(c); err != nil {
		panic(err)
	}
}

// Get 根据名称获取编解码器
func (r *Registry) Get(name string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.codecs[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	return c, nil
}

// ForPath 根据文件扩展名选择编解码器
func (r *Registry) ForPath(path string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ext := strings.ToLower(filepath.Ext(path))
	c, ok := r.extensions[ext]
	if !ok {
		return nil, fmt.Errorf("%w: 无法识别扩展名 %q (%s)", ErrUnknownCodec, ext, path)
	}
	return c, nil
}

// Names 返回所有已注册的名称，按字母排序
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := lo.Keys(r.codecs)
	sort.Strings(names)
	return names
}

// 全局注册表
var globalRegistry = func() *Registry {
	r := NewRegistry()
	r.MustRegister(JSON{Indent: "  "})
	r.MustRegister(YAML{})
	r.MustRegister(CBOR{})
	return r
}()

// Global 返回全局注册表
func Global() *Registry {
	return globalRegistry
}

// Get 从全局注册表获取编解码器
func Get(name string) (Codec, error) {
	return globalRegistry.Get(name)
}

// ForPath 从全局注册表按扩展名选择编解码器
func ForPath(path string) (Codec, error) {
	return globalRegistry.ForPath(path)
}
