// Package host 模拟只能持久化有序序列的宿主序列化系统：
// 保存前对对象图中的每个 Receiver 调用 OnBeforeSave，加载后调用 OnAfterLoad。
package host

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"

	"github.com/donutnomad/sdict/codec"
	"github.com/donutnomad/sdict/internal/logutil"
)

// ErrNotPointer Marshal/Unmarshal 的目标必须是非 nil 指针
var ErrNotPointer = errors.New("host: 目标必须是非 nil 指针")

// Receiver 序列化生命周期回调
type Receiver interface {
	OnBeforeSave()
	OnAfterLoad()
}

// Host 宿主持久化驱动
type Host struct {
	codec  codec.Codec
	logger *slog.Logger
}

// Option 配置 Host
type Option func(*Host)

// WithLogger 设置日志，默认丢弃
func WithLogger(l *slog.Logger) Option {
	return func(h *Host) { h.logger = l }
}

// New 创建使用指定编解码器的 Host
func New(c codec.Codec, opts ...Option) *Host {
	h := &Host{
		codec:  c,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Codec 返回当前编解码器
func (h *Host) Codec() codec.Codec {
	return h.codec
}

// Marshal 调用所有 OnBeforeSave 后编码
func (h *Host) Marshal(v any) ([]byte, error) {
	receivers, err := h.receivers(v)
	if err != nil {
		return nil, err
	}
	for _, r := range receivers {
		h.trace("OnBeforeSave", r)
		r.OnBeforeSave()
	}
	h.logger.Debug("OnBeforeSave 已调用", "receivers", len(receivers), "codec", h.codec.Name())

	data, err := h.codec.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("编码失败 (%s): %w", h.codec.Name(), err)
	}
	return data, nil
}

// Unmarshal 解码后调用所有 OnAfterLoad
func (h *Host) Unmarshal(data []byte, v any) error {
	if err := checkPointer(v); err != nil {
		return err
	}
	if err := h.codec.Unmarshal(data, v); err != nil {
		return fmt.Errorf("解码失败 (%s): %w", h.codec.Name(), err)
	}

	receivers, err := h.receivers(v)
	if err != nil {
		return err
	}
	for _, r := range receivers {
		h.trace("OnAfterLoad", r)
		r.OnAfterLoad()
	}
	h.logger.Debug("OnAfterLoad 已调用", "receivers", len(receivers), "codec", h.codec.Name())
	return nil
}

// Save 编码并写入 w
func (h *Host) Save(w io.Writer, v any) error {
	data, err := h.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Load 从 r 读取全部内容并解码
func (h *Host) Load(r io.Reader, v any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("读取失败: %w", err)
	}
	return h.Unmarshal(data, v)
}

// SaveFile 先写临时文件再重命名，避免写到一半的文件
func (h *Host) SaveFile(path string, v any) error {
	var buf bytes.Buffer
	if err := h.Save(&buf, v); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("写入文件 %s 失败: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("写入文件 %s 失败: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("写入文件 %s 失败: %w", path, err)
	}
	h.logger.Debug("已保存", "path", path, "bytes", buf.Len())
	return nil
}

// LoadFile 读取文件并解码
func (h *Host) LoadFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取文件失败: %w", err)
	}
	if err := h.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	h.logger.Debug("已加载", "path", path, "bytes", len(data))
	return nil
}

func (h *Host) trace(hook string, r Receiver) {
	h.logger.Log(context.Background(), logutil.LevelTrace, "回调", "hook", hook, "receiver", fmt.Sprintf("%T", r))
}

func checkPointer(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w, 得到: %T", ErrNotPointer, v)
	}
	return nil
}
