// Package logutil 构建 CLI 使用的 slog 日志
package logutil

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// LevelTrace 比 Debug 更详细，用于逐个回调的记录
const LevelTrace slog.Level = -8

var levelNames = map[string]slog.Level{
	"trace":   LevelTrace,
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// NewLogger 文本格式输出到 w，source 只保留文件名
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		AddSource:   level <= slog.LevelDebug,
		ReplaceAttr: replaceAttr,
	}))
}

func replaceAttr(_ []string, attr slog.Attr) slog.Attr {
	switch attr.Key {
	case slog.LevelKey:
		if lv, ok := attr.Value.Any().(slog.Level); ok && lv <= LevelTrace {
			attr.Value = slog.StringValue("TRACE")
		}
	case slog.SourceKey:
		if src, ok := attr.Value.Any().(*slog.Source); ok {
			src.File = filepath.Base(src.File)
		}
	}
	return attr
}

// ParseLevel 解析 trace/debug/info/warn/error，无法识别时返回 fallback
func ParseLevel(s string, fallback slog.Level) slog.Level {
	return lo.ValueOr(levelNames, strings.ToLower(strings.TrimSpace(s)), fallback)
}
