// Package render 输出条目：对齐的表格，或 text/template + sprig 模板
package render

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/mattn/go-runewidth"
)

// Row 一行输出
type Row struct {
	Index int
	Key   string
	Value any
}

// Table 按显示宽度对齐键列，支持 CJK 与 emoji
func Table(w io.Writer, rows []Row) error {
	width := 0
	for _, r := range rows {
		width = max(width, runewidth.StringWidth(r.Key))
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s  %v\n", runewidth.FillRight(r.Key, width), r.Value); err != nil {
			return err
		}
	}
	return nil
}

// Template 编译模板，可使用 sprig 全部函数
func Template(text string) (*template.Template, error) {
	tmpl, err := template.New("entry").
		Funcs(sprig.TxtFuncMap()).
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("解析模板失败: %w", err)
	}
	return tmpl, nil
}

// Execute 对每一行执行模板，模板末尾没有换行时自动补上
func Execute(w io.Writer, tmpl *template.Template, rows []Row) error {
	for _, r := range rows {
		var sb strings.Builder
		if err := tmpl.Execute(&sb, r); err != nil {
			return fmt.Errorf("执行模板失败: %w", err)
		}
		out := sb.String()
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		if _, err := io.WriteString(w, out); err != nil {
			return err
		}
	}
	return nil
}
