package main

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/donutnomad/sdict/codec"
	"github.com/donutnomad/sdict/internal/logutil"
)

var (
	verbose   = flag.Bool("v", false, "详细输出")
	help      = flag.Bool("h", false, "显示帮助信息")
	codecName = flag.String("codec", os.Getenv("SDICT_CODEC"), "编解码器（默认按扩展名选择，环境变量 SDICT_CODEC）")
	format    = flag.String("format", "", "ls 输出模板，如 '{{.Key}}={{.Value}}'，支持 sprig 函数")
	valueType = flag.String("type", "auto", "set/add 的值类型: auto, string, int, float, bool")
	debounce  = flag.Duration("debounce", 300*time.Millisecond, "watch 防抖动时间")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	level := logutil.ParseLevel(os.Getenv("SDICT_LOG_LEVEL"), slog.LevelWarn)
	if *verbose {
		level = min(level, slog.LevelDebug)
	}

	opts := &Options{
		Codec:    *codecName,
		Format:   *format,
		Type:     *valueType,
		Verbose:  *verbose,
		Debounce: *debounce,
		Stdout:   os.Stdout,
		Logger:   logutil.NewLogger(os.Stderr, level),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts, args); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	_, _ = fmt.Fprintf(os.Stderr, `sdict - 查看与编辑以有序条目序列持久化的 Map

用法:
  sdict [选项] <命令> <文件> [参数...]

命令:
  ls       按插入顺序列出条目
  get      获取值              sdict get save.json hp
  set      设置值（存在则更新）sdict set save.json hp 100
  add      新增（已存在则报错）sdict add save.json mp 50
  rm       删除键              sdict rm save.json mp
  keys     列出键
  values   列出值
  count    条目数量
  check    校验数据一致性
  dump     打印内部结构
  convert  转换格式            sdict convert save.json save.yaml
  watch    监听文件变化并重新加载

选项:
`)
	flag.PrintDefaults()

	_, _ = fmt.Fprintf(os.Stderr, "\n支持的编解码器: %s\n", strings.Join(codec.Global().Names(), ", "))
	_, _ = fmt.Fprintf(os.Stderr, "日志级别: SDICT_LOG_LEVEL=%s\n", cmp.Or(os.Getenv("SDICT_LOG_LEVEL"), "warn"))
}
