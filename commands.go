package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/donutnomad/sdict/codec"
	"github.com/donutnomad/sdict/host"
	"github.com/donutnomad/sdict/internal/render"
	"github.com/donutnomad/sdict/omap"
	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// Options 命令行选项
type Options struct {
	Codec    string        // 编解码器名，空则按扩展名选择
	Format   string        // ls 输出模板
	Type     string        // set/add 值类型
	Verbose  bool          // 详细输出
	Debounce time.Duration // watch 防抖动时间
	Stdout   io.Writer
	Logger   *slog.Logger
}

// document 命令行操作的文档类型
type document = omap.Map[string, any]

type command struct {
	name    string
	nargs   int  // 文件之后的参数个数
	missing bool // 文件不存在时视为空文档
	run     func(ctx context.Context, c *cli, doc *document, args []string) error
}

var commands = lo.SliceToMap([]command{
	{name: "ls", run: cmdList},
	{name: "get", nargs: 1, run: cmdGet},
	{name: "set", nargs: 2, missing: true, run: cmdSet},
	{name: "add", nargs: 2, missing: true, run: cmdAdd},
	{name: "rm", nargs: 1, run: cmdRemove},
	{name: "keys", run: cmdKeys},
	{name: "values", run: cmdValues},
	{name: "count", run: cmdCount},
	{name: "check", run: cmdCheck},
	{name: "dump", run: cmdDump},
	{name: "convert", nargs: 1, run: cmdConvert},
	{name: "watch", run: cmdWatch},
}, func(c command) (string, command) { return c.name, c })

// cli 单次命令执行的上下文
type cli struct {
	opts *Options
	path string
	host *host.Host
}

func run(ctx context.Context, opts *Options, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("缺少参数，用法: sdict <命令> <文件> [参数...]")
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("未知命令: %s", args[0])
	}
	if rest := args[2:]; len(rest) != cmd.nargs {
		return fmt.Errorf("命令 %s 需要 %d 个参数, 得到 %d 个", cmd.name, cmd.nargs, len(rest))
	}

	c, err := newCLI(opts, args[1])
	if err != nil {
		return err
	}

	doc, err := c.load(cmd.missing)
	if err != nil {
		return err
	}
	return cmd.run(ctx, c, doc, args[2:])
}

func newCLI(opts *Options, path string) (*cli, error) {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	cdc, err := resolveCodec(opts.Codec, path)
	if err != nil {
		return nil, err
	}
	return &cli{
		opts: opts,
		path: path,
		host: host.New(cdc, host.WithLogger(opts.Logger)),
	}, nil
}

func resolveCodec(name, path string) (codec.Codec, error) {
	if name != "" {
		return codec.Get(name)
	}
	return codec.ForPath(path)
}

func (c *cli) load(allowMissing bool) (*document, error) {
	doc := omap.New[string, any]()
	err := c.host.LoadFile(c.path, doc)
	if allowMissing && errors.Is(err, fs.ErrNotExist) {
		c.opts.Logger.Debug("文件不存在，使用空文档", "path", c.path)
		return doc, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *cli) save(doc *document) error {
	return c.host.SaveFile(c.path, doc)
}

func (c *cli) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(c.opts.Stdout, format, a...)
}

func rows(doc *document) []render.Row {
	out := make([]render.Row, 0, doc.Len())
	i := 0
	for k, v := range doc.All() {
		out = append(out, render.Row{Index: i, Key: k, Value: v})
		i++
	}
	return out
}

func cmdList(_ context.Context, c *cli, doc *document, _ []string) error {
	if c.opts.Format == "" {
		return render.Table(c.opts.Stdout, rows(doc))
	}
	tmpl, err := render.Template(c.opts.Format)
	if err != nil {
		return err
	}
	return render.Execute(c.opts.Stdout, tmpl, rows(doc))
}

func cmdGet(_ context.Context, c *cli, doc *document, args []string) error {
	v, err := doc.Get(args[0])
	if err != nil {
		return err
	}
	c.printf("%v\n", v)
	return nil
}

func cmdSet(_ context.Context, c *cli, doc *document, args []string) error {
	v, err := parseValue(args[1], c.opts.Type)
	if err != nil {
		return err
	}
	doc.Set(args[0], v)
	return c.save(doc)
}

func cmdAdd(_ context.Context, c *cli, doc *document, args []string) error {
	v, err := parseValue(args[1], c.opts.Type)
	if err != nil {
		return err
	}
	if err := doc.Add(args[0], v); err != nil {
		return err
	}
	return c.save(doc)
}

func cmdRemove(_ context.Context, c *cli, doc *document, args []string) error {
	if !doc.Remove(args[0]) {
		return fmt.Errorf("%w: %s", omap.ErrKeyNotFound, args[0])
	}
	return c.save(doc)
}

func cmdKeys(_ context.Context, c *cli, doc *document, _ []string) error {
	for k := range doc.Keys() {
		c.printf("%s\n", k)
	}
	return nil
}

func cmdValues(_ context.Context, c *cli, doc *document, _ []string) error {
	for v := range doc.Values() {
		c.printf("%v\n", v)
	}
	return nil
}

func cmdCount(_ context.Context, c *cli, doc *document, _ []string) error {
	c.printf("%d\n", doc.Len())
	return nil
}

func cmdCheck(_ context.Context, c *cli, doc *document, _ []string) error {
	doc.Reindex()
	if err := doc.Validate(); err != nil {
		return err
	}
	c.printf("ok: %d 个条目\n", doc.Len())
	return nil
}

func cmdDump(_ context.Context, c *cli, doc *document, _ []string) error {
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
	cfg.Fdump(c.opts.Stdout, doc.Entries())
	return nil
}

func cmdConvert(_ context.Context, c *cli, doc *document, args []string) error {
	dstCodec, err := codec.ForPath(args[0])
	if err != nil {
		return err
	}
	dst := host.New(dstCodec, host.WithLogger(c.opts.Logger))
	if err := dst.SaveFile(args[0], doc); err != nil {
		return err
	}
	if c.opts.Verbose {
		c.printf("已转换 %s (%s) -> %s (%s): %d 个条目\n",
			c.path, c.host.Codec().Name(), args[0], dstCodec.Name(), doc.Len())
	}
	return nil
}

// parseValue 按类型解析命令行中的值，auto 依次尝试 int、float、bool，最后为 string
//
// int 只接受十进制整数，带小数部分的输入不会被截断。
func parseValue(s, typ string) (any, error) {
	switch strings.ToLower(typ) {
	case "string", "str":
		return s, nil
	case "int":
		return parseInt(s)
	case "float":
		return cast.ToFloat64E(s)
	case "bool":
		return cast.ToBoolE(s)
	case "", "auto":
		if v, err := parseInt(s); err == nil {
			return v, nil
		}
		if v, err := cast.ToFloat64E(s); err == nil {
			return v, nil
		}
		if v, err := cast.ToBoolE(s); err == nil {
			return v, nil
		}
		return s, nil
	default:
		return nil, fmt.Errorf("未知值类型: %s", typ)
	}
}

func parseInt(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q 不是整数", s)
	}
	return v, nil
}
