package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/donutnomad/sdict/internal/render"
	"github.com/fsnotify/fsnotify"
)

// watchRunner 监听文件变化，防抖动后重新加载
type watchRunner struct {
	cli     *cli
	doc     *document
	target  string // 监听的文件绝对路径
	ctx     context.Context
	onLoad  func() // 每次重新加载完成后调用，测试使用
	mu      sync.Mutex
	pending *time.Timer
}

func cmdWatch(ctx context.Context, c *cli, doc *document, _ []string) error {
	target, err := filepath.Abs(c.path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建文件监听器失败: %w", err)
	}
	defer watcher.Close()

	// 监听目录而不是文件：编辑器保存时常常是替换文件
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("添加监听目录失败 %s: %w", filepath.Dir(target), err)
	}

	r := newWatchRunner(ctx, c, doc, target)
	defer r.stop()

	r.print()
	c.printf("正在监听 %s，按 Ctrl+C 退出\n", c.path)
	return r.watchLoop(watcher)
}

func newWatchRunner(ctx context.Context, c *cli, doc *document, target string) *watchRunner {
	return &watchRunner{cli: c, doc: doc, target: target, ctx: ctx}
}

// watchLoop 事件处理循环
func (r *watchRunner) watchLoop(watcher *fsnotify.Watcher) error {
	for {
		select {
		case <-r.ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			r.handleEvent(event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.cli.opts.Logger.Warn("监听错误", "error", err)
		}
	}
}

// handleEvent 只关注目标文件的 Write/Create/Rename
func (r *watchRunner) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	if name, err := filepath.Abs(event.Name); err != nil || name != r.target {
		return
	}
	r.cli.opts.Logger.Debug("检测到文件变化", "path", event.Name, "op", event.Op.String())
	r.schedule()
}

// schedule 防抖动调度重新加载
func (r *watchRunner) schedule() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending != nil {
		r.pending.Stop()
	}
	r.pending = time.AfterFunc(r.cli.opts.Debounce, func() {
		select {
		case <-r.ctx.Done():
			return
		default:
		}
		r.reload()
	})
}

// reload 重新加载到同一个文档，OnAfterLoad 使索引失效
func (r *watchRunner) reload() {
	r.mu.Lock()
	if err := r.cli.host.LoadFile(r.cli.path, r.doc); err != nil {
		r.cli.printf("重新加载失败: %v\n", err)
	} else {
		r.cli.printf("已重新加载: %d 个条目\n", r.doc.Len())
		r.table()
	}
	r.mu.Unlock()

	if r.onLoad != nil {
		r.onLoad()
	}
}

func (r *watchRunner) print() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.table()
}

func (r *watchRunner) table() {
	if err := render.Table(r.cli.opts.Stdout, rows(r.doc)); err != nil {
		r.cli.opts.Logger.Warn("输出失败", "error", err)
	}
}

// stop 退出时停止待处理的定时器
func (r *watchRunner) stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending != nil {
		r.pending.Stop()
	}
}
