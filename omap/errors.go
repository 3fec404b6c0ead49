package omap

import "errors"

var (
	// ErrDuplicateKey Add 时键已存在，或持久化序列中出现重复键
	ErrDuplicateKey = errors.New("omap: 键已存在")
	// ErrKeyNotFound Get 时键不存在
	ErrKeyNotFound = errors.New("omap: 键不存在")
	// ErrIndexOutOfRange 槽位越界
	ErrIndexOutOfRange = errors.New("omap: 槽位越界")
	// ErrCapacity CopyTo 目标空间不足
	ErrCapacity = errors.New("omap: 目标容量不足")
	// ErrCorrupt 条目序列与位置索引不一致
	ErrCorrupt = errors.New("omap: 数据不一致")
)
