// Package omap 提供按插入顺序遍历、可被"只支持有序序列"的宿主无损持久化的 Map。
//
// # 概述
//
// Map 由两部分组成：
//   - Sequence: 有序的 key/value 条目列表，宿主唯一需要持久化的状态
//   - 位置索引: 键 -> 槽位，只在内存中存在，按需全量重建
//
// 位置索引带有 valid 标记。构造后、OnAfterLoad 之后、以及 Remove/Clear/Restore
// 之后索引失效，下一次依赖查找的操作会先全量重建，再执行查找。
//
// # 基本用法
//
//	var scores omap.Map[string, int]
//	scores.Set("alice", 90)
//	_ = scores.Add("bob", 80)
//	for k, v := range scores.All() {
//	    fmt.Println(k, v)
//	}
//
// # 持久化
//
// Map 实现了 JSON / YAML / CBOR 的 (Un)Marshaler，以及 sql.Scanner / driver.Valuer，
// 输出格式始终是有序数组：
//
//	[{"key":"alice","value":90},{"key":"bob","value":80}]
//
// 宿主在保存前调用 OnBeforeSave，加载后调用 OnAfterLoad（见 host 包）。
//
// # 并发
//
// Map 不是并发安全的，多个 goroutine 同时访问的行为未定义。
package omap
