package genmedia

import (
	"context"
)

// Storage 任务记录存储接口（可由宿主实现或使用内置 memstore / storage 子包）。
// 并发契约：不同 ID 的并发读写必须安全；同一 ID 的串行化由生命周期驱动
// 持有的按 ID 互斥锁保证，存储实现无需额外排队。
type Storage interface {
	// Put 按 ID 插入或覆盖记录。
	Put(ctx context.Context, rec *JobRecord) error
	// Get 按 ID 读取记录；未知 ID 返回 ErrJobNotFound。
	Get(ctx context.Context, id string) (*JobRecord, error)
	// SetTerminal 写入终态结果，先写者胜：已有终态时不覆盖，
	// 返回实际生效的结果。未知 ID 返回 ErrJobNotFound。
	SetTerminal(ctx context.Context, id string, res Result) (Result, error)
	// List 列出全部记录（供统计与清理使用）。
	List(ctx context.Context) ([]JobRecord, error)
	// Delete 按 ID 删除记录；未知 ID 不视为错误。
	Delete(ctx context.Context, id string) error
}
