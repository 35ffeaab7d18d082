package genmedia

import (
	"encoding/json"
	"time"
)

// Mode 任务路径标签：本地模拟或委托外部生成服务。
// 创建时一次性确定，生命周期内不变；两条路径共享同一状态机形态，
// 投影与驱动按该标签分支，而不是对记录做运行时类型判断。
type Mode string

const (
	ModeSimulated Mode = "simulated"
	ModeDelegated Mode = "delegated"
)

// 对外可见状态。状态永远由投影计算，不落库，避免存储与上报漂移。
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Result 终态结果：成功时持有视频地址，失败时持有失败描述，二者互斥。
// 一旦写入记录即不可变。
type Result struct {
	VideoURL string
	Err      string
}

// Failed 是否为失败终态。
func (r Result) Failed() bool { return r.Err != "" }

// JobRecord 任务记录，系统中唯一的持久化实体。
// ExternalHandle 仅在委托模式下有值：上游操作对象的原始 JSON，
// 由本记录独占持有，每次轮询后原位刷新，绝不替换为其他操作的句柄。
type JobRecord struct {
	ID             string
	Mode           Mode
	CreatedAt      time.Time
	ExternalHandle json.RawMessage
	Terminal       *Result
	UpdatedAt      time.Time
}

// Snapshot 对外的任务状态快照（由投影产生）。
type Snapshot struct {
	JobID    string    `json:"jobId"`
	Status   string    `json:"status"`
	Progress int       `json:"progress"`
	Video    *VideoRef `json:"video,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// VideoRef 产物引用。
type VideoRef struct {
	URL string `json:"url"`
}

// TerminalStatus 快照是否处于终态。
func (s Snapshot) TerminalStatus() bool {
	return s.Status == StatusCompleted || s.Status == StatusFailed
}
