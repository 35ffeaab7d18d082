package genmedia

import "time"

// DelegatedPlaceholderProgress 委托模式处理中的占位进度。
// 上游不暴露细粒度进度，使用固定中间值保证客户端观察到的进度不回退。
const DelegatedPlaceholderProgress = 50

// Project 纯投影：由任务记录的内部状态计算对外快照。
// 不修改入参，可安全地重复与并发调用；所有对外读取都经过本函数，
// 因此状态不存在落库副本，也就不存在漂移。
func Project(rec *JobRecord, now time.Time, simDuration time.Duration) Snapshot {
	snap := Snapshot{JobID: rec.ID}
	if rec.Terminal != nil {
		if rec.Terminal.Failed() {
			snap.Status = StatusFailed
			snap.Error = rec.Terminal.Err
			return snap
		}
		snap.Status = StatusCompleted
		snap.Progress = 100
		snap.Video = &VideoRef{URL: rec.Terminal.VideoURL}
		return snap
	}
	snap.Status = StatusProcessing
	if rec.Mode == ModeSimulated {
		elapsed := now.Sub(rec.CreatedAt)
		if elapsed < 0 {
			elapsed = 0
		}
		p := 100
		if simDuration > 0 {
			p = int(100 * elapsed / simDuration)
		}
		if p > 100 {
			p = 100
		}
		snap.Progress = p
		return snap
	}
	snap.Progress = DelegatedPlaceholderProgress
	return snap
}
