package genmedia

import (
	"errors"
	"fmt"
)

// ErrJobNotFound 未知任务 ID。提交服务之外的组件不产生该错误，
// 引擎不重试，客户端轮询器视其为带错误的终止。
var ErrJobNotFound = errors.New("job not found")

// ValidationError 提交参数校验失败，任务未创建。
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Reason)
}

// TransientCheckError 委托模式下单次状态检查中上游调用失败。
// 不写入任务记录，任务保持 processing，下一次轮询自然重试；
// 引擎不设重试上限。
type TransientCheckError struct {
	Op  string
	Err error
}

func (e *TransientCheckError) Error() string {
	return fmt.Sprintf("transient check failure (%s): %v", e.Op, e.Err)
}

func (e *TransientCheckError) Unwrap() error { return e.Err }
