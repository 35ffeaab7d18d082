package provider

import (
	"context"
	"encoding/json"
)

// OperationAPI 定义与外部生成服务的交互接口，便于 gomock 打桩。
// 功能：封装图片同步生成、视频长任务提交与轮询。
// 约定：SubmitVideo 由提交服务调用一次；PollVideo 每次状态检查至多调用一次，
// 传入任务记录持有的 Raw 句柄，返回刷新后的操作视图。
type OperationAPI interface {
	GenerateImages(ctx context.Context, prompt string, n int) ([]GeneratedImage, error)
	SubmitVideo(ctx context.Context, prompt string) (Operation, error)
	PollVideo(ctx context.Context, raw json.RawMessage) (Operation, error)
}
