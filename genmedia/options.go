package genmedia

import (
	"time"

	"github.com/mengeric/genmedia-server-go/provider"
)

// 模拟路径使用的固定产物。
const (
	// SampleVideoURL 模拟视频任务到期后返回的样例视频。
	SampleVideoURL = "https://storage.googleapis.com/gtv-videos-bucket/sample/ForBiggerBlazes.mp4"
	// mockImageURLFormat 模拟图片生成返回的占位图地址模板。
	mockImageURLFormat = "https://picsum.photos/id/%d/1024/1024"
)

// Options 引擎运行参数。
type Options struct {
	ListenAddr        string        // 内置 HTTP Server 监听地址，如 :3001、127.0.0.1:0
	SimulatedDuration time.Duration // 模拟视频任务总时长
	ImageMockDelay    time.Duration // 模拟图片生成的固定延迟
}

// withDefaults 填充默认值。
func (o *Options) withDefaults() {
	if o.ListenAddr == "" {
		o.ListenAddr = ":3001"
	}
	if o.SimulatedDuration <= 0 {
		o.SimulatedDuration = 15 * time.Second
	}
	if o.ImageMockDelay <= 0 {
		o.ImageMockDelay = 2 * time.Second
	}
}

// engineConfig 聚合构造参数。
type engineConfig struct {
	opt   Options
	store Storage
	api   provider.OperationAPI
}

// Option 引擎可选项。
type Option func(*engineConfig)

// WithListenAddr 设置内置 HTTP Server 监听地址。
func WithListenAddr(addr string) Option { return func(c *engineConfig) { c.opt.ListenAddr = addr } }

// WithSimulatedDuration 设置模拟视频任务总时长。
func WithSimulatedDuration(d time.Duration) Option {
	return func(c *engineConfig) { c.opt.SimulatedDuration = d }
}

// WithImageMockDelay 设置模拟图片生成延迟。
func WithImageMockDelay(d time.Duration) Option {
	return func(c *engineConfig) { c.opt.ImageMockDelay = d }
}

// WithStorage 注入存储实现（默认内置内存存储）。
func WithStorage(s Storage) Option { return func(c *engineConfig) { c.store = s } }

// WithProvider 注入外部生成服务。注入后引擎进入委托模式，
// 该决定在构造时一次性生效，对所有提交统一适用。
func WithProvider(api provider.OperationAPI) Option { return func(c *engineConfig) { c.api = api } }
