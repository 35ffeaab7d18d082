package genmedia

import (
	"fmt"
	"time"

	"github.com/mengeric/genmedia-server-go/config"
	"github.com/mengeric/genmedia-server-go/provider"
)

// NewEngineFromConfig 按配置组装引擎。
// apiKey 非空时注入 HTTP Provider，引擎进入委托模式；否则全部模拟 ——
// 与配置一样，该决定在进程启动时一次性生效。
// PollSeconds/SweepSeconds/StatsSeconds/RetentionMinutes 供宿主组装
// poller.New 与 scheduler.NewSweeper / NewStatsReporter 时取用。
func NewEngineFromConfig(cfg config.Config, apiKey string) *Engine {
	var opts []Option
	if cfg.Host != "" || cfg.Port != 0 {
		opts = append(opts, WithListenAddr(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)))
	}
	if cfg.SimulatedSeconds > 0 {
		opts = append(opts, WithSimulatedDuration(time.Duration(cfg.SimulatedSeconds)*time.Second))
	}
	if apiKey != "" {
		base := cfg.Provider.BaseURL
		if base == "" {
			base = provider.DefaultBaseURL
		}
		opts = append(opts, WithProvider(provider.NewHTTPOperationAPI(base, apiKey, cfg.Provider.ImageModel, cfg.Provider.VideoModel)))
	}
	return NewEngine(opts...)
}
