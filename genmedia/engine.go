package genmedia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mengeric/genmedia-server-go/logging"
	"github.com/mengeric/genmedia-server-go/metrics"
	"github.com/mengeric/genmedia-server-go/provider"
)

// Engine 组件主对象：提交服务 + 生命周期驱动 + 内置 HTTP Server。
// 说明：Engine 在 Start(ctx) 中自动启动 HTTP Server（监听 Options.ListenAddr），
// 暴露图片生成、视频任务提交、任务状态查询与运行统计端点。
// 模式在构造时一次性确定：注入了外部生成服务则走委托路径，否则全部模拟。
type Engine struct {
	opt      Options
	api      provider.OperationAPI
	store    Storage
	validate *validator.Validate

	locks  sync.Map // 任务 ID -> *sync.Mutex，串行化同一任务的状态检查
	srv    *http.Server
	addrMu sync.RWMutex
	addr   string
}

// GenerateRequest 生成请求体（图片与视频共用）。
type GenerateRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// NewEngine 创建引擎。
// 功能：按照 With... 可选项组合出一个可运行的引擎；未显式注入存储时
// 默认使用内置内存存储；未注入外部生成服务时所有任务走模拟路径。
func NewEngine(opts ...Option) *Engine {
	cfg := &engineConfig{}
	for _, fn := range opts {
		fn(cfg)
	}
	cfg.opt.withDefaults()
	e := &Engine{opt: cfg.opt, api: cfg.api, validate: validator.New()}
	if cfg.store != nil {
		e.store = cfg.store
	} else {
		e.store = newDefaultMemStore()
	}
	return e
}

// Delegated 引擎是否处于委托模式。
func (e *Engine) Delegated() bool { return e.api != nil }

// Store 返回引擎使用的存储（供后台清理/统计任务复用）。
func (e *Engine) Store() Storage { return e.store }

// SubmitVideo 提交一个视频生成任务并返回任务 ID。
// 这是系统中唯一生成任务 ID 的位置。
// 异常：空 prompt 返回 ValidationError，不创建任何记录；
// 委托模式下上游提交失败原样返回错误，同样不创建记录。
func (e *Engine) SubmitVideo(ctx context.Context, req GenerateRequest) (string, error) {
	if err := e.validate.Struct(req); err != nil {
		return "", &ValidationError{Field: "prompt", Reason: "is required"}
	}
	now := time.Now()
	rec := &JobRecord{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	if e.Delegated() {
		op, err := e.api.SubmitVideo(ctx, req.Prompt)
		if err != nil {
			return "", fmt.Errorf("submit video: %w", err)
		}
		rec.Mode = ModeDelegated
		rec.ExternalHandle = op.Raw
	} else {
		rec.Mode = ModeSimulated
	}
	if err := e.store.Put(ctx, rec); err != nil {
		return "", err
	}
	logging.L().Info(ctx, "video job created", "jobId", rec.ID, "mode", string(rec.Mode))
	return rec.ID, nil
}

// GenerateImage 同步生成图片。
// 委托模式调用上游；模拟模式等待固定延迟后返回占位图。
func (e *Engine) GenerateImage(ctx context.Context, req GenerateRequest) ([]provider.GeneratedImage, error) {
	if err := e.validate.Struct(req); err != nil {
		return nil, &ValidationError{Field: "prompt", Reason: "is required"}
	}
	if e.Delegated() {
		return e.api.GenerateImages(ctx, req.Prompt, 1)
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(e.opt.ImageMockDelay):
	}
	img := provider.GeneratedImage{
		ID:     uuid.NewString(),
		URL:    fmt.Sprintf(mockImageURLFormat, rand.Intn(500)),
		Prompt: req.Prompt,
	}
	return []provider.GeneratedImage{img}, nil
}

// Start 启动内置 HTTP Server。
// 生命周期：受传入 ctx 控制，ctx.Done 时优雅关闭。
// 监听失败记录日志后返回，不抛出。
func (e *Engine) Start(ctx context.Context) {
	mux := http.NewServeMux()
	e.registerHandlers(mux, "/api")
	ln, err := net.Listen("tcp", e.opt.ListenAddr)
	if err != nil {
		logging.L().Errorf(ctx, "listen failed: addr=%s err=%v", e.opt.ListenAddr, err)
		return
	}
	e.addrMu.Lock()
	e.addr = ln.Addr().String()
	e.addrMu.Unlock()
	e.srv = &http.Server{Addr: e.addr, Handler: mux}
	go func() { <-ctx.Done(); _ = e.srv.Shutdown(context.Background()) }()
	go func() { _ = e.srv.Serve(ln) }()
	logging.L().Info(ctx, "engine started", "addr", e.addr, "delegated", e.Delegated())
}

// Addr 返回内置 HTTP Server 的实际监听地址（用于测试或 :0 随机端口场景）。
func (e *Engine) Addr() string { e.addrMu.RLock(); defer e.addrMu.RUnlock(); return e.addr }

// registerHandlers 挂载路由，base 前缀默认为 /api。
// 端点：POST {base}/generate-image、POST {base}/generate-video、
// GET {base}/job-status/{id}、GET {base}/stats
func (e *Engine) registerHandlers(mux *http.ServeMux, base string) {
	mux.HandleFunc(base+"/generate-image", e.handleGenerateImage)
	mux.HandleFunc(base+"/generate-video", e.handleGenerateVideo)
	mux.HandleFunc(base+"/job-status/", e.handleJobStatus(base+"/job-status/"))
	mux.HandleFunc(base+"/stats", e.handleStats)
}

// handleGenerateImage 图片生成入口（同步返回产物）。
func (e *Engine) handleGenerateImage(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(rw, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(rw, http.StatusBadRequest, err)
		return
	}
	imgs, err := e.GenerateImage(r.Context(), req)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			writeErr(rw, http.StatusBadRequest, err)
			return
		}
		logging.L().Errorf(r.Context(), "generate image failed: %v", err)
		writeErr(rw, http.StatusInternalServerError, errors.New("failed to generate image"))
		return
	}
	writeJSON(rw, http.StatusOK, map[string]any{"success": true, "images": imgs})
}

// handleGenerateVideo 视频任务提交入口（202 + jobId）。
func (e *Engine) handleGenerateVideo(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(rw, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(rw, http.StatusBadRequest, err)
		return
	}
	id, err := e.SubmitVideo(r.Context(), req)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			writeErr(rw, http.StatusBadRequest, err)
			return
		}
		logging.L().Errorf(r.Context(), "submit video failed: %v", err)
		writeErr(rw, http.StatusInternalServerError, errors.New("failed to submit video job"))
		return
	}
	writeJSON(rw, http.StatusAccepted, map[string]any{"success": true, "jobId": id})
}

// handleJobStatus 任务状态查询入口，prefix 为路由挂载时的完整前缀。
// 错误映射：未知 ID -> 404；上游瞬时失败 -> 502（客户端可在下个周期重试）。
func (e *Engine) handleJobStatus(prefix string) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeErr(rw, http.StatusMethodNotAllowed, errors.New("method not allowed"))
			return
		}
		id := strings.TrimPrefix(r.URL.Path, prefix)
		if id == "" || strings.Contains(id, "/") {
			writeErr(rw, http.StatusNotFound, ErrJobNotFound)
			return
		}
		snap, err := e.CheckStatus(r.Context(), id)
		if err != nil {
			var tce *TransientCheckError
			switch {
			case errors.Is(err, ErrJobNotFound):
				writeErr(rw, http.StatusNotFound, ErrJobNotFound)
			case errors.As(err, &tce):
				logging.L().Warnf(r.Context(), "status check failed: jobId=%s err=%v", id, err)
				writeErr(rw, http.StatusBadGateway, errors.New("failed to retrieve job status"))
			default:
				logging.L().Errorf(r.Context(), "status check failed: jobId=%s err=%v", id, err)
				writeErr(rw, http.StatusInternalServerError, errors.New("internal error"))
			}
			return
		}
		writeJSON(rw, http.StatusOK, struct {
			Success bool `json:"success"`
			Snapshot
		}{Success: true, Snapshot: snap})
	}
}

// handleStats 运行统计：任务计数 + 进程指标。
func (e *Engine) handleStats(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(rw, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	recs, err := e.store.List(r.Context())
	if err != nil {
		writeErr(rw, http.StatusInternalServerError, err)
		return
	}
	var active, completed, failed int
	for _, rec := range recs {
		switch {
		case rec.Terminal == nil:
			active++
		case rec.Terminal.Failed():
			failed++
		default:
			completed++
		}
	}
	writeJSON(rw, http.StatusOK, map[string]any{
		"success": true,
		"jobs":    map[string]int{"active": active, "completed": completed, "failed": failed},
		"runtime": metrics.CollectRuntimeMetric(r.Context()),
	})
}

// writeErr/writeJSON 公共返回工具。
func writeErr(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
