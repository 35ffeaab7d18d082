package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// 默认接入点与模型名，可在构造时覆盖。
const (
	DefaultBaseURL    = "https://generativelanguage.googleapis.com/v1beta"
	DefaultImageModel = "imagen-4.0-generate-001"
	DefaultVideoModel = "veo-2.0-generate-001"
)

// httpOperationAPI 实现 OperationAPI，对接 Gemini 风格的 REST 接口。
type httpOperationAPI struct {
	hc         *http.Client
	base       string
	key        string
	imageModel string
	videoModel string
}

// NewHTTPOperationAPI 构造 HTTP 实现。
// 参数：base 形如 https://generativelanguage.googleapis.com/v1beta（不带末尾斜杠），
// key 为 API Key；imageModel/videoModel 留空使用默认模型。
func NewHTTPOperationAPI(base, key, imageModel, videoModel string) OperationAPI {
	if imageModel == "" {
		imageModel = DefaultImageModel
	}
	if videoModel == "" {
		videoModel = DefaultVideoModel
	}
	return &httpOperationAPI{
		hc:         &http.Client{Timeout: 30 * time.Second},
		base:       base,
		key:        key,
		imageModel: imageModel,
		videoModel: videoModel,
	}
}

// GenerateImages 同步生成 n 张图片，返回 data URL 形式的产物。
func (h *httpOperationAPI) GenerateImages(ctx context.Context, prompt string, n int) ([]GeneratedImage, error) {
	if n <= 0 {
		n = 1
	}
	var req imagePredictReq
	req.Instances = append(req.Instances, struct {
		Prompt string `json:"prompt"`
	}{Prompt: prompt})
	req.Parameters.SampleCount = n
	req.Parameters.OutputMimeType = "image/jpeg"

	u := fmt.Sprintf("%s/models/%s:predict?key=%s", h.base, h.imageModel, h.key)
	var resp imagePredictResp
	if err := h.post(ctx, u, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Predictions) == 0 {
		return nil, fmt.Errorf("generate images: empty predictions")
	}
	out := make([]GeneratedImage, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		mime := p.MimeType
		if mime == "" {
			mime = "image/jpeg"
		}
		out = append(out, GeneratedImage{
			ID:     uuid.NewString(),
			URL:    fmt.Sprintf("data:%s;base64,%s", mime, p.BytesBase64Encoded),
			Prompt: prompt,
		})
	}
	return out, nil
}

// SubmitVideo 提交视频长任务，返回含原始句柄的操作视图。
func (h *httpOperationAPI) SubmitVideo(ctx context.Context, prompt string) (Operation, error) {
	body := map[string]any{
		"instances": []map[string]any{{"prompt": prompt}},
	}
	u := fmt.Sprintf("%s/models/%s:predictLongRunning?key=%s", h.base, h.videoModel, h.key)
	raw, err := h.postRaw(ctx, u, body)
	if err != nil {
		return Operation{}, err
	}
	op, err := h.decodeOperation(raw)
	if err != nil {
		return Operation{}, err
	}
	if op.Name == "" {
		return Operation{}, fmt.Errorf("submit video: operation name missing")
	}
	return op, nil
}

// PollVideo 按句柄查询一次操作状态，返回刷新后的视图。
func (h *httpOperationAPI) PollVideo(ctx context.Context, raw json.RawMessage) (Operation, error) {
	var prev operationPayload
	if err := json.Unmarshal(raw, &prev); err != nil {
		return Operation{}, fmt.Errorf("poll video: bad handle: %w", err)
	}
	if prev.Name == "" {
		return Operation{}, fmt.Errorf("poll video: operation name missing in handle")
	}
	u := fmt.Sprintf("%s/%s?key=%s", h.base, prev.Name, h.key)
	fresh, err := h.getRaw(ctx, u)
	if err != nil {
		return Operation{}, err
	}
	return h.decodeOperation(fresh)
}

// decodeOperation 解码操作对象并补全下载地址（上游要求附加 key 参数）。
func (h *httpOperationAPI) decodeOperation(raw []byte) (Operation, error) {
	var p operationPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Operation{}, fmt.Errorf("decode operation: %w", err)
	}
	op := Operation{Name: p.Name, Done: p.Done, Raw: raw}
	if p.Response != nil {
		for _, v := range p.Response.GeneratedVideos {
			if v.Video.URI == "" {
				continue
			}
			op.VideoURIs = append(op.VideoURIs, v.Video.URI+"&key="+h.key)
		}
	}
	return op, nil
}

// getRaw 执行 GET 请求并返回原始响应体。
func (h *httpOperationAPI) getRaw(ctx context.Context, url string) ([]byte, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	res, err := h.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	b, _ := io.ReadAll(res.Body)
	if res.StatusCode/100 != 2 {
		return nil, fmt.Errorf("GET %s => %d: %s", url, res.StatusCode, string(b))
	}
	return b, nil
}

// postRaw 执行 POST 请求并返回原始响应体。
func (h *httpOperationAPI) postRaw(ctx context.Context, u string, body any) ([]byte, error) {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	res, err := h.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	rb, _ := io.ReadAll(res.Body)
	if res.StatusCode/100 != 2 {
		return nil, fmt.Errorf("POST %s => %d: %s", u, res.StatusCode, string(rb))
	}
	return rb, nil
}

// post 执行 POST 请求并解码 JSON。
func (h *httpOperationAPI) post(ctx context.Context, u string, body any, out any) error {
	rb, err := h.postRaw(ctx, u, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(rb, out)
}
