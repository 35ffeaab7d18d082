package provider

import "encoding/json"

// 以下类型是外部生成服务的客户端视图，字段与上游 REST 文档对齐或等价。

// GeneratedImage 一次图片生成的产物。
type GeneratedImage struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Prompt string `json:"prompt"`
}

// Operation 外部长任务操作的客户端视图。
// Raw 为上游返回的原始操作对象，由任务记录持有，每次轮询后原位刷新；
// 客户端侧不解释其内部结构，仅透传给下一次轮询。
type Operation struct {
	Name      string
	Done      bool
	VideoURIs []string
	Raw       json.RawMessage
}

// FirstVideoURI 返回第一个可用的视频下载地址。
func (o Operation) FirstVideoURI() (string, bool) {
	if len(o.VideoURIs) == 0 || o.VideoURIs[0] == "" {
		return "", false
	}
	return o.VideoURIs[0], true
}

// operationPayload 上游操作对象的线格式（仅解码用到的字段）。
type operationPayload struct {
	Name     string `json:"name"`
	Done     bool   `json:"done"`
	Response *struct {
		GeneratedVideos []struct {
			Video struct {
				URI string `json:"uri"`
			} `json:"video"`
		} `json:"generatedVideos"`
	} `json:"response"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// imagePredictReq / imagePredictResp 图片生成的请求与响应线格式。
type imagePredictReq struct {
	Instances []struct {
		Prompt string `json:"prompt"`
	} `json:"instances"`
	Parameters struct {
		SampleCount    int    `json:"sampleCount"`
		OutputMimeType string `json:"outputMimeType"`
	} `json:"parameters"`
}

type imagePredictResp struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType"`
	} `json:"predictions"`
}
