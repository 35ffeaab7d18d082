package genmedia

import (
	"encoding/json"

	"github.com/mengeric/genmedia-server-go/provider"
)

// opWithRaw 构造一个带原始句柄的操作视图，name 为空时返回零值。
func opWithRaw(name string) provider.Operation {
	if name == "" {
		return provider.Operation{}
	}
	raw := json.RawMessage(`{"name":"` + name + `","done":false}`)
	return provider.Operation{Name: name, Raw: raw}
}
