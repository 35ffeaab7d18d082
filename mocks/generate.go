package mocks

// 接口变更后执行 go generate ./mocks 重新生成测试桩。

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=operationapi_mock.go github.com/mengeric/genmedia-server-go/provider OperationAPI
