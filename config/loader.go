package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load 从 YAML 文件加载配置。
func Load(file string) (Config, error) {
	var c Config
	b, err := os.ReadFile(file)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, err
	}
	return c, nil
}

// MustLoad 从 YAML 文件加载配置（失败 panic）。
func MustLoad(file string) Config {
	c, err := Load(file)
	if err != nil {
		panic(err)
	}
	return c
}

// LoadAPIKey 加载外部生成服务的 API Key。
// 功能：优先读取 .env（若存在），再取环境变量 API_KEY；
// 返回空串表示未配置，引擎据此在启动时一次性决定走模拟路径。
func LoadAPIKey() string {
	_ = godotenv.Load()
	return os.Getenv("API_KEY")
}
