package config

// Config 引擎运行所需的完整配置（可选）。
// 功能：承载 HTTP 监听、外部生成服务与后台任务周期相关配置。
// 注意：API Key 不写入 YAML，统一经 .env / 环境变量加载（见 LoadAPIKey）。
type Config struct {
	Host string `yaml:"host"` // 服务监听地址，例如 0.0.0.0
	Port int    `yaml:"port"` // 服务监听端口，例如 3001

	Provider struct {
		BaseURL    string `yaml:"baseUrl"`    // 生成服务根地址，例如 https://generativelanguage.googleapis.com/v1beta
		ImageModel string `yaml:"imageModel"` // 图片模型名，例如 imagen-4.0-generate-001
		VideoModel string `yaml:"videoModel"` // 视频模型名，例如 veo-2.0-generate-001
	} `yaml:"provider"`

	Mysql struct {
		DataSource string `yaml:"dataSource"` // 形如 user:pass@tcp(127.0.0.1:3306)/db?charset=utf8mb4&parseTime=true&loc=Local
	} `yaml:"mysql"`

	SimulatedSeconds int `yaml:"simulatedSeconds"` // 模拟任务总时长（秒）
	PollSeconds      int `yaml:"pollSeconds"`      // 客户端轮询周期（秒）
	SweepSeconds     int `yaml:"sweepSeconds"`     // 终态任务清理周期（秒）
	StatsSeconds     int `yaml:"statsSeconds"`     // 运行统计上报周期（秒）
	RetentionMinutes int `yaml:"retentionMinutes"` // 终态任务保留时长（分钟）
}
