package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config/config.yaml"

// Cfg 全局配置，启动时加载
var Cfg *Config

type Config struct {
	Server ServerConfig `yaml:"server"`
	MySQL  MySQLConfig  `yaml:"mysql"`
	JWT    JWTConfig    `yaml:"jwt"`
	Model  ModelConfig  `yaml:"model"`
	Search SearchConfig `yaml:"search"`
	MQ     MQConfig     `yaml:"mq"`
	OSS    OSSConfig    `yaml:"oss"`
	Milvus MilvusConfig `yaml:"milvus"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type JWTConfig struct {
	SecretKey string `yaml:"secret_key"`
}

// ModelConfig 文本生成模型服务（OpenAI兼容接口）
type ModelConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`

	// 解析用户意图使用的默认模型
	InterpreterModel string `yaml:"interpreter_model"`

	// 向量化模型
	EmbeddingModel string `yaml:"embedding_model"`
}

// SearchConfig 联网搜索服务
type SearchConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

type MQConfig struct {
	NameServer []string `yaml:"name_server"`
}

type OSSConfig struct {
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket_name"`
	AccessKeyID     string `yaml:"access_key_id"`
	AccessKeySecret string `yaml:"access_key_secret"`
}

type MilvusConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
}

func init() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := Load(path)
	if err != nil {
		// 允许在无配置文件的环境（如本地工具、测试）下加载包
		slog.Warn("Config file not loaded, using empty config", "path", path, "err", err)
		Cfg = &Config{}
		return
	}
	Cfg = cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %v", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %v", path, err)
	}

	return &cfg, nil
}
