package llm

import (
	"context"
	"fmt"
	"net/http"
	"symposium-agent-backend/config"
	"symposium-agent-backend/utils"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// 配置 300s 超时时间处理长文本生成
var llmHTTPClient *http.Client = utils.NewHTTPClient(
	utils.WithTimeout(300 * time.Second),
)

// Chatter 文本补全网关：给定模型标识和提示词，返回生成文本
// 整轮对话折叠为一条system提示词，不使用多轮消息数组
type Chatter interface {
	Chat(ctx context.Context, modelID, prompt string) (string, error)
}

// Client 基于OpenAI兼容接口的文本补全客户端
type Client struct {
	apiKey  string
	baseURL string
}

var _ Chatter = &Client{}

func NewClient() *Client {
	return &Client{
		apiKey:  config.Cfg.Model.APIKey,
		baseURL: config.Cfg.Model.BaseURL,
	}
}

// resolveModel 顾问未指定模型时回落到配置的默认解析模型
func resolveModel(modelID string) string {
	if modelID != "" {
		return modelID
	}
	return config.Cfg.Model.InterpreterModel
}

func (c *Client) Chat(ctx context.Context, modelID, prompt string) (string, error) {
	model, err := openai.New(
		openai.WithModel(resolveModel(modelID)),
		openai.WithToken(c.apiKey),
		openai.WithBaseURL(c.baseURL),
		openai.WithHTTPClient(llmHTTPClient),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create llm client: %v", err)
	}

	resp, err := llms.GenerateFromSinglePrompt(ctx, model, prompt)
	if err != nil {
		return "", fmt.Errorf("llm call error: %w", err)
	}
	return resp, nil
}
