package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"symposium-agent-backend/config"
	"symposium-agent-backend/utils"
	"time"
)

const (
	defaultBaseURL = "https://api.perplexity.ai"
	defaultModel   = "sonar"

	// 搜索补全使用固定采样参数
	temperature = 0.2
	maxTokens   = 4000
)

// 搜索接口响应较慢，超时放宽到 120s
var searchHTTPClient *http.Client = utils.NewHTTPClient(
	utils.WithTimeout(120 * time.Second),
)

// Searcher 联网搜索补全网关
type Searcher interface {
	Search(ctx context.Context, query string) (*Result, error)
}

type Result struct {
	Text        string `json:"text"`
	SourceModel string `json:"source_model"`
	Usage       Usage  `json:"usage"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Client 搜索补全REST客户端（chat-completions风格接口）
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

var _ Searcher = &Client{}

type ClientOption func(*Client)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient 构造搜索客户端
// 端点与模型优先取配置文件的search段，未配置时用内置默认值；
// apiKey为空时回落到配置的实例级密钥
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: searchHTTPClient,
	}

	if c.apiKey == "" {
		c.apiKey = config.Cfg.Search.APIKey
	}
	if config.Cfg.Search.BaseURL != "" {
		c.baseURL = config.Cfg.Search.BaseURL
	}
	if config.Cfg.Search.Model != "" {
		c.model = config.Cfg.Search.Model
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

type completionRequest struct {
	Model       string              `json:"model"`
	Messages    []completionMessage `json:"messages"`
	Temperature float64             `json:"temperature"`
	MaxTokens   int                 `json:"max_tokens"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message *completionMessage `json:"message"`
	} `json:"choices"`
	Usage Usage `json:"usage"`
}

func (c *Client) Search(ctx context.Context, query string) (*Result, error) {
	payload, err := json.Marshal(completionRequest{
		Model: c.model,
		Messages: []completionMessage{
			{Role: "user", Content: query},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %v", err)
	}

	endpoint := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("search service error (status %d): %s", resp.StatusCode, string(body))
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, fmt.Errorf("failed to parse response: %v", err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message == nil {
		return nil, fmt.Errorf("malformed search response: missing message")
	}

	return &Result{
		Text:        completion.Choices[0].Message.Content,
		SourceModel: completion.Model,
		Usage:       completion.Usage,
	}, nil
}
