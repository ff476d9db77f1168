package airtable

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"symposium-agent-backend/utils"
)

const (
	defaultBaseURL = "https://api.airtable.com/v0"

	// 查询返回记录数的默认值，调用方未指定时生效
	defaultMaxRecords = 20
)

// Client 表格数据服务的只读REST客户端
type Client struct {
	apiKey     string
	baseID     string
	baseURL    string
	httpClient *http.Client
}

type ClientOption func(*Client)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(apiKey, baseID string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseID:     baseID,
		baseURL:    defaultBaseURL,
		httpClient: utils.DefaultHTTPClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type SortSpec struct {
	Field     string `json:"field"`
	Direction string `json:"direction,omitempty"`
}

type SelectOptions struct {
	FilterFormula string     `json:"filter_formula,omitempty"`
	Fields        []string   `json:"fields,omitempty"`
	Sort          []SortSpec `json:"sort,omitempty"`
	MaxRecords    int        `json:"max_records,omitempty"`
}

type Record struct {
	ID          string         `json:"id"`
	CreatedTime string         `json:"createdTime"`
	Fields      map[string]any `json:"fields"`
}

type SelectResult struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

type FieldSchema struct {
	Name    string         `json:"name"`
	Type    string         `json:"type"`
	Options map[string]any `json:"options,omitempty"`
}

type TableSchema struct {
	Name   string        `json:"name"`
	Fields []FieldSchema `json:"fields"`
}

type remoteError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Select 按公式/字段/排序/数量上限查询记录
// 记录数上限的[1,20]约束在意图解析阶段统一执行，这里只补默认值
func (c *Client) Select(ctx context.Context, tableName string, opts SelectOptions) (*SelectResult, error) {
	query := url.Values{}
	if opts.FilterFormula != "" {
		query.Set("filterByFormula", opts.FilterFormula)
	}
	for _, field := range opts.Fields {
		query.Add("fields[]", field)
	}
	for i, sort := range opts.Sort {
		query.Set(fmt.Sprintf("sort[%d][field]", i), sort.Field)
		if sort.Direction != "" {
			query.Set(fmt.Sprintf("sort[%d][direction]", i), sort.Direction)
		}
	}

	maxRecords := opts.MaxRecords
	if maxRecords <= 0 {
		maxRecords = defaultMaxRecords
	}
	query.Set("maxRecords", strconv.Itoa(maxRecords))

	endpoint := fmt.Sprintf("%s/%s/%s?%s",
		c.baseURL, c.baseID, url.PathEscape(tableName), query.Encode())

	var result SelectResult
	if err := c.doGet(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TableSchema 拉取base的表结构，目标表不存在时报错
func (c *Client) TableSchema(ctx context.Context, tableName string) (*TableSchema, error) {
	endpoint := fmt.Sprintf("%s/meta/bases/%s/tables", c.baseURL, c.baseID)

	var result struct {
		Tables []TableSchema `json:"tables"`
	}
	if err := c.doGet(ctx, endpoint, &result); err != nil {
		return nil, err
	}

	for i := range result.Tables {
		if result.Tables[i].Name == tableName {
			return &result.Tables[i], nil
		}
	}
	return nil, fmt.Errorf("table %s not found in base %s", tableName, c.baseID)
}

func (c *Client) doGet(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var remoteErr remoteError
		if err := json.Unmarshal(body, &remoteErr); err == nil && remoteErr.Error.Message != "" {
			return fmt.Errorf("table service error (status %d): %s", resp.StatusCode, remoteErr.Error.Message)
		}
		return fmt.Errorf("table service error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %v", err)
	}
	return nil
}
