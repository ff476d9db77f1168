package consultant

import (
	"context"
	"symposium-agent-backend/model"
	"symposium-agent-backend/service/airtable"
)

// ActionWebSearch / ActionQueryTable 意图解析产出的外部动作名
const (
	ActionQueryTable = "query_table"
	ActionWebSearch  = "web_search"
)

// TableQueryParams 表格查询动作的参数
// 意图解析产出结构化的 Conditions，执行前翻译为过滤公式；
// FilterFormula 兼容直接给出现成公式的调用方，两者同时给出时以 Conditions 为准
type TableQueryParams struct {
	Conditions    []airtable.Condition `json:"conditions,omitempty"`
	FilterFormula string               `json:"filter_formula,omitempty"`
	Fields        []string             `json:"fields,omitempty"`
	MaxRecords    int                  `json:"max_records,omitempty"`
	Sort          []airtable.SortSpec  `json:"sort,omitempty"`
}

// SearchParams 联网搜索动作的参数
type SearchParams struct {
	Query string `json:"query"`
}

// Interpretation 意图解析结果
// NeedsAPICall 为 false 时流水线跳过外部调用，直接进入格式化
type Interpretation struct {
	NeedsAPICall bool              `json:"needs_api_call"`
	Action       string            `json:"action,omitempty"`
	TableQuery   *TableQueryParams `json:"table_query,omitempty"`
	Search       *SearchParams     `json:"search,omitempty"`
}

// ActionResult 外部调用结果
type ActionResult struct {
	Records     []airtable.Record      `json:"records,omitempty"`
	RecordCount int                    `json:"record_count,omitempty"`
	TableSchema *airtable.TableSchema  `json:"table_schema,omitempty"`

	SearchText  string `json:"search_text,omitempty"`
	SourceModel string `json:"source_model,omitempty"`
}

// Strategy 顾问行为策略，每轮对话由工厂解析出一个实例
//
// 契约：InterpretRequest 和 FormatResponse 在上游异常时内部降级，
// 永不向调用方抛错；ExecuteAPICall 的失败原样向上传播，
// 用户（或意图解析）明确要求的动作不允许被静默跳过。
type Strategy interface {
	// AdapterType 审计日志使用的适配器类型标签
	AdapterType() model.ConsultantType

	InterpretRequest(ctx context.Context, userMessage, conversationContext string) *Interpretation

	ExecuteAPICall(ctx context.Context, interp *Interpretation) (*ActionResult, error)

	FormatResponse(ctx context.Context, userMessage string, interp *Interpretation, result *ActionResult, conversationContext string) string
}
