package consultant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"symposium-agent-backend/model"
	"symposium-agent-backend/service/airtable"
	"symposium-agent-backend/service/llm"
)

const (
	minTableRecords = 1
	maxTableRecords = 20
)

// 命中即把记录数上限强制为20的计数类关键词，不区分大小写
var countingKeywords = []string{
	"how many",
	"count",
	"total number",
	"number of",
	"多少",
	"总数",
	"几条",
	"数量",
}

// TableClient 表格数据服务的查询接口
type TableClient interface {
	Select(ctx context.Context, tableName string, opts airtable.SelectOptions) (*airtable.SelectResult, error)
	TableSchema(ctx context.Context, tableName string) (*airtable.TableSchema, error)
}

// TabularStrategy 表格数据顾问：先由LLM解析查询意图，再查询外部数据表
//
// APIConfig 在首次用到时懒加载，缓存仅在本策略实例（即本轮对话）内有效
type TabularStrategy struct {
	consultant   *model.Consultant
	llm          llm.Chatter
	configLoader ConfigLoader

	// newTableClient 依据配置构造查询客户端，测试中可替换
	newTableClient func(payload *model.APIConfigPayload) TableClient

	client        TableClient
	tableName     string
	configLoaded  bool
	configMissing bool
}

var _ Strategy = &TabularStrategy{}

func NewTabularStrategy(consultant *model.Consultant, chatter llm.Chatter, loader ConfigLoader) *TabularStrategy {
	return &TabularStrategy{
		consultant:   consultant,
		llm:          chatter,
		configLoader: loader,
		newTableClient: func(payload *model.APIConfigPayload) TableClient {
			return airtable.NewClient(payload.APIKey, payload.BaseID)
		},
	}
}

func (s *TabularStrategy) AdapterType() model.ConsultantType {
	return model.ConsultantTypeTabular
}

// InterpretRequest 通过一次LLM调用判断是否需要查表并抽取查询参数
// 任何上游异常（LLM失败、输出里找不到JSON）都降级为不查表，对话继续
func (s *TabularStrategy) InterpretRequest(ctx context.Context, userMessage, conversationContext string) *Interpretation {
	noCall := &Interpretation{NeedsAPICall: false}

	prompt, err := renderPrompt(tabularInterpretPrompt, struct {
		SystemPrompt string
		Schema       string
		Context      string
		UserMessage  string
	}{
		SystemPrompt: s.consultant.SystemPrompt,
		Schema:       s.describeSchema(ctx),
		Context:      conversationContext,
		UserMessage:  userMessage,
	})
	if err != nil {
		slog.Error("Failed to render interpret prompt", "consultant_id", s.consultant.ID, "err", err)
		return noCall
	}

	reply, err := s.llm.Chat(ctx, s.consultant.Model, prompt)
	if err != nil {
		slog.Warn("Interpret call failed, falling back to no action",
			"consultant_id", s.consultant.ID, "err", err)
		return noCall
	}

	var parsed struct {
		interpretEnvelope
		Parameters *TableQueryParams `json:"parameters"`
	}
	if err := ExtractJSONObject(reply, &parsed); err != nil {
		slog.Warn("Failed to extract interpretation, falling back to no action",
			"consultant_id", s.consultant.ID, "err", err)
		return noCall
	}

	if !parsed.NeedsAPICall {
		return noCall
	}

	params := parsed.Parameters
	if params == nil {
		params = &TableQueryParams{}
	}
	params.MaxRecords = clampMaxRecords(params.MaxRecords, userMessage)

	return &Interpretation{
		NeedsAPICall: true,
		Action:       ActionQueryTable,
		TableQuery:   params,
	}
}

// ExecuteAPICall 执行表格查询，失败原样传播
// 发起查询前先拉取表结构并校验字段引用，防止错误公式换来空结果
func (s *TabularStrategy) ExecuteAPICall(ctx context.Context, interp *Interpretation) (*ActionResult, error) {
	if err := s.ensureClient(); err != nil {
		return nil, err
	}

	params := &TableQueryParams{}
	if interp != nil && interp.TableQuery != nil {
		params = interp.TableQuery
	}

	schema, err := s.client.TableSchema(ctx, s.tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch table schema: %w", err)
	}

	// 现成公式里的 {Field} 引用一并纳入校验，错误公式不允许到达上游
	fieldRefs := append([]string{}, params.Fields...)
	fieldRefs = append(fieldRefs, airtable.FormulaFields(params.FilterFormula)...)
	if err := airtable.ValidateQueryFields(schema, fieldRefs, params.Sort, params.Conditions); err != nil {
		return nil, err
	}

	formula := params.FilterFormula
	if len(params.Conditions) > 0 {
		formula, err = airtable.BuildFilterFormula(params.Conditions)
		if err != nil {
			return nil, fmt.Errorf("failed to build filter formula: %w", err)
		}
	}

	result, err := s.client.Select(ctx, s.tableName, airtable.SelectOptions{
		FilterFormula: formula,
		Fields:        params.Fields,
		Sort:          params.Sort,
		MaxRecords:    params.MaxRecords,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query table: %w", err)
	}

	return &ActionResult{
		Records:     result.Records,
		RecordCount: len(result.Records),
		TableSchema: schema,
	}, nil
}

// FormatResponse 用LLM把查询结果组织为回答
// LLM失败时降级为逐条字段转储，绝不丢失已取回的数据
func (s *TabularStrategy) FormatResponse(ctx context.Context, userMessage string, interp *Interpretation, result *ActionResult, conversationContext string) string {
	var records []airtable.Record
	var schemaText string
	recordCount := 0
	if result != nil {
		records = result.Records
		recordCount = result.RecordCount
		if result.TableSchema != nil {
			schemaText = formatSchema(result.TableSchema)
		}
	}

	recordsJSON, err := json.Marshal(records)
	if err != nil {
		slog.Error("Failed to marshal records", "consultant_id", s.consultant.ID, "err", err)
		return dumpRecords(records)
	}

	prompt, err := renderPrompt(tabularFormatPrompt, struct {
		SystemPrompt string
		UserMessage  string
		Schema       string
		RecordCount  int
		Records      string
		Context      string
	}{
		SystemPrompt: s.consultant.SystemPrompt,
		UserMessage:  userMessage,
		Schema:       schemaText,
		RecordCount:  recordCount,
		Records:      string(recordsJSON),
		Context:      conversationContext,
	})
	if err != nil {
		slog.Error("Failed to render format prompt", "consultant_id", s.consultant.ID, "err", err)
		return dumpRecords(records)
	}

	reply, err := s.llm.Chat(ctx, s.consultant.Model, prompt)
	if err != nil {
		slog.Warn("Format call failed, falling back to record dump",
			"consultant_id", s.consultant.ID, "err", err)
		return dumpRecords(records)
	}
	return reply
}

// ensureClient 懒加载APIConfig并构造查询客户端
func (s *TabularStrategy) ensureClient() error {
	if !s.configLoaded {
		s.configLoaded = true
		payload, err := s.configLoader.LoadAPIConfig(s.consultant.ID)
		if err != nil {
			return err
		}
		if payload == nil || payload.TableName == "" {
			s.configMissing = true
		} else {
			s.client = s.newTableClient(payload)
			s.tableName = payload.TableName
		}
	}

	if s.configMissing {
		return fmt.Errorf("no table api configuration found for consultant %d", s.consultant.ID)
	}
	return nil
}

// describeSchema 为意图解析提示词准备表结构描述，拿不到时返回占位说明
func (s *TabularStrategy) describeSchema(ctx context.Context) string {
	if err := s.ensureClient(); err != nil {
		return "（表结构不可用）"
	}

	schema, err := s.client.TableSchema(ctx, s.tableName)
	if err != nil {
		slog.Warn("Failed to fetch schema for interpretation",
			"consultant_id", s.consultant.ID, "err", err)
		return "（表结构不可用）"
	}
	return formatSchema(schema)
}

func formatSchema(schema *airtable.TableSchema) string {
	var b strings.Builder
	fmt.Fprintf(&b, "表名：%s\n字段：", schema.Name)
	for i, f := range schema.Fields {
		if i > 0 {
			b.WriteString("、")
		}
		fmt.Fprintf(&b, "%s（%s）", f.Name, f.Type)
	}
	return b.String()
}

// clampMaxRecords 记录数上限的唯一收口点：限制在[1,20]，计数类问题强制20
func clampMaxRecords(proposed int, userMessage string) int {
	if isCountingQuery(userMessage) {
		return maxTableRecords
	}
	if proposed <= 0 {
		return maxTableRecords
	}
	if proposed < minTableRecords {
		return minTableRecords
	}
	if proposed > maxTableRecords {
		return maxTableRecords
	}
	return proposed
}

func isCountingQuery(userMessage string) bool {
	lower := strings.ToLower(userMessage)
	for _, keyword := range countingKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// dumpRecords 确定性的兜底渲染：逐条输出记录的全部字段，字段名排序
func dumpRecords(records []airtable.Record) string {
	if len(records) == 0 {
		return "未查询到任何记录。"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "共查询到 %d 条记录：\n", len(records))
	for i, record := range records {
		fmt.Fprintf(&b, "\n第%d条记录\n", i+1)

		names := make([]string, 0, len(record.Fields))
		for name := range record.Fields {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			fmt.Fprintf(&b, "%s: %v\n", name, record.Fields[name])
		}
	}
	return b.String()
}
