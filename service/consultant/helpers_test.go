package consultant

import (
	"context"
	"errors"
	"symposium-agent-backend/model"
	"symposium-agent-backend/service/airtable"
	"symposium-agent-backend/service/audit"
	"symposium-agent-backend/service/search"
)

// stubChatter 按调用顺序返回预置回复，用calls统计LLM调用次数
type stubChatter struct {
	replies []string
	err     error
	calls   int
}

func (s *stubChatter) Chat(ctx context.Context, modelID, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) == 0 {
		return "", errors.New("no stub reply configured")
	}
	reply := s.replies[0]
	if len(s.replies) > 1 {
		s.replies = s.replies[1:]
	}
	return reply, nil
}

type stubConfigLoader struct {
	payload *model.APIConfigPayload
	err     error
}

func (s stubConfigLoader) LoadAPIConfig(consultantID uint) (*model.APIConfigPayload, error) {
	return s.payload, s.err
}

type stubTableClient struct {
	schema       *airtable.TableSchema
	schemaErr    error
	selectResult *airtable.SelectResult
	selectErr    error

	lastOptions airtable.SelectOptions
	selectCalls int
}

func (s *stubTableClient) Select(ctx context.Context, tableName string, opts airtable.SelectOptions) (*airtable.SelectResult, error) {
	s.selectCalls++
	s.lastOptions = opts
	return s.selectResult, s.selectErr
}

func (s *stubTableClient) TableSchema(ctx context.Context, tableName string) (*airtable.TableSchema, error) {
	return s.schema, s.schemaErr
}

type stubSearcher struct {
	result *search.Result
	err    error
	calls  int

	lastQuery string
}

func (s *stubSearcher) Search(ctx context.Context, query string) (*search.Result, error) {
	s.calls++
	s.lastQuery = query
	return s.result, s.err
}

// recordSink 记录投递的审计条目
type recordSink struct {
	entries []*audit.Entry
}

func (s *recordSink) Append(entry *audit.Entry) {
	s.entries = append(s.entries, entry)
}

func testConsultant(ct model.ConsultantType) *model.Consultant {
	return &model.Consultant{
		ID:             42,
		Name:           "测试顾问",
		Model:          "qwen-plus",
		SystemPrompt:   "你是一位专业顾问。",
		ConsultantType: ct,
	}
}

func tabularWithStubs(chatter *stubChatter, table *stubTableClient, payload *model.APIConfigPayload) *TabularStrategy {
	s := NewTabularStrategy(testConsultant(model.ConsultantTypeTabular), chatter, stubConfigLoader{payload: payload})
	s.newTableClient = func(p *model.APIConfigPayload) TableClient {
		return table
	}
	return s
}

func webSearchWithStubs(chatter *stubChatter, searcher *stubSearcher, payload *model.APIConfigPayload) *WebSearchStrategy {
	s := NewWebSearchStrategy(testConsultant(model.ConsultantTypeWebSearch), chatter, stubConfigLoader{payload: payload})
	s.newSearcher = func(p *model.APIConfigPayload) search.Searcher {
		return searcher
	}
	return s
}

func tablePayload() *model.APIConfigPayload {
	return &model.APIConfigPayload{
		BaseID:    "appTest",
		APIKey:    "key",
		TableName: "Doctors",
	}
}

func searchPayload() *model.APIConfigPayload {
	return &model.APIConfigPayload{SearchAPIKey: "pplx-key"}
}
