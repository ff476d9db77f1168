package consultant

import (
	"context"
	"fmt"
	"log/slog"
	"symposium-agent-backend/model"
	"symposium-agent-backend/service/llm"
	"symposium-agent-backend/service/search"
)

// 搜索结果兜底输出的署名行
const searchAttributionPrefix = "以下内容来自联网搜索，未经整理：\n\n"

// WebSearchStrategy 联网搜索顾问：先由LLM判断是否需要搜索并抽取查询语句
type WebSearchStrategy struct {
	consultant   *model.Consultant
	llm          llm.Chatter
	configLoader ConfigLoader

	// newSearcher 依据配置构造搜索客户端，测试中可替换
	newSearcher func(payload *model.APIConfigPayload) search.Searcher

	searcher      search.Searcher
	configLoaded  bool
	configMissing bool
}

var _ Strategy = &WebSearchStrategy{}

func NewWebSearchStrategy(consultant *model.Consultant, chatter llm.Chatter, loader ConfigLoader) *WebSearchStrategy {
	return &WebSearchStrategy{
		consultant:   consultant,
		llm:          chatter,
		configLoader: loader,
		newSearcher: func(payload *model.APIConfigPayload) search.Searcher {
			return search.NewClient(payload.SearchAPIKey)
		},
	}
}

func (s *WebSearchStrategy) AdapterType() model.ConsultantType {
	return model.ConsultantTypeWebSearch
}

// InterpretRequest 一次LLM调用判断是否需要联网搜索，失败降级为不搜索
func (s *WebSearchStrategy) InterpretRequest(ctx context.Context, userMessage, conversationContext string) *Interpretation {
	noCall := &Interpretation{NeedsAPICall: false}

	prompt, err := renderPrompt(searchInterpretPrompt, struct {
		SystemPrompt string
		Context      string
		UserMessage  string
	}{
		SystemPrompt: s.consultant.SystemPrompt,
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
		Parameters *SearchParams `json:"parameters"`
	}
	if err := ExtractJSONObject(reply, &parsed); err != nil {
		slog.Warn("Failed to extract interpretation, falling back to no action",
			"consultant_id", s.consultant.ID, "err", err)
		return noCall
	}

	if !parsed.NeedsAPICall || parsed.Parameters == nil || parsed.Parameters.Query == "" {
		return noCall
	}

	return &Interpretation{
		NeedsAPICall: true,
		Action:       ActionWebSearch,
		Search:       parsed.Parameters,
	}
}

// ExecuteAPICall 向搜索补全接口提交查询，失败原样传播
func (s *WebSearchStrategy) ExecuteAPICall(ctx context.Context, interp *Interpretation) (*ActionResult, error) {
	if err := s.ensureSearcher(); err != nil {
		return nil, err
	}

	if interp == nil || interp.Search == nil || interp.Search.Query == "" {
		return nil, fmt.Errorf("empty search query for consultant %d", s.consultant.ID)
	}

	result, err := s.searcher.Search(ctx, interp.Search.Query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute web search: %w", err)
	}

	return &ActionResult{
		SearchText:  result.Text,
		SourceModel: result.SourceModel,
	}, nil
}

// FormatResponse 用LLM把搜索结果整理为标注来源的回答
// LLM失败时降级为带署名行的原始搜索文本
func (s *WebSearchStrategy) FormatResponse(ctx context.Context, userMessage string, interp *Interpretation, result *ActionResult, conversationContext string) string {
	searchText := ""
	if result != nil {
		searchText = result.SearchText
	}

	prompt, err := renderPrompt(searchFormatPrompt, struct {
		SystemPrompt string
		UserMessage  string
		SearchText   string
		Context      string
	}{
		SystemPrompt: s.consultant.SystemPrompt,
		UserMessage:  userMessage,
		SearchText:   searchText,
		Context:      conversationContext,
	})
	if err != nil {
		slog.Error("Failed to render format prompt", "consultant_id", s.consultant.ID, "err", err)
		return searchAttributionPrefix + searchText
	}

	reply, err := s.llm.Chat(ctx, s.consultant.Model, prompt)
	if err != nil {
		slog.Warn("Format call failed, falling back to raw search text",
			"consultant_id", s.consultant.ID, "err", err)
		return searchAttributionPrefix + searchText
	}
	return reply
}

func (s *WebSearchStrategy) ensureSearcher() error {
	if !s.configLoaded {
		s.configLoaded = true
		payload, err := s.configLoader.LoadAPIConfig(s.consultant.ID)
		if err != nil {
			return err
		}
		if payload == nil || payload.SearchAPIKey == "" {
			s.configMissing = true
		} else {
			s.searcher = s.newSearcher(payload)
		}
	}

	if s.configMissing {
		return fmt.Errorf("no search api configuration found for consultant %d", s.consultant.ID)
	}
	return nil
}
