package consultant

import (
	"context"
	"errors"
	"symposium-agent-backend/service/search"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSearchInterpretExtractsQuery(t *testing.T) {
	chatter := &stubChatter{replies: []string{
		`{"needs_api_call": true, "action": "web_search", "parameters": {"query": "2026年最新指南"}}`,
	}}
	s := webSearchWithStubs(chatter, &stubSearcher{}, searchPayload())

	interp := s.InterpretRequest(context.Background(), "最新的指南有什么变化", "")

	require.True(t, interp.NeedsAPICall)
	assert.Equal(t, ActionWebSearch, interp.Action)
	require.NotNil(t, interp.Search)
	assert.Equal(t, "2026年最新指南", interp.Search.Query)
}

func TestWebSearchInterpretRequiresNonEmptyQuery(t *testing.T) {
	chatter := &stubChatter{replies: []string{
		`{"needs_api_call": true, "action": "web_search", "parameters": {"query": ""}}`,
	}}
	s := webSearchWithStubs(chatter, &stubSearcher{}, searchPayload())

	interp := s.InterpretRequest(context.Background(), "搜一下", "")

	assert.False(t, interp.NeedsAPICall)
}

func TestWebSearchInterpretFailsOpenOnLLMError(t *testing.T) {
	chatter := &stubChatter{err: errors.New("timeout")}
	s := webSearchWithStubs(chatter, &stubSearcher{}, searchPayload())

	interp := s.InterpretRequest(context.Background(), "搜一下", "")

	assert.False(t, interp.NeedsAPICall)
}

func TestWebSearchExecute(t *testing.T) {
	searcher := &stubSearcher{
		result: &search.Result{Text: "检索到的内容", SourceModel: "sonar"},
	}
	s := webSearchWithStubs(&stubChatter{}, searcher, searchPayload())

	result, err := s.ExecuteAPICall(context.Background(), &Interpretation{
		NeedsAPICall: true,
		Action:       ActionWebSearch,
		Search:       &SearchParams{Query: "最新指南"},
	})

	require.NoError(t, err)
	assert.Equal(t, "检索到的内容", result.SearchText)
	assert.Equal(t, "sonar", result.SourceModel)
	assert.Equal(t, "最新指南", searcher.lastQuery)
}

func TestWebSearchExecuteWithoutConfig(t *testing.T) {
	s := webSearchWithStubs(&stubChatter{}, &stubSearcher{}, nil)

	_, err := s.ExecuteAPICall(context.Background(), &Interpretation{
		NeedsAPICall: true,
		Search:       &SearchParams{Query: "q"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no search api configuration found for consultant 42")
}

func TestWebSearchExecuteEmptyQuery(t *testing.T) {
	s := webSearchWithStubs(&stubChatter{}, &stubSearcher{}, searchPayload())

	_, err := s.ExecuteAPICall(context.Background(), &Interpretation{NeedsAPICall: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty search query")
}

func TestWebSearchExecutePropagatesError(t *testing.T) {
	searcher := &stubSearcher{err: errors.New("quota exceeded")}
	s := webSearchWithStubs(&stubChatter{}, searcher, searchPayload())

	_, err := s.ExecuteAPICall(context.Background(), &Interpretation{
		NeedsAPICall: true,
		Search:       &SearchParams{Query: "q"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestWebSearchFormatUsesLLM(t *testing.T) {
	chatter := &stubChatter{replies: []string{"整理后的回答（来源：联网搜索）"}}
	s := webSearchWithStubs(chatter, &stubSearcher{}, searchPayload())

	text := s.FormatResponse(context.Background(), "最新指南", nil, &ActionResult{
		SearchText: "原始搜索文本",
	}, "")

	assert.Equal(t, "整理后的回答（来源：联网搜索）", text)
}

func TestWebSearchFormatFallsBackToRawText(t *testing.T) {
	chatter := &stubChatter{err: errors.New("timeout")}
	s := webSearchWithStubs(chatter, &stubSearcher{}, searchPayload())

	text := s.FormatResponse(context.Background(), "最新指南", nil, &ActionResult{
		SearchText: "原始搜索文本",
	}, "")

	assert.Equal(t, searchAttributionPrefix+"原始搜索文本", text)
}
