package consultant

import (
	"context"
	"encoding/json"
	"errors"
	"symposium-agent-backend/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedStrategy 流水线测试用的可编程策略
type scriptedStrategy struct {
	interp     *Interpretation
	result     *ActionResult
	executeErr error
	reply      string

	executeCalls int
	formatCalls  int
}

func (s *scriptedStrategy) AdapterType() model.ConsultantType {
	return model.ConsultantTypeTabular
}

func (s *scriptedStrategy) InterpretRequest(ctx context.Context, userMessage, conversationContext string) *Interpretation {
	return s.interp
}

func (s *scriptedStrategy) ExecuteAPICall(ctx context.Context, interp *Interpretation) (*ActionResult, error) {
	s.executeCalls++
	return s.result, s.executeErr
}

func (s *scriptedStrategy) FormatResponse(ctx context.Context, userMessage string, interp *Interpretation, result *ActionResult, conversationContext string) string {
	s.formatCalls++
	return s.reply
}

func TestPipelineSuccessWritesOneAuditEntry(t *testing.T) {
	strategy := &scriptedStrategy{
		interp: &Interpretation{NeedsAPICall: true, Action: ActionQueryTable},
		result: &ActionResult{RecordCount: 3},
		reply:  "查询到3条记录。",
	}
	sink := &recordSink{}
	p := NewPipeline(testConsultant(model.ConsultantTypeTabular), strategy, sink)

	text, err := p.Process(context.Background(), "查一下", "")

	require.NoError(t, err)
	assert.Equal(t, "查询到3条记录。", text)
	require.Len(t, sink.entries, 1)

	entry := sink.entries[0]
	assert.Equal(t, uint(42), entry.ConsultantID)
	assert.Equal(t, "tabular", entry.AdapterType)
	assert.True(t, entry.Success)
	assert.Empty(t, entry.ErrorMessage)

	var request auditRequest
	require.NoError(t, json.Unmarshal(entry.Request, &request))
	assert.Equal(t, "查一下", request.UserMessage)
	require.NotNil(t, request.Interpretation)
	assert.True(t, request.Interpretation.NeedsAPICall)

	var response auditResponse
	require.NoError(t, json.Unmarshal(entry.Response, &response))
	assert.Equal(t, "查询到3条记录。", response.Text)
	assert.Equal(t, 3, response.ActionResult.RecordCount)
}

func TestPipelineExecuteFailureAuditsAndRethrows(t *testing.T) {
	execErr := errors.New("upstream table unavailable")
	strategy := &scriptedStrategy{
		interp:     &Interpretation{NeedsAPICall: true, Action: ActionQueryTable},
		executeErr: execErr,
	}
	sink := &recordSink{}
	p := NewPipeline(testConsultant(model.ConsultantTypeTabular), strategy, sink)

	text, err := p.Process(context.Background(), "查一下", "")

	require.ErrorIs(t, err, execErr)
	assert.Empty(t, text)
	assert.Equal(t, 0, strategy.formatCalls)

	require.Len(t, sink.entries, 1)
	entry := sink.entries[0]
	assert.False(t, entry.Success)
	assert.Equal(t, execErr.Error(), entry.ErrorMessage)
	assert.Empty(t, entry.Response)
}

func TestPipelineSkipsExecuteWhenNoCallNeeded(t *testing.T) {
	strategy := &scriptedStrategy{
		interp: &Interpretation{NeedsAPICall: false},
		reply:  "直接回答。",
	}
	sink := &recordSink{}
	p := NewPipeline(testConsultant(model.ConsultantTypePureLLM), strategy, sink)

	text, err := p.Process(context.Background(), "你好", "")

	require.NoError(t, err)
	assert.Equal(t, "直接回答。", text)
	assert.Equal(t, 0, strategy.executeCalls)
	assert.Equal(t, 1, strategy.formatCalls)
	require.Len(t, sink.entries, 1)
	assert.True(t, sink.entries[0].Success)
}
