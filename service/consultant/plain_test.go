package consultant

import (
	"context"
	"errors"
	"symposium-agent-backend/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainInterpretNeverCallsLLM(t *testing.T) {
	chatter := &stubChatter{replies: []string{"不该被调用"}}
	s := NewPlainStrategy(testConsultant(model.ConsultantTypePureLLM), chatter)

	interp := s.InterpretRequest(context.Background(), "你好", "")

	assert.False(t, interp.NeedsAPICall)
	assert.Equal(t, 0, chatter.calls)
}

func TestPlainExecuteIsNoop(t *testing.T) {
	s := NewPlainStrategy(testConsultant(model.ConsultantTypePureLLM), &stubChatter{})

	result, err := s.ExecuteAPICall(context.Background(), &Interpretation{})

	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestPlainFormatUsesSingleLLMCall(t *testing.T) {
	chatter := &stubChatter{replies: []string{"以下是我的建议。"}}
	s := NewPlainStrategy(testConsultant(model.ConsultantTypePureLLM), chatter)

	text := s.FormatResponse(context.Background(), "给我一些建议", nil, nil, "")

	assert.Equal(t, "以下是我的建议。", text)
	assert.Equal(t, 1, chatter.calls)
}

func TestPlainFormatFallsBackToApology(t *testing.T) {
	chatter := &stubChatter{err: errors.New("upstream timeout")}
	s := NewPlainStrategy(testConsultant(model.ConsultantTypePureLLM), chatter)

	text := s.FormatResponse(context.Background(), "给我一些建议", nil, nil, "")

	assert.Equal(t, apologyReply, text)
}
