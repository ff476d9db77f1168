package consultant

import (
	"context"
	"log/slog"
	"symposium-agent-backend/model"
	"symposium-agent-backend/service/llm"
)

// 纯对话顾问LLM调用失败时的固定回复，不做重试
const apologyReply = "抱歉，我暂时无法回答这个问题，请稍后再试。"

// PlainStrategy 纯对话顾问：不访问任何外部数据源
type PlainStrategy struct {
	consultant *model.Consultant
	llm        llm.Chatter
}

var _ Strategy = &PlainStrategy{}

func NewPlainStrategy(consultant *model.Consultant, chatter llm.Chatter) *PlainStrategy {
	return &PlainStrategy{
		consultant: consultant,
		llm:        chatter,
	}
}

func (s *PlainStrategy) AdapterType() model.ConsultantType {
	return model.ConsultantTypePureLLM
}

// InterpretRequest 纯对话顾问永远不需要外部调用，不消耗LLM调用
func (s *PlainStrategy) InterpretRequest(ctx context.Context, userMessage, conversationContext string) *Interpretation {
	return &Interpretation{NeedsAPICall: false}
}

func (s *PlainStrategy) ExecuteAPICall(ctx context.Context, interp *Interpretation) (*ActionResult, error) {
	return nil, nil
}

func (s *PlainStrategy) FormatResponse(ctx context.Context, userMessage string, interp *Interpretation, result *ActionResult, conversationContext string) string {
	prompt, err := renderPrompt(plainResponsePrompt, struct {
		SystemPrompt string
		Context      string
		UserMessage  string
	}{
		SystemPrompt: s.consultant.SystemPrompt,
		Context:      conversationContext,
		UserMessage:  userMessage,
	})
	if err != nil {
		slog.Error("Failed to render response prompt", "consultant_id", s.consultant.ID, "err", err)
		return apologyReply
	}

	resp, err := s.llm.Chat(ctx, s.consultant.Model, prompt)
	if err != nil {
		slog.Error("Failed to generate response", "consultant_id", s.consultant.ID, "err", err)
		return apologyReply
	}
	return resp
}
