package consultant

import (
	"context"
	"encoding/json"
	"time"

	"symposium-agent-backend/model"
	"symposium-agent-backend/service/audit"
)

// AuditSink 审计日志投递口，从流水线视角即发即忘
type AuditSink interface {
	Append(entry *audit.Entry)
}

// Pipeline 每轮对话固定执行的四步编排：解析意图、按需外部调用、格式化、审计
type Pipeline struct {
	consultant *model.Consultant
	strategy   Strategy
	sink       AuditSink
}

func NewPipeline(consultant *model.Consultant, strategy Strategy, sink AuditSink) *Pipeline {
	return &Pipeline{
		consultant: consultant,
		strategy:   strategy,
		sink:       sink,
	}
}

// auditRequest / auditResponse 审计记录的请求与响应载荷
type auditRequest struct {
	UserMessage    string          `json:"user_message"`
	Interpretation *Interpretation `json:"interpretation,omitempty"`
}

type auditResponse struct {
	Text         string        `json:"text,omitempty"`
	ActionResult *ActionResult `json:"action_result,omitempty"`
}

// Process 执行一轮对话
//
// 无论成败都恰好写入一条审计记录。ExecuteAPICall 的错误在写入审计后
// 原样向上抛出，由外层渲染单条用户可见的错误信息；InterpretRequest 和
// FormatResponse 按各自契约内部降级，正常情况下不会让本方法失败。
func (p *Pipeline) Process(ctx context.Context, userMessage, conversationContext string) (string, error) {
	start := time.Now()

	interp := p.strategy.InterpretRequest(ctx, userMessage, conversationContext)

	var result *ActionResult
	if interp.NeedsAPICall {
		var err error
		result, err = p.strategy.ExecuteAPICall(ctx, interp)
		if err != nil {
			p.appendAudit(userMessage, interp, nil, "", err, start)
			return "", err
		}
	}

	text := p.strategy.FormatResponse(ctx, userMessage, interp, result, conversationContext)

	p.appendAudit(userMessage, interp, result, text, nil, start)
	return text, nil
}

func (p *Pipeline) appendAudit(userMessage string, interp *Interpretation, result *ActionResult, text string, callErr error, start time.Time) {
	request, _ := json.Marshal(auditRequest{
		UserMessage:    userMessage,
		Interpretation: interp,
	})

	entry := &audit.Entry{
		ConsultantID: p.consultant.ID,
		AdapterType:  string(p.strategy.AdapterType()),
		Request:      request,
		Success:      callErr == nil,
		ElapsedMs:    time.Since(start).Milliseconds(),
	}

	if callErr != nil {
		entry.ErrorMessage = callErr.Error()
	} else {
		response, _ := json.Marshal(auditResponse{
			Text:         text,
			ActionResult: result,
		})
		entry.Response = response
	}

	p.sink.Append(entry)
}
