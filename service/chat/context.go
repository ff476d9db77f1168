package chat

import (
	"fmt"
	"strings"
	"symposium-agent-backend/dao"
	"symposium-agent-backend/model"
)

// 注入对话上下文的最近消息条数上限
const contextMessageLimit = 50

// BuildContext 组装某位顾问视角的对话上下文：
// 研讨会固定的知识卡片 + 对该顾问可见的最近消息（时间正序）
func BuildContext(symposiumID string, consultantID uint) (string, error) {
	cards, err := dao.GetPinnedCards(symposiumID)
	if err != nil {
		return "", fmt.Errorf("failed to load pinned cards: %v", err)
	}

	messages, err := dao.GetVisibleMessages(symposiumID, consultantID, contextMessageLimit)
	if err != nil {
		return "", fmt.Errorf("failed to load visible messages: %v", err)
	}

	consultants, err := dao.GetConsultantsBySymposiumID(symposiumID)
	if err != nil {
		return "", fmt.Errorf("failed to load consultants: %v", err)
	}

	names := make(map[uint]string, len(consultants))
	for _, c := range consultants {
		names[c.ID] = c.Name
	}

	var b strings.Builder

	if len(cards) > 0 {
		b.WriteString("研讨会固定的知识卡片：\n")
		for _, card := range cards {
			fmt.Fprintf(&b, "【%s】%s\n", card.Title, card.Content)
		}
		b.WriteString("\n")
	}

	if len(messages) > 0 {
		b.WriteString("对话记录：\n")
		for _, msg := range messages {
			b.WriteString(formatMessageLine(msg, names))
		}
	}

	return b.String(), nil
}

func formatMessageLine(msg model.Message, names map[uint]string) string {
	if msg.IsUser {
		return fmt.Sprintf("用户：%s\n", msg.Content)
	}
	if msg.ConsultantID != nil {
		if name, ok := names[*msg.ConsultantID]; ok {
			return fmt.Sprintf("顾问%s：%s\n", name, msg.Content)
		}
	}
	return fmt.Sprintf("系统：%s\n", msg.Content)
}
