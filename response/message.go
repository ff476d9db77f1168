package response

import "time"

type MessageResponse struct {
	ID           uint       `json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	ConsultantID *uint      `json:"consultant_id"`
	Content      string     `json:"content"`
	IsUser       bool       `json:"is_user"`
	EditedAt     *time.Time `json:"edited_at"`
}

type GetMessagesResponse struct {
	Messages []MessageResponse `json:"messages"`
}

// ChatResponse 一轮对话产生的用户消息与顾问回复
type ChatResponse struct {
	UserMessage       MessageResponse `json:"user_message"`
	ConsultantMessage MessageResponse `json:"consultant_message"`
}
