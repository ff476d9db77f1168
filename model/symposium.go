package model

import "time"

const DefaultSymposiumName = "新研讨会"

// Symposium 研讨会，一个包含多位顾问和消息的会话工作区
type Symposium struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UserEmail   string    `gorm:"not null;index" json:"user_email"`
	SymposiumID string    `gorm:"not null;uniqueIndex" json:"symposium_id"`
	Name        string    `json:"name"`
	Description string    `gorm:"type:text" json:"description"`
}

func (Symposium) TableName() string {
	return "symposium"
}

// Message 建立联合索引 (symposium_id, created_at)
type Message struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `gorm:"index:idx_symposium_created" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	SymposiumID string    `gorm:"not null;index:idx_symposium_created" json:"symposium_id"`

	// 用户消息和系统消息为空
	ConsultantID *uint  `gorm:"index" json:"consultant_id"`
	Content      string `gorm:"type:text" json:"content"`
	IsUser       bool   `gorm:"not null" json:"is_user"`

	// 消息被编辑的时间，未编辑为空
	EditedAt *time.Time `json:"edited_at"`
}

func (Message) TableName() string {
	return "chat_message"
}

// MessageVisibility 按 (消息, 顾问) 维度隐藏消息
// 不存在记录时消息默认对所有顾问可见
type MessageVisibility struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageID    uint      `gorm:"not null;index:idx_message_consultant,unique" json:"message_id"`
	ConsultantID uint      `gorm:"not null;index:idx_message_consultant,unique" json:"consultant_id"`
	Hidden       bool      `gorm:"not null" json:"hidden"`
}

func (MessageVisibility) TableName() string {
	return "message_visibility"
}
