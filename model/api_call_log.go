package model

import (
	"encoding/json"
	"time"
)

// APICallLog 顾问流水线的审计日志，每轮对话写入一条
type APICallLog struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `gorm:"index:idx_consultant_created" json:"created_at"`
	ConsultantID uint      `gorm:"not null;index:idx_consultant_created" json:"consultant_id"`

	// 适配器类型标签（pure_llm / tabular / web_search）
	AdapterType string `gorm:"not null" json:"adapter_type"`

	Request  json.RawMessage `gorm:"type:json" json:"request"`
	Response json.RawMessage `gorm:"type:json" json:"response"`
	Success  bool            `gorm:"not null" json:"success"`

	// 失败时的错误信息，成功为空
	ErrorMessage string `gorm:"type:text" json:"error_message"`

	ElapsedMs int64 `gorm:"not null" json:"elapsed_ms"`
}

func (APICallLog) TableName() string {
	return "api_call_log"
}
