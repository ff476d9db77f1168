package model

import (
	"encoding/json"
	"time"
)

// ConsultantType 顾问行为类型标签，创建后不可变更
type ConsultantType string

const (
	// 纯对话顾问，不调用外部数据源
	ConsultantTypePureLLM ConsultantType = "pure_llm"

	// 表格数据顾问，通过表格数据服务查询结构化数据
	ConsultantTypeTabular ConsultantType = "tabular"

	// 联网搜索顾问
	ConsultantTypeWebSearch ConsultantType = "web_search"
)

type Consultant struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	SymposiumID string    `gorm:"not null;index" json:"symposium_id"`
	Name        string    `gorm:"not null" json:"name"`

	// 文本生成模型标识
	Model string `gorm:"not null" json:"model"`

	SystemPrompt   string         `gorm:"type:text" json:"system_prompt"`
	ConsultantType ConsultantType `gorm:"not null;default:pure_llm" json:"consultant_type"`
	TemplateID     *uint          `json:"template_id"`
}

func (Consultant) TableName() string {
	return "consultant"
}

// APIConfig 顾问访问外部数据源的凭证与配置
// payload 为base64编码的JSON（可逆编码，非加密，见 utils.EncodeSecret）
type APIConfig struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	ConsultantID uint      `gorm:"not null;uniqueIndex" json:"consultant_id"`
	Payload      string    `gorm:"type:text" json:"-"`
}

func (APIConfig) TableName() string {
	return "api_config"
}

// APIConfigPayload APIConfig.Payload 解码后的结构
type APIConfigPayload struct {
	// 表格数据服务
	BaseID    string `json:"base_id,omitempty"`
	APIKey    string `json:"api_key,omitempty"`
	TableName string `json:"table_name,omitempty"`

	// 联网搜索服务
	SearchAPIKey string `json:"search_api_key,omitempty"`
}

// Template 顾问模板，只读种子数据，供工厂和前端表单使用
type Template struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
	APIType   string    `gorm:"not null" json:"api_type"`

	DefaultSystemPrompt string `gorm:"type:text" json:"default_system_prompt"`

	// 创建顾问时必填的配置字段名列表
	RequiredConfigFields json.RawMessage `gorm:"type:json" json:"required_config_fields"`

	Icon string `json:"icon"`
}

func (Template) TableName() string {
	return "consultant_template"
}
