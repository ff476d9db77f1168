package response

import "encoding/json"

type ConsultantResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Model          string `json:"model"`
	SystemPrompt   string `json:"system_prompt"`
	ConsultantType string `json:"consultant_type"`
	TemplateID     *uint  `json:"template_id"`

	// 是否已配置外部数据源凭证，凭证内容不回传
	HasAPIConfig bool `json:"has_api_config"`
}

type GetConsultantsResponse struct {
	Consultants []ConsultantResponse `json:"consultants"`
}

type TemplateResponse struct {
	ID                   uint            `json:"id"`
	Name                 string          `json:"name"`
	APIType              string          `json:"api_type"`
	DefaultSystemPrompt  string          `json:"default_system_prompt"`
	RequiredConfigFields json.RawMessage `json:"required_config_fields"`
	Icon                 string          `json:"icon"`
}

type GetTemplatesResponse struct {
	Templates []TemplateResponse `json:"templates"`
}
