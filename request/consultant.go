package request

// CreateConsultantRequest 顾问类型创建后不可变更
// APIConfig 为外部数据源的凭证字段，按模板要求的字段填写
type CreateConsultantRequest struct {
	SymposiumID    string            `json:"symposium_id" binding:"required"`
	Name           string            `json:"name" binding:"required"`
	Model          string            `json:"model" binding:"required"`
	SystemPrompt   string            `json:"system_prompt"`
	ConsultantType string            `json:"consultant_type"`
	TemplateID     *uint             `json:"template_id"`
	APIConfig      map[string]string `json:"api_config"`
}

type UpdateConsultantRequest struct {
	Name         string `json:"name" binding:"required"`
	Model        string `json:"model" binding:"required"`
	SystemPrompt string `json:"system_prompt"`
}
