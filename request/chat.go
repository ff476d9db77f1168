package request

type ChatRequest struct {
	SymposiumID  string `json:"symposium_id" binding:"required"`
	ConsultantID uint   `json:"consultant_id" binding:"required"`
	Content      string `json:"content" binding:"required"`
}
