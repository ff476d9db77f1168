package request

type UpdateMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

type SetMessageVisibilityRequest struct {
	ConsultantID uint `json:"consultant_id" binding:"required"`
	Hidden       bool `json:"hidden"`
}
