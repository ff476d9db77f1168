package request

type CreateKnowledgeCardRequest struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags"`
}

type UpdateKnowledgeCardRequest struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags"`
}

type PinCardRequest struct {
	SymposiumID string `json:"symposium_id" binding:"required"`
	CardID      uint   `json:"card_id" binding:"required"`
}

// ImportMarkdownRequest 前端将markdown文件成功传输到OSS后调用
type ImportMarkdownRequest struct {
	ObjectName string `json:"object_name" binding:"required"`
	FileName   string `json:"file_name" binding:"required"`
}
