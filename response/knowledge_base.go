package response

import "time"

type KnowledgeCardResponse struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
}

type GetKnowledgeCardsResponse struct {
	Cards []KnowledgeCardResponse `json:"cards"`
}
