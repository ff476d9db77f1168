package response

import "time"

type SymposiumResponse struct {
	SymposiumID string    `json:"symposium_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type GetSymposiumsResponse struct {
	Symposiums []SymposiumResponse `json:"symposiums"`
}
