package request

type CreateSymposiumRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateSymposiumRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}
