package dto

type CreateCommentRequest struct {
	RecipeID uint   `json:"recipe_id"`
	Content  string `json:"content"`
	Rating   *int   `json:"rating,omitempty"`
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
	Rating  *int   `json:"rating,omitempty"`
}
