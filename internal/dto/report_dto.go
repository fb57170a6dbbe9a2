package dto

type CreateReportRequest struct {
	RecipeID    *uint  `json:"recipe_id,omitempty"`
	CommentID   *uint  `json:"comment_id,omitempty"`
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

type UpdateReportStatusRequest struct {
	Status         string `json:"status"`
	ResolutionNote string `json:"resolution_note,omitempty"`
}
