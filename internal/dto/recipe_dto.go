package dto

type RecipeRequest struct {
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Instructions    string   `json:"instructions"`
	Category        string   `json:"category"`
	Difficulty      string   `json:"difficulty,omitempty"`
	Ingredients     []string `json:"ingredients"`
	Steps           []string `json:"steps,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	PreparationTime int      `json:"preparation_time"`
	Servings        *int     `json:"servings,omitempty"`
}
