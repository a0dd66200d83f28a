package domain

// Recipe is a shareable processing recipe synced from the capture service.
type Recipe struct {
	ID            string        `json:"id"`
	Slug          string        `json:"slug"`
	Visibility    string        `json:"visibility,omitempty"` // "public" | "private"
	PublisherSlug string        `json:"publisher_slug,omitempty"`
	CreatorName   string        `json:"creator_name,omitempty"`
	Config        *RecipeConfig `json:"config,omitempty"`
	CreatedAt     string        `json:"created_at,omitempty"`
	UpdatedAt     string        `json:"updated_at,omitempty"`
	DeletedAt     *string       `json:"deleted_at,omitempty"`
}

// RecipeConfig is the recipe's captured configuration object.
type RecipeConfig struct {
	Description  string `json:"description,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	Model        string `json:"model,omitempty"`
}
