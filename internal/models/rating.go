package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating rows are the single source of truth for Recipe.AverageRating.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Value     int       `gorm:"not null" json:"value"`
	RecipeID  uint      `gorm:"not null;index" json:"recipe_id"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"author"`
	CreatedAt time.Time `json:"created_at"`
	Recipe    Recipe    `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"-"`
}
