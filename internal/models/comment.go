package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment optionally carries a rating; the referenced Rating row always
// shares the comment's author and recipe.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RecipeID  uint      `gorm:"not null;index" json:"recipe_id"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"author"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	RatingID  *uint     `gorm:"index" json:"rating_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Recipe    Recipe    `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"-"`
	Rating    *Rating   `gorm:"foreignKey:RatingID" json:"rating,omitempty"`
}
