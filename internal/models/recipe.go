package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Recipe is the central user-generated entity. List-valued columns
// (ingredients in "amount:ingredient" form, steps, tags) live in jsonb.
type Recipe struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"not null;size:255;index" json:"name"`
	Description     string         `gorm:"type:text" json:"description,omitempty"`
	Instructions    string         `gorm:"type:text;not null" json:"instructions"`
	Category        string         `gorm:"not null;size:100;index" json:"category"`
	Difficulty      string         `gorm:"size:20" json:"difficulty,omitempty"`
	Ingredients     datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"ingredients"`
	Steps           datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"steps,omitempty"`
	Tags            datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"tags,omitempty"`
	PreparationTime int            `gorm:"not null" json:"preparation_time"`
	Servings        *int           `json:"servings,omitempty"`
	AuthorID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"author"`
	AverageRating   float64        `gorm:"not null;default:0" json:"average_rating"`
	AIDetected      *float64       `json:"ai_detected,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	Author          User           `gorm:"foreignKey:AuthorID" json:"-"`
}
