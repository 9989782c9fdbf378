package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-finder/backend/internal/types"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported string array column type %T", value)
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is the stored form of a recipe in the data service
type Recipe struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	DeletedAt    gorm.DeletedAt     `gorm:"index" json:"-"`
	Title        string             `gorm:"size:255;not null" json:"title"`
	Description  string             `gorm:"type:text" json:"description"`
	Category     string             `gorm:"size:50;not null;index" json:"category"`
	ImageURL     string             `gorm:"size:512" json:"image_url"`
	Ingredients  JSONBStringArray   `gorm:"type:jsonb;not null" json:"ingredients"`
	Instructions types.Instructions `gorm:"type:jsonb;not null" json:"instructions"`
	CreatedByID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"created_by_id"`
	CreatedBy    User               `gorm:"foreignKey:CreatedByID" json:"created_by"`
}

// BeforeCreate assigns an ID when none is set
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ToRaw maps a stored recipe to the shape delivered by the query layer.
// Empty description and image become absent.
func (r *Recipe) ToRaw() types.RawRecipe {
	raw := types.RawRecipe{
		ID:           r.ID.String(),
		Title:        r.Title,
		Ingredients:  []string(r.Ingredients),
		Instructions: r.Instructions,
		Category:     r.Category,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		CreatedBy: types.Creator{
			ID:       r.CreatedByID.String(),
			Username: r.CreatedBy.Username,
		},
	}
	if raw.Ingredients == nil {
		raw.Ingredients = []string{}
	}
	if r.Description != "" {
		raw.Description = types.StringPtr(r.Description)
	}
	if r.ImageURL != "" {
		raw.ImageURL = types.StringPtr(r.ImageURL)
	}
	return raw
}
