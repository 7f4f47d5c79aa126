package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/chefcito/backend/internal/recommend"
	"github.com/pageza/chefcito/backend/internal/types"
	"gorm.io/gorm"
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
		return fmt.Errorf("unsupported JSONBStringArray source %T", value)
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is one corpus row. Position fixes the corpus order.
type Recipe struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Position    int              `gorm:"not null;index" json:"position"`
	Title       string           `gorm:"size:255;not null;uniqueIndex" json:"recipe_title"`
	Category    string           `gorm:"size:100" json:"category"`
	Subcategory string           `gorm:"size:100" json:"subcategory"`
	Description string           `gorm:"type:text" json:"description"`
	Ingredients JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Directions  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"directions"`
	NumSteps    int              `json:"num_steps"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// BeforeCreate assigns an ID when the caller did not
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// NewRecipe builds a row from a wire record.
func NewRecipe(rec types.RecipeRecord, position int) Recipe {
	row := Recipe{
		ID:          uuid.New(),
		Position:    position,
		Title:       rec.Title,
		Category:    rec.Category,
		Subcategory: rec.Subcategory,
		Description: rec.Description,
		Ingredients: JSONBStringArray(rec.Ingredients),
		Directions:  JSONBStringArray(rec.Directions),
	}
	if rec.NumSteps != nil {
		row.NumSteps = *rec.NumSteps
	}
	return row
}

// ToRecipe converts the row for the engine.
func (r Recipe) ToRecipe() recommend.Recipe {
	return recommend.Recipe{
		Title:       r.Title,
		Ingredients: append([]string(nil), r.Ingredients...),
		NumSteps:    r.NumSteps,
		Subcategory: r.Subcategory,
	}
}

// ToRecord converts the row into its wire shape, keeping the descriptive fields.
func (r Recipe) ToRecord() types.RecipeRecord {
	rec := types.FromRecipe(r.ToRecipe())
	rec.Category = r.Category
	rec.Description = r.Description
	rec.Directions = append([]string(nil), r.Directions...)
	return rec
}
