package recipes

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mealplan/backend/internal/domain/shared"
	"github.com/mealplan/backend/internal/domain/shared/valueobject"
)

// IngredientLine is one ingredient entry of a recipe. Unit and category are
// optional and their absence is significant when lines are aggregated.
type IngredientLine struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Unit       *string         `json:"unit,omitempty"`
	CategoryID *uuid.UUID      `json:"category_id,omitempty"`
}

// Identity returns the aggregation key for this line
func (l IngredientLine) Identity() (valueobject.IngredientIdentity, error) {
	return valueobject.NewIngredientIdentity(l.Name, l.Unit, l.CategoryID)
}

// IngredientLines is stored as a JSON column
type IngredientLines []IngredientLine

// Value implements driver.Valuer for database serialization
func (l IngredientLines) Value() (driver.Value, error) {
	if l == nil {
		l = IngredientLines{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for database deserialization
func (l *IngredientLines) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientLines{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into IngredientLines", value)
	}
}

// StringList is a JSON-encoded list of strings (instructions, dietary tags)
type StringList []string

// Value implements driver.Valuer for database serialization
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		s = StringList{}
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for database deserialization
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
}

// Recipe is the aggregate root for recipe operations. Ingredients and
// instructions are embedded JSON, not separate tables.
type Recipe struct {
	shared.BaseEntity
	CreatedBy          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title              string          `gorm:"type:varchar(200);not null"`
	Description        string          `gorm:"type:text"`
	Ingredients        IngredientLines `gorm:"type:jsonb;not null"`
	Instructions       StringList      `gorm:"type:jsonb;not null"`
	PrepTimeMinutes    int             `gorm:"not null;default:0"`
	CookTimeMinutes    int             `gorm:"not null;default:0"`
	Servings           int             `gorm:"not null;default:1"`
	CaloriesPerServing int             `gorm:"not null;default:0"`
	Protein            decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Carbs              decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Fat                decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DietaryTags        StringList      `gorm:"type:jsonb"`
	IsPublic           bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Recipe) TableName() string {
	return "recipes"
}

// NewRecipe creates a new recipe owned by the given user
func NewRecipe(createdBy uuid.UUID, title string, servings int) (*Recipe, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("recipe title cannot be empty")
	}
	if servings <= 0 {
		return nil, errors.New("recipe servings must be positive")
	}
	return &Recipe{
		BaseEntity:   shared.NewBaseEntity(),
		CreatedBy:    createdBy,
		Title:        title,
		Servings:     servings,
		Ingredients:  IngredientLines{},
		Instructions: StringList{},
		DietaryTags:  StringList{},
	}, nil
}

// VisibleTo reports whether the user may read this recipe
func (r *Recipe) VisibleTo(userID uuid.UUID) bool {
	return r.IsPublic || r.CreatedBy == userID
}

// OwnedBy reports whether the user owns this recipe
func (r *Recipe) OwnedBy(userID uuid.UUID) bool {
	return r.CreatedBy == userID
}

// TotalTimeMinutes returns combined preparation and cooking time
func (r *Recipe) TotalTimeMinutes() int {
	return r.PrepTimeMinutes + r.CookTimeMinutes
}

// ServingRatio returns the factor by which ingredient amounts scale when the
// recipe is cooked for mealServings servings. The recipe's own servings count
// is the denominator; a non-positive denominator cannot be scaled and yields
// ErrInvalidRecipeServings.
func (r *Recipe) ServingRatio(mealServings int) (decimal.Decimal, error) {
	if r.Servings <= 0 {
		return decimal.Decimal{}, shared.ErrInvalidRecipeServings
	}
	if mealServings <= 0 {
		return decimal.Decimal{}, shared.ErrInvalidInput
	}
	return decimal.NewFromInt(int64(mealServings)).Div(decimal.NewFromInt(int64(r.Servings))), nil
}

// ScaledIngredients returns each ingredient line's amount multiplied by ratio,
// paired with its aggregation identity. Lines with empty names are invalid
// and abort the scaling.
func (r *Recipe) ScaledIngredients(ratio decimal.Decimal) ([]valueobject.IngredientAmount, error) {
	out := make([]valueobject.IngredientAmount, 0, len(r.Ingredients))
	for _, line := range r.Ingredients {
		identity, err := line.Identity()
		if err != nil {
			return nil, fmt.Errorf("recipe %s: %w", r.ID, err)
		}
		out = append(out, valueobject.IngredientAmount{
			Identity: identity,
			Amount:   line.Amount.Mul(ratio),
		})
	}
	return out, nil
}

// CalorieMultiplier returns the factor that maps this recipe's calories per
// serving onto the target. Used for portion adjustment.
func (r *Recipe) CalorieMultiplier(targetCalories int) (decimal.Decimal, error) {
	if r.CaloriesPerServing <= 0 {
		return decimal.Decimal{}, shared.NewDomainError("INVALID_STATE", "Recipe has no calorie information")
	}
	if targetCalories <= 0 {
		return decimal.Decimal{}, shared.ErrInvalidInput
	}
	return decimal.NewFromInt(int64(targetCalories)).Div(decimal.NewFromInt(int64(r.CaloriesPerServing))), nil
}
