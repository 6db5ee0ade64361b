package recipes

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealplan/backend/internal/domain/shared"
)

func strPtr(s string) *string { return &s }

func TestNewRecipe(t *testing.T) {
	owner := uuid.New()

	t.Run("creates recipe with defaults", func(t *testing.T) {
		r, err := NewRecipe(owner, "Pancakes", 4)
		require.NoError(t, err)
		assert.Equal(t, owner, r.CreatedBy)
		assert.Equal(t, 4, r.Servings)
		assert.False(t, r.IsPublic)
		assert.NotEqual(t, uuid.Nil, r.ID)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := NewRecipe(owner, "", 4)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive servings", func(t *testing.T) {
		_, err := NewRecipe(owner, "Pancakes", 0)
		assert.Error(t, err)
	})
}

func TestRecipeVisibility(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	r, err := NewRecipe(owner, "Secret Sauce", 2)
	require.NoError(t, err)

	assert.True(t, r.VisibleTo(owner))
	assert.False(t, r.VisibleTo(stranger))

	r.IsPublic = true
	assert.True(t, r.VisibleTo(stranger))
	assert.False(t, r.OwnedBy(stranger))
}

func TestServingRatio(t *testing.T) {
	owner := uuid.New()

	t.Run("divides meal servings by recipe servings", func(t *testing.T) {
		r, err := NewRecipe(owner, "Soup", 4)
		require.NoError(t, err)

		ratio, err := r.ServingRatio(2)
		require.NoError(t, err)
		assert.True(t, ratio.Equal(decimal.NewFromFloat(0.5)))

		ratio, err = r.ServingRatio(6)
		require.NoError(t, err)
		assert.True(t, ratio.Equal(decimal.NewFromFloat(1.5)))
	})

	t.Run("zero recipe servings is the invalid-servings error", func(t *testing.T) {
		r, err := NewRecipe(owner, "Soup", 1)
		require.NoError(t, err)
		r.Servings = 0

		_, err = r.ServingRatio(2)
		assert.True(t, errors.Is(err, shared.ErrInvalidRecipeServings))
	})

	t.Run("negative recipe servings is the invalid-servings error", func(t *testing.T) {
		r, err := NewRecipe(owner, "Soup", 1)
		require.NoError(t, err)
		r.Servings = -3

		_, err = r.ServingRatio(2)
		assert.True(t, errors.Is(err, shared.ErrInvalidRecipeServings))
	})

	t.Run("rejects non-positive meal servings", func(t *testing.T) {
		r, err := NewRecipe(owner, "Soup", 4)
		require.NoError(t, err)

		_, err = r.ServingRatio(0)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestScaledIngredients(t *testing.T) {
	owner := uuid.New()

	newRecipe := func(t *testing.T) *Recipe {
		r, err := NewRecipe(owner, "Apple Pie", 4)
		require.NoError(t, err)
		r.Ingredients = IngredientLines{
			{Name: "Apples", Amount: decimal.NewFromInt(400), Unit: strPtr("g")},
			{Name: "Sugar", Amount: decimal.NewFromInt(100), Unit: strPtr("g")},
		}
		return r
	}

	t.Run("multiplies every amount by the ratio", func(t *testing.T) {
		r := newRecipe(t)
		ratio, err := r.ServingRatio(2)
		require.NoError(t, err)

		scaled, err := r.ScaledIngredients(ratio)
		require.NoError(t, err)
		require.Len(t, scaled, 2)
		assert.True(t, scaled[0].Amount.Equal(decimal.NewFromInt(200)))
		assert.True(t, scaled[1].Amount.Equal(decimal.NewFromInt(50)))
	})

	t.Run("scaling is linear in meal servings", func(t *testing.T) {
		r := newRecipe(t)

		single, err := r.ServingRatio(3)
		require.NoError(t, err)
		double, err := r.ServingRatio(6)
		require.NoError(t, err)

		scaledSingle, err := r.ScaledIngredients(single)
		require.NoError(t, err)
		scaledDouble, err := r.ScaledIngredients(double)
		require.NoError(t, err)

		for i := range scaledSingle {
			expected := scaledSingle[i].Amount.Mul(decimal.NewFromInt(2))
			assert.True(t, scaledDouble[i].Amount.Equal(expected),
				"expected %s, got %s", expected, scaledDouble[i].Amount)
		}
	})

	t.Run("rejects lines without a name", func(t *testing.T) {
		r := newRecipe(t)
		r.Ingredients = append(r.Ingredients, IngredientLine{Name: "", Amount: decimal.NewFromInt(1)})

		_, err := r.ScaledIngredients(decimal.NewFromInt(1))
		assert.Error(t, err)
	})
}

func TestCalorieMultiplier(t *testing.T) {
	owner := uuid.New()

	r, err := NewRecipe(owner, "Salad", 1)
	require.NoError(t, err)
	r.CaloriesPerServing = 400

	m, err := r.CalorieMultiplier(600)
	require.NoError(t, err)
	assert.True(t, m.Equal(decimal.NewFromFloat(1.5)))

	r.CaloriesPerServing = 0
	_, err = r.CalorieMultiplier(600)
	assert.Error(t, err)
}

func TestNewRecipeRating(t *testing.T) {
	recipeID, userID := uuid.New(), uuid.New()

	t.Run("accepts values 1 through 5", func(t *testing.T) {
		for v := 1; v <= 5; v++ {
			_, err := NewRecipeRating(recipeID, userID, v, "")
			assert.NoError(t, err)
		}
	})

	t.Run("rejects out-of-range values", func(t *testing.T) {
		_, err := NewRecipeRating(recipeID, userID, 0, "")
		assert.Error(t, err)
		_, err = NewRecipeRating(recipeID, userID, 6, "")
		assert.Error(t, err)
	})
}
