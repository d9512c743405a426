package domain

import "errors"

var (
	MessageSuccessGetRecipes = "recipe suggestions retrieved successfully"
	MessageFailedGetRecipes  = "failed to get recipe suggestions"

	ErrNoIngredients = errors.New("no expiring ingredients available for recipe suggestions")
)

type (
	RecipeSuggestionRequest struct {
		// Days ahead of today used to pick expiring ingredients.
		WithinDays int `json:"within_days" validate:"omitempty,min=1,max=30"`
	}

	RecipeSuggestion struct {
		Title           string   `json:"title"`
		Description     string   `json:"description"`
		UsedIngredients []string `json:"used_ingredients"`
		Instructions    []string `json:"instructions"`
		PrepTimeMinutes int      `json:"prep_time_minutes"`
	}

	RecipeSuggestionResponse struct {
		Recipes       []RecipeSuggestion `json:"recipes"`
		ExpiringItems int                `json:"expiring_items"`
	}
)
