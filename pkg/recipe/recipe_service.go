package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"expirygenie/domain"
	"expirygenie/internal/utils/gemini"
	"expirygenie/pkg/expiry"
	"expirygenie/pkg/food"
)

const defaultWithinDays = 3

const suggestionPromptFormat = `Suggest 3-5 recipes using these ingredients that expire soon: %s.
For each recipe, return:
- title
- description: one sentence
- used_ingredients: which of the listed ingredients it uses
- instructions: list of steps
- prep_time_minutes
Format as a JSON array only.`

type (
	RecipeService interface {
		GetSuggestions(ctx context.Context, req domain.RecipeSuggestionRequest, userID string) (domain.RecipeSuggestionResponse, error)
	}

	recipeService struct {
		foodRepository food.FoodRepository
		geminiClient   *gemini.Client
		now            func() time.Time
	}
)

func NewRecipeService(foodRepository food.FoodRepository, geminiClient *gemini.Client) RecipeService {
	return &recipeService{
		foodRepository: foodRepository,
		geminiClient:   geminiClient,
		now:            time.Now,
	}
}

// GetSuggestions asks the model for recipes built from the user's
// ingredients expiring within the requested window.
func (s *recipeService) GetSuggestions(ctx context.Context, req domain.RecipeSuggestionRequest, userID string) (domain.RecipeSuggestionResponse, error) {
	withinDays := req.WithinDays
	if withinDays <= 0 {
		withinDays = defaultWithinDays
	}

	items, err := s.foodRepository.GetFoodItems(ctx, userID)
	if err != nil {
		return domain.RecipeSuggestionResponse{}, err
	}

	today := expiry.Date(s.now())
	var names []string
	for _, item := range items {
		daysLeft := expiry.DaysBetween(today, item.ExpiryDate)
		if daysLeft >= 0 && daysLeft <= withinDays {
			names = append(names, item.Name)
		}
	}
	if len(names) == 0 {
		return domain.RecipeSuggestionResponse{}, domain.ErrNoIngredients
	}

	prompt := fmt.Sprintf(suggestionPromptFormat, strings.Join(names, ", "))
	responseText, err := s.geminiClient.GenerateFromText(ctx, prompt)
	if err != nil {
		return domain.RecipeSuggestionResponse{}, domain.ErrGeminiProcessingFailed
	}

	var recipes []domain.RecipeSuggestion
	if err := json.Unmarshal([]byte(gemini.CleanJSON(responseText)), &recipes); err != nil {
		return domain.RecipeSuggestionResponse{}, domain.ErrGeminiProcessingFailed
	}

	return domain.RecipeSuggestionResponse{
		Recipes:       recipes,
		ExpiringItems: len(names),
	}, nil
}
