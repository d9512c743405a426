package food

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"expirygenie/entities"
)

type (
	FoodRepository interface {
		AddFoodItem(ctx context.Context, foodItem *entities.FoodItem) error
		GetFoodItemByID(ctx context.Context, id string) (*entities.FoodItem, error)
		UpdateFoodItem(ctx context.Context, foodItem *entities.FoodItem) error
		DeleteFoodItem(ctx context.Context, id string) error
		DeleteFoodItems(ctx context.Context, userID string, ids []string) error
		GetFoodItems(ctx context.Context, userID string) ([]entities.FoodItem, error)
		GetFoodItemHistory(ctx context.Context, userID, name string, limit int) ([]entities.FoodItem, error)
	}

	foodRepository struct {
		db *gorm.DB
	}
)

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) AddFoodItem(ctx context.Context, foodItem *entities.FoodItem) error {
	return r.db.WithContext(ctx).Create(foodItem).Error
}

func (r *foodRepository) GetFoodItemByID(ctx context.Context, id string) (*entities.FoodItem, error) {
	var foodItem entities.FoodItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&foodItem).Error; err != nil {
		return nil, err
	}
	return &foodItem, nil
}

func (r *foodRepository) UpdateFoodItem(ctx context.Context, foodItem *entities.FoodItem) error {
	return r.db.WithContext(ctx).Save(foodItem).Error
}

func (r *foodRepository) DeleteFoodItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.FoodItem{}).Error
}

func (r *foodRepository) DeleteFoodItems(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&entities.FoodItem{}).Error
}

func (r *foodRepository) GetFoodItems(ctx context.Context, userID string) ([]entities.FoodItem, error) {
	var foodItems []entities.FoodItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("expiry_date asc").
		Find(&foodItems).Error; err != nil {
		return nil, err
	}
	return foodItems, nil
}

// GetFoodItemHistory returns the user's most recent items whose names
// overlap the given name in either direction. The expiry predictor
// re-filters the rows, this query just keeps the candidate set small.
func (r *foodRepository) GetFoodItemHistory(ctx context.Context, userID, name string, limit int) ([]entities.FoodItem, error) {
	var foodItems []entities.FoodItem
	lower := strings.ToLower(name)
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("LOWER(name) LIKE ? OR ? LIKE '%' || LOWER(name) || '%'", "%"+lower+"%", lower).
		Order("created_at desc").
		Limit(limit).
		Find(&foodItems).Error; err != nil {
		return nil, err
	}
	return foodItems, nil
}
