package food

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"expirygenie/domain"
	"expirygenie/entities"
	"expirygenie/pkg/expiry"
	"expirygenie/pkg/inventory"
	"expirygenie/pkg/user"
)

// historyLimit caps how many past rows feed the expiry predictor.
const historyLimit = 50

type (
	FoodService interface {
		AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest, userID string) (domain.FoodItemResponse, error)
		UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest, userID string) error
		DeleteFoodItem(ctx context.Context, id string, userID string) error
		GetFoodItems(ctx context.Context, userID string, query domain.ListFoodItemsQuery) ([]domain.FoodItemResponse, int64, error)
		GetFoodItemByID(ctx context.Context, id string, userID string) (domain.FoodItemResponse, error)
		MarkAsOpened(ctx context.Context, id string, userID string) error
		MarkAsConsumed(ctx context.Context, req domain.MarkAsConsumedRequest, userID string) error
		DeleteExpiredItems(ctx context.Context, userID string) (domain.DeleteExpiredResponse, error)
		GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error)
		GetCalendar(ctx context.Context, userID string, from, to time.Time) (domain.CalendarResponse, error)
		ExportCSV(ctx context.Context, userID string) (string, error)
	}

	foodService struct {
		foodRepository FoodRepository
		userRepository user.UserRepository
		now            func() time.Time
	}
)

func NewFoodService(foodRepository FoodRepository, userRepository user.UserRepository) FoodService {
	return &foodService{
		foodRepository: foodRepository,
		userRepository: userRepository,
		now:            time.Now,
	}
}

func (s *foodService) today() time.Time {
	return expiry.Date(s.now())
}

func toResponse(item entities.FoodItem, today time.Time) domain.FoodItemResponse {
	return domain.FoodItemResponse{
		ID:           item.ID.String(),
		Name:         item.Name,
		Category:     item.Category,
		PurchaseDate: item.PurchaseDate.Format("2006-01-02"),
		ExpiryDate:   item.ExpiryDate.Format("2006-01-02"),
		Quantity:     item.Quantity,
		Opened:       item.Opened,
		AddedMethod:  item.AddedMethod,
		Status:       string(expiry.Classify(item.ExpiryDate, today)),
		DaysLeft:     expiry.DaysBetween(today, item.ExpiryDate),
		ImageURL:     item.ImageURL,
		CreatedAt:    item.CreatedAt,
	}
}

func (s *foodService) AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest, userID string) (domain.FoodItemResponse, error) {
	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		return domain.FoodItemResponse{}, domain.ErrInvalidPurchaseDate
	}

	category := req.Category
	if category == "" {
		category = Categorize(req.Name)
	} else if !slices.Contains(entities.FoodCategories, category) {
		return domain.FoodItemResponse{}, domain.ErrInvalidCategory
	}

	var expiryDate time.Time
	if req.ExpiryDate != "" {
		expiryDate, err = time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return domain.FoodItemResponse{}, domain.ErrInvalidExpiryDate
		}
		if expiryDate.Before(purchaseDate) {
			return domain.FoodItemResponse{}, domain.ErrExpiryBeforePurchase
		}
	} else if req.Opened {
		// History reflects unopened shelf lives, so opened items go
		// straight to the calculator's reduction rule.
		expiryDate = expiry.Estimate(req.Name, purchaseDate, true)
	} else {
		history, err := s.foodRepository.GetFoodItemHistory(ctx, userID, req.Name, historyLimit)
		if err != nil {
			return domain.FoodItemResponse{}, err
		}
		expiryDate = expiry.Predict(history, req.Name, purchaseDate)
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.FoodItemResponse{}, domain.ErrParseUUID
	}

	quantity := req.Quantity
	if quantity == "" {
		quantity = "1 unit"
	}
	method := req.AddedMethod
	if method == "" {
		method = entities.MethodManual
	}

	foodItem := &entities.FoodItem{
		ID:           uuid.New(),
		UserID:       userUUID,
		Name:         req.Name,
		Category:     category,
		PurchaseDate: expiry.Date(purchaseDate),
		ExpiryDate:   expiry.Date(expiryDate),
		Quantity:     quantity,
		Opened:       req.Opened,
		AddedMethod:  method,
	}
	if req.ReceiptScanID != "" {
		foodItem.ReceiptScanID = &req.ReceiptScanID
	}

	if err := s.foodRepository.AddFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}

	return toResponse(*foodItem, s.today()), nil
}

func (s *foodService) getOwnedItem(ctx context.Context, id, userID string) (*entities.FoodItem, error) {
	foodItem, err := s.foodRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodItemNotFound
		}
		return nil, err
	}
	if foodItem.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return foodItem, nil
}

func (s *foodService) UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest, userID string) error {
	foodItem, err := s.getOwnedItem(ctx, id, userID)
	if err != nil {
		return err
	}

	if req.Name != "" {
		foodItem.Name = req.Name
	}
	if req.Category != "" {
		if !slices.Contains(entities.FoodCategories, req.Category) {
			return domain.ErrInvalidCategory
		}
		foodItem.Category = req.Category
	}
	if req.Quantity != "" {
		foodItem.Quantity = req.Quantity
	}
	if req.Opened != nil {
		foodItem.Opened = *req.Opened
	}
	if req.PurchaseDate != "" {
		purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			return domain.ErrInvalidPurchaseDate
		}
		foodItem.PurchaseDate = expiry.Date(purchaseDate)
	}
	if req.ExpiryDate != "" {
		expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return domain.ErrInvalidExpiryDate
		}
		foodItem.ExpiryDate = expiry.Date(expiryDate)
	}

	if foodItem.ExpiryDate.Before(foodItem.PurchaseDate) {
		return domain.ErrExpiryBeforePurchase
	}

	return s.foodRepository.UpdateFoodItem(ctx, foodItem)
}

func (s *foodService) DeleteFoodItem(ctx context.Context, id string, userID string) error {
	if _, err := s.getOwnedItem(ctx, id, userID); err != nil {
		return err
	}
	return s.foodRepository.DeleteFoodItem(ctx, id)
}

func (s *foodService) GetFoodItems(ctx context.Context, userID string, query domain.ListFoodItemsQuery) ([]domain.FoodItemResponse, int64, error) {
	items, err := s.foodRepository.GetFoodItems(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	today := s.today()
	filtered := inventory.Filter(items, query.Category, query.Status, today)

	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = inventory.SortByExpiryDate
	}
	sorted := inventory.Sort(filtered, sortBy, query.Ascending)

	total := int64(len(sorted))

	page, limit := query.Page, query.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	start := (page - 1) * limit
	if start > len(sorted) {
		start = len(sorted)
	}
	end := start + limit
	if end > len(sorted) {
		end = len(sorted)
	}

	response := make([]domain.FoodItemResponse, 0, end-start)
	for _, item := range sorted[start:end] {
		response = append(response, toResponse(item, today))
	}
	return response, total, nil
}

func (s *foodService) GetFoodItemByID(ctx context.Context, id string, userID string) (domain.FoodItemResponse, error) {
	foodItem, err := s.getOwnedItem(ctx, id, userID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}
	return toResponse(*foodItem, s.today()), nil
}

// MarkAsOpened flags the item and shortens its expiry to the opened
// estimate when that is earlier than the stored date. An opened item
// never gains shelf life.
func (s *foodService) MarkAsOpened(ctx context.Context, id string, userID string) error {
	foodItem, err := s.getOwnedItem(ctx, id, userID)
	if err != nil {
		return err
	}
	if foodItem.Opened {
		return nil
	}

	foodItem.Opened = true
	if est := expiry.Estimate(foodItem.Name, foodItem.PurchaseDate, true); est.Before(foodItem.ExpiryDate) {
		foodItem.ExpiryDate = est
	}

	return s.foodRepository.UpdateFoodItem(ctx, foodItem)
}

// MarkAsConsumed deletes the item and credits its estimated value to
// the user's money-saved total.
func (s *foodService) MarkAsConsumed(ctx context.Context, req domain.MarkAsConsumedRequest, userID string) error {
	foodItem, err := s.getOwnedItem(ctx, req.FoodItemID, userID)
	if err != nil {
		return err
	}

	value := inventory.EstimateValue(foodItem.Name, foodItem.Quantity)
	if err := s.userRepository.AddMoneySaved(ctx, userID, value); err != nil {
		return err
	}

	return s.foodRepository.DeleteFoodItem(ctx, req.FoodItemID)
}

func (s *foodService) DeleteExpiredItems(ctx context.Context, userID string) (domain.DeleteExpiredResponse, error) {
	items, err := s.foodRepository.GetFoodItems(ctx, userID)
	if err != nil {
		return domain.DeleteExpiredResponse{}, err
	}

	kept, removed := inventory.RemoveExpired(items, s.today())
	if removed == 0 {
		return domain.DeleteExpiredResponse{}, nil
	}

	keptIDs := make(map[uuid.UUID]struct{}, len(kept))
	for _, item := range kept {
		keptIDs[item.ID] = struct{}{}
	}
	var removedIDs []string
	for _, item := range items {
		if _, ok := keptIDs[item.ID]; !ok {
			removedIDs = append(removedIDs, item.ID.String())
		}
	}

	if err := s.foodRepository.DeleteFoodItems(ctx, userID, removedIDs); err != nil {
		return domain.DeleteExpiredResponse{}, err
	}
	return domain.DeleteExpiredResponse{RemovedCount: removed}, nil
}

func (s *foodService) GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error) {
	items, err := s.foodRepository.GetFoodItems(ctx, userID)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	owner, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	today := s.today()
	clusterDays := inventory.ClusterDays(items)
	formatted := make([]string, 0, len(clusterDays))
	for _, day := range clusterDays {
		formatted = append(formatted, day.Format("2006-01-02"))
	}

	return domain.DashboardStatsResponse{
		Summary:        inventory.Summarize(items, today),
		ClusterDays:    formatted,
		MoneySaved:     owner.MoneySaved,
		InventoryValue: inventory.TotalValue(items),
	}, nil
}

func (s *foodService) GetCalendar(ctx context.Context, userID string, from, to time.Time) (domain.CalendarResponse, error) {
	items, err := s.foodRepository.GetFoodItems(ctx, userID)
	if err != nil {
		return domain.CalendarResponse{}, err
	}

	today := s.today()

	// Zero bounds default to the current month.
	if from.IsZero() {
		from = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	if to.IsZero() {
		to = time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
	}

	from, to = expiry.Date(from), expiry.Date(to)

	perDay := make(map[string][]domain.FoodItemResponse)
	for _, item := range items {
		day := expiry.Date(item.ExpiryDate)
		if day.Before(from) || day.After(to) {
			continue
		}
		key := day.Format("2006-01-02")
		perDay[key] = append(perDay[key], toResponse(item, today))
	}

	keys := make([]string, 0, len(perDay))
	for key := range perDay {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	days := make([]domain.CalendarDay, 0, len(keys))
	for _, key := range keys {
		days = append(days, domain.CalendarDay{
			Date:       key,
			ClusterDay: len(perDay[key]) >= 3,
			Items:      perDay[key],
		})
	}

	return domain.CalendarResponse{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
		Days: days,
	}, nil
}

func (s *foodService) ExportCSV(ctx context.Context, userID string) (string, error) {
	items, err := s.foodRepository.GetFoodItems(ctx, userID)
	if err != nil {
		return "", err
	}
	return inventory.ExportCSV(items, s.today())
}
