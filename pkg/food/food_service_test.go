package food

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"expirygenie/domain"
	"expirygenie/entities"
)

type fakeFoodRepository struct {
	items map[string]*entities.FoodItem
}

func newFakeFoodRepository() *fakeFoodRepository {
	return &fakeFoodRepository{items: make(map[string]*entities.FoodItem)}
}

func (r *fakeFoodRepository) AddFoodItem(_ context.Context, item *entities.FoodItem) error {
	copied := *item
	r.items[item.ID.String()] = &copied
	return nil
}

func (r *fakeFoodRepository) GetFoodItemByID(_ context.Context, id string) (*entities.FoodItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeFoodRepository) UpdateFoodItem(_ context.Context, item *entities.FoodItem) error {
	if _, ok := r.items[item.ID.String()]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *item
	r.items[item.ID.String()] = &copied
	return nil
}

func (r *fakeFoodRepository) DeleteFoodItem(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *fakeFoodRepository) DeleteFoodItems(_ context.Context, userID string, ids []string) error {
	for _, id := range ids {
		if item, ok := r.items[id]; ok && item.UserID.String() == userID {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *fakeFoodRepository) GetFoodItems(_ context.Context, userID string) ([]entities.FoodItem, error) {
	var out []entities.FoodItem
	for _, item := range r.items {
		if item.UserID.String() == userID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeFoodRepository) GetFoodItemHistory(_ context.Context, userID, _ string, _ int) ([]entities.FoodItem, error) {
	return r.GetFoodItems(context.Background(), userID)
}

type fakeUserRepository struct {
	user       *entities.User
	moneySaved float64
}

func (r *fakeUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	r.user = user
	return nil
}

func (r *fakeUserRepository) GetUserByID(_ context.Context, _ string) (*entities.User, error) {
	if r.user == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *r.user
	copied.MoneySaved += r.moneySaved
	return &copied, nil
}

func (r *fakeUserRepository) GetUserByEmail(_ context.Context, _ string) (*entities.User, error) {
	if r.user == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.user, nil
}

func (r *fakeUserRepository) UpdateUser(_ context.Context, user *entities.User) error {
	r.user = user
	return nil
}

func (r *fakeUserRepository) AddMoneySaved(_ context.Context, _ string, amount float64) error {
	r.moneySaved += amount
	return nil
}

func newTestService(today string) (*foodService, *fakeFoodRepository, *fakeUserRepository, string) {
	foodRepo := newFakeFoodRepository()
	userID := uuid.New()
	userRepo := &fakeUserRepository{user: &entities.User{ID: userID, Name: "tester"}}
	now, _ := time.Parse("2006-01-02", today)
	svc := &foodService{
		foodRepository: foodRepo,
		userRepository: userRepo,
		now:            func() time.Time { return now },
	}
	return svc, foodRepo, userRepo, userID.String()
}

func TestAddFoodItemEstimatesExpiry(t *testing.T) {
	svc, _, _, userID := newTestService("2026-01-10")

	res, err := svc.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name:         "Whole Milk",
		PurchaseDate: "2026-01-10",
	}, userID)
	if err != nil {
		t.Fatalf("AddFoodItem: %v", err)
	}
	if res.ExpiryDate != "2026-01-17" {
		t.Errorf("expiry = %s, want 2026-01-17", res.ExpiryDate)
	}
	if res.Category != "Dairy" {
		t.Errorf("category = %s, want Dairy", res.Category)
	}
	if res.Quantity != "1 unit" {
		t.Errorf("quantity = %s, want 1 unit", res.Quantity)
	}
	if res.AddedMethod != entities.MethodManual {
		t.Errorf("added method = %s, want %s", res.AddedMethod, entities.MethodManual)
	}
}

func TestAddFoodItemOpenedUsesReducedEstimate(t *testing.T) {
	svc, _, _, userID := newTestService("2026-01-10")

	res, err := svc.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name:         "Basmati Rice",
		PurchaseDate: "2026-01-10",
		Opened:       true,
	}, userID)
	if err != nil {
		t.Fatalf("AddFoodItem: %v", err)
	}
	// 365-day shelf life reduced to 121 days once opened.
	want := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 121).Format("2006-01-02")
	if res.ExpiryDate != want {
		t.Errorf("expiry = %s, want %s", res.ExpiryDate, want)
	}
}

func TestAddFoodItemPredictsFromHistory(t *testing.T) {
	svc, repo, _, userID := newTestService("2026-01-10")
	uid := uuid.MustParse(userID)

	day := func(s string) time.Time {
		d, _ := time.Parse("2006-01-02", s)
		return d
	}
	repo.items["a"] = &entities.FoodItem{ID: uuid.New(), UserID: uid, Name: "Chicken Breast",
		PurchaseDate: day("2025-12-01"), ExpiryDate: day("2025-12-04")}
	repo.items["b"] = &entities.FoodItem{ID: uuid.New(), UserID: uid, Name: "chicken",
		PurchaseDate: day("2025-12-10"), ExpiryDate: day("2025-12-14")}

	res, err := svc.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name:         "Chicken",
		PurchaseDate: "2026-01-10",
	}, userID)
	if err != nil {
		t.Fatalf("AddFoodItem: %v", err)
	}
	// Average of 3 and 4 days floors to 3.
	if res.ExpiryDate != "2026-01-13" {
		t.Errorf("expiry = %s, want 2026-01-13", res.ExpiryDate)
	}
}

func TestAddFoodItemValidation(t *testing.T) {
	svc, _, _, userID := newTestService("2026-01-10")
	ctx := context.Background()

	_, err := svc.AddFoodItem(ctx, domain.AddFoodItemRequest{
		Name: "Milk", PurchaseDate: "10-01-2026",
	}, userID)
	if !errors.Is(err, domain.ErrInvalidPurchaseDate) {
		t.Errorf("bad purchase date: got %v", err)
	}

	_, err = svc.AddFoodItem(ctx, domain.AddFoodItemRequest{
		Name: "Milk", PurchaseDate: "2026-01-10", ExpiryDate: "2026-01-05",
	}, userID)
	if !errors.Is(err, domain.ErrExpiryBeforePurchase) {
		t.Errorf("expiry before purchase: got %v", err)
	}

	_, err = svc.AddFoodItem(ctx, domain.AddFoodItemRequest{
		Name: "Milk", PurchaseDate: "2026-01-10", Category: "Electronics",
	}, userID)
	if !errors.Is(err, domain.ErrInvalidCategory) {
		t.Errorf("invalid category: got %v", err)
	}
}

func TestMarkAsOpenedShortensExpiry(t *testing.T) {
	svc, repo, _, userID := newTestService("2026-01-10")

	res, err := svc.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name:         "Butter",
		PurchaseDate: "2026-01-10",
	}, userID)
	if err != nil {
		t.Fatalf("AddFoodItem: %v", err)
	}

	if err := svc.MarkAsOpened(context.Background(), res.ID, userID); err != nil {
		t.Fatalf("MarkAsOpened: %v", err)
	}

	stored := repo.items[res.ID]
	if !stored.Opened {
		t.Error("item not marked opened")
	}
	// Butter: 30 days unopened, 10 once opened.
	if got := stored.ExpiryDate.Format("2006-01-02"); got != "2026-01-20" {
		t.Errorf("expiry = %s, want 2026-01-20", got)
	}
}

func TestMarkAsOpenedNeverExtendsExpiry(t *testing.T) {
	svc, repo, _, userID := newTestService("2026-01-10")

	res, err := svc.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name:         "Butter",
		PurchaseDate: "2026-01-10",
		ExpiryDate:   "2026-01-12",
	}, userID)
	if err != nil {
		t.Fatalf("AddFoodItem: %v", err)
	}

	if err := svc.MarkAsOpened(context.Background(), res.ID, userID); err != nil {
		t.Fatalf("MarkAsOpened: %v", err)
	}
	if got := repo.items[res.ID].ExpiryDate.Format("2006-01-02"); got != "2026-01-12" {
		t.Errorf("expiry = %s, want unchanged 2026-01-12", got)
	}
}

func TestMarkAsConsumedCreditsMoneySaved(t *testing.T) {
	svc, repo, userRepo, userID := newTestService("2026-01-10")

	res, err := svc.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name:         "Milk",
		PurchaseDate: "2026-01-10",
		Quantity:     "2 units",
	}, userID)
	if err != nil {
		t.Fatalf("AddFoodItem: %v", err)
	}

	err = svc.MarkAsConsumed(context.Background(), domain.MarkAsConsumedRequest{FoodItemID: res.ID}, userID)
	if err != nil {
		t.Fatalf("MarkAsConsumed: %v", err)
	}
	if userRepo.moneySaved != 7.00 {
		t.Errorf("money saved = %.2f, want 7.00", userRepo.moneySaved)
	}
	if _, ok := repo.items[res.ID]; ok {
		t.Error("consumed item still present")
	}
}

func TestOwnershipEnforced(t *testing.T) {
	svc, _, _, userID := newTestService("2026-01-10")

	res, err := svc.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name:         "Milk",
		PurchaseDate: "2026-01-10",
	}, userID)
	if err != nil {
		t.Fatalf("AddFoodItem: %v", err)
	}

	other := uuid.New().String()
	if _, err := svc.GetFoodItemByID(context.Background(), res.ID, other); !errors.Is(err, domain.ErrUnauthorizedAccess) {
		t.Errorf("get: got %v, want ErrUnauthorizedAccess", err)
	}
	if err := svc.DeleteFoodItem(context.Background(), res.ID, other); !errors.Is(err, domain.ErrUnauthorizedAccess) {
		t.Errorf("delete: got %v, want ErrUnauthorizedAccess", err)
	}
	if _, err := svc.GetFoodItemByID(context.Background(), uuid.New().String(), userID); !errors.Is(err, domain.ErrFoodItemNotFound) {
		t.Errorf("missing: got %v, want ErrFoodItemNotFound", err)
	}
}

func TestGetFoodItemsFilterSortPaginate(t *testing.T) {
	svc, _, _, userID := newTestService("2026-01-10")
	ctx := context.Background()

	add := func(name, purchase, expiry string) {
		_, err := svc.AddFoodItem(ctx, domain.AddFoodItemRequest{
			Name: name, PurchaseDate: purchase, ExpiryDate: expiry,
		}, userID)
		if err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	add("Milk", "2026-01-08", "2026-01-12")
	add("Bread", "2026-01-09", "2026-01-11")
	add("Rice", "2026-01-01", "2026-06-01")
	add("Cheddar Cheese", "2026-01-01", "2026-01-05")

	items, total, err := svc.GetFoodItems(ctx, userID, domain.ListFoodItemsQuery{Ascending: true})
	if err != nil {
		t.Fatalf("GetFoodItems: %v", err)
	}
	if total != 4 {
		t.Fatalf("total = %d, want 4", total)
	}
	if items[0].Name != "Cheddar Cheese" || items[0].Status != "Expired" {
		t.Errorf("first item = %s (%s), want expired cheese first", items[0].Name, items[0].Status)
	}

	items, total, err = svc.GetFoodItems(ctx, userID, domain.ListFoodItemsQuery{Status: "Expiring Soon", Ascending: true})
	if err != nil {
		t.Fatalf("GetFoodItems: %v", err)
	}
	if total != 2 || items[0].Name != "Bread" {
		t.Errorf("expiring soon: total=%d first=%s, want 2/Bread", total, items[0].Name)
	}

	items, total, err = svc.GetFoodItems(ctx, userID, domain.ListFoodItemsQuery{Page: 2, Limit: 3, Ascending: true})
	if err != nil {
		t.Fatalf("GetFoodItems: %v", err)
	}
	if total != 4 || len(items) != 1 {
		t.Errorf("page 2: total=%d len=%d, want 4/1", total, len(items))
	}
}

func TestDeleteExpiredItemsKeepsToday(t *testing.T) {
	svc, repo, _, userID := newTestService("2026-01-10")
	ctx := context.Background()

	add := func(name, expiry string) string {
		res, err := svc.AddFoodItem(ctx, domain.AddFoodItemRequest{
			Name: name, PurchaseDate: "2026-01-01", ExpiryDate: expiry,
		}, userID)
		if err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
		return res.ID
	}
	expiredID := add("Old Milk", "2026-01-05")
	todayID := add("Bread", "2026-01-10")
	safeID := add("Rice", "2026-06-01")

	res, err := svc.DeleteExpiredItems(ctx, userID)
	if err != nil {
		t.Fatalf("DeleteExpiredItems: %v", err)
	}
	if res.RemovedCount != 1 {
		t.Errorf("removed = %d, want 1", res.RemovedCount)
	}
	if _, ok := repo.items[expiredID]; ok {
		t.Error("expired item survived")
	}
	if _, ok := repo.items[todayID]; !ok {
		t.Error("item expiring today was deleted")
	}
	if _, ok := repo.items[safeID]; !ok {
		t.Error("safe item was deleted")
	}
}

func TestGetDashboardStats(t *testing.T) {
	svc, _, userRepo, userID := newTestService("2026-01-10")
	ctx := context.Background()
	userRepo.moneySaved = 12.5

	for _, name := range []string{"Milk", "Bread", "Eggs"} {
		_, err := svc.AddFoodItem(ctx, domain.AddFoodItemRequest{
			Name: name, PurchaseDate: "2026-01-09", ExpiryDate: "2026-01-11",
		}, userID)
		if err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}

	stats, err := svc.GetDashboardStats(ctx, userID)
	if err != nil {
		t.Fatalf("GetDashboardStats: %v", err)
	}
	if stats.Summary.TotalItems != 3 || stats.Summary.ExpiringSoon != 3 {
		t.Errorf("summary = %+v, want 3 total / 3 expiring soon", stats.Summary)
	}
	if len(stats.ClusterDays) != 1 || stats.ClusterDays[0] != "2026-01-11" {
		t.Errorf("cluster days = %v, want [2026-01-11]", stats.ClusterDays)
	}
	if stats.MoneySaved != 12.5 {
		t.Errorf("money saved = %.2f, want 12.5", stats.MoneySaved)
	}
}

func TestGetCalendarGroupsByDay(t *testing.T) {
	svc, _, _, userID := newTestService("2026-01-10")
	ctx := context.Background()

	add := func(name, expiry string) {
		_, err := svc.AddFoodItem(ctx, domain.AddFoodItemRequest{
			Name: name, PurchaseDate: "2026-01-01", ExpiryDate: expiry,
		}, userID)
		if err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	add("Milk", "2026-01-11")
	add("Bread", "2026-01-11")
	add("Eggs", "2026-01-11")
	add("Rice", "2026-01-20")
	add("Out of range", "2026-03-01")

	from, _ := time.Parse("2006-01-02", "2026-01-10")
	to, _ := time.Parse("2006-01-02", "2026-01-31")
	cal, err := svc.GetCalendar(ctx, userID, from, to)
	if err != nil {
		t.Fatalf("GetCalendar: %v", err)
	}
	if len(cal.Days) != 2 {
		t.Fatalf("days = %d, want 2", len(cal.Days))
	}
	if cal.Days[0].Date != "2026-01-11" || !cal.Days[0].ClusterDay {
		t.Errorf("first day = %+v, want clustered 2026-01-11", cal.Days[0])
	}
	if cal.Days[1].Date != "2026-01-20" || cal.Days[1].ClusterDay {
		t.Errorf("second day = %+v, want unclustered 2026-01-20", cal.Days[1])
	}
}

func TestGetCalendarDefaultsToCurrentMonth(t *testing.T) {
	svc, _, _, userID := newTestService("2026-01-10")
	ctx := context.Background()

	for _, item := range []struct{ name, expiry string }{
		{"Rice", "2026-01-20"},
		{"Canned beans", "2026-03-01"},
	} {
		_, err := svc.AddFoodItem(ctx, domain.AddFoodItemRequest{
			Name: item.name, PurchaseDate: "2026-01-01", ExpiryDate: item.expiry,
		}, userID)
		if err != nil {
			t.Fatalf("add %s: %v", item.name, err)
		}
	}

	cal, err := svc.GetCalendar(ctx, userID, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("GetCalendar: %v", err)
	}
	if cal.From != "2026-01-01" || cal.To != "2026-01-31" {
		t.Errorf("range = %s..%s, want 2026-01-01..2026-01-31", cal.From, cal.To)
	}
	if len(cal.Days) != 1 || cal.Days[0].Date != "2026-01-20" {
		t.Fatalf("days = %+v, want only 2026-01-20", cal.Days)
	}
}

func TestUpdateFoodItemCrossFieldValidation(t *testing.T) {
	svc, _, _, userID := newTestService("2026-01-10")
	ctx := context.Background()

	res, err := svc.AddFoodItem(ctx, domain.AddFoodItemRequest{
		Name: "Milk", PurchaseDate: "2026-01-10", ExpiryDate: "2026-01-17",
	}, userID)
	if err != nil {
		t.Fatalf("AddFoodItem: %v", err)
	}

	err = svc.UpdateFoodItem(ctx, res.ID, domain.UpdateFoodItemRequest{PurchaseDate: "2026-02-01"}, userID)
	if !errors.Is(err, domain.ErrExpiryBeforePurchase) {
		t.Errorf("got %v, want ErrExpiryBeforePurchase", err)
	}

	err = svc.UpdateFoodItem(ctx, res.ID, domain.UpdateFoodItemRequest{Name: "Oat Milk", Quantity: "2 units"}, userID)
	if err != nil {
		t.Fatalf("UpdateFoodItem: %v", err)
	}
	got, err := svc.GetFoodItemByID(ctx, res.ID, userID)
	if err != nil {
		t.Fatalf("GetFoodItemByID: %v", err)
	}
	if got.Name != "Oat Milk" || got.Quantity != "2 units" {
		t.Errorf("updated item = %s / %s", got.Name, got.Quantity)
	}
}
