package routes

import (
	"github.com/gofiber/fiber/v2"

	"expirygenie/internal/api/handlers"
	"expirygenie/internal/middleware"
	"expirygenie/pkg/jwt"
)

type Config struct {
	App           *fiber.App
	UserHandler   handlers.UserHandler
	FoodHandler   handlers.FoodHandler
	ScanHandler   handlers.ScanHandler
	RecipeHandler handlers.RecipeHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.FoodItems()
	c.Scans()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
		user.Put("/avatar", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UploadAvatar)
		user.Post("/forget", c.UserHandler.ForgotPassword)
		user.Post("/reset", c.UserHandler.ResetPassword)
	}
}

func (c *Config) FoodItems() {
	foodItems := c.App.Group("/api/v1/food-items", c.Middleware.AuthMiddleware(c.JWTService))
	foodItems.Get("/dashboard", c.FoodHandler.GetDashboardStats)
	foodItems.Get("/calendar", c.FoodHandler.GetCalendar)
	foodItems.Get("/export", c.FoodHandler.ExportCSV)
	foodItems.Delete("/expired", c.FoodHandler.DeleteExpiredItems)
	foodItems.Post("/consumed", c.FoodHandler.MarkAsConsumed)

	// Basic CRUD operations
	foodItems.Post("", c.FoodHandler.AddFoodItem)
	foodItems.Get("", c.FoodHandler.GetFoodItems)
	foodItems.Get("/:id", c.FoodHandler.GetFoodItemDetails)
	foodItems.Put("/:id", c.FoodHandler.UpdateFoodItem)
	foodItems.Delete("/:id", c.FoodHandler.DeleteFoodItem)
	foodItems.Post("/:id/opened", c.FoodHandler.MarkAsOpened)
}

func (c *Config) Scans() {
	scans := c.App.Group("/api/v1/scans", c.Middleware.AuthMiddleware(c.JWTService))
	scans.Post("/voice", c.ScanHandler.ProcessVoiceText)
	scans.Post("/receipt", c.ScanHandler.UploadReceipt)
	scans.Get("/receipt/:id", c.ScanHandler.GetReceiptScan)
	scans.Post("/receipt/save", c.ScanHandler.SaveScannedItems)
	scans.Post("/photo", c.ScanHandler.AnalyzeFoodPhoto)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))
	recipes.Post("/suggestions", c.RecipeHandler.GetSuggestions)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
