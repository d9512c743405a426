package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"expirygenie/internal/api/handlers"
	"expirygenie/internal/api/routes"
	"expirygenie/internal/middleware"
	"expirygenie/internal/utils"
	"expirygenie/internal/utils/gemini"
	"expirygenie/internal/utils/storage"
	"expirygenie/pkg/food"
	"expirygenie/pkg/jwt"
	"expirygenie/pkg/recipe"
	"expirygenie/pkg/scan"
	"expirygenie/pkg/user"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	geminiClient := gemini.NewClient()

	// Repository
	userRepository := user.NewUserRepository(db)
	foodRepository := food.NewFoodRepository(db)
	scanRepository := scan.NewScanRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService, s3)
	foodService := food.NewFoodService(foodRepository, userRepository)
	scanService := scan.NewScanService(scanRepository, foodService, geminiClient, s3)
	recipeService := recipe.NewRecipeService(foodRepository, geminiClient)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	foodHandler := handlers.NewFoodHandler(foodService, validator)
	scanHandler := handlers.NewScanHandler(scanService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)

	// routes
	routesConfig := routes.Config{
		App:           app,
		UserHandler:   userHandler,
		FoodHandler:   foodHandler,
		ScanHandler:   scanHandler,
		RecipeHandler: recipeHandler,
		Middleware:    middlewares,
		JWTService:    jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
