package router

import (
	"net/http"

	"dress_rental_backend/internal/config"
	"dress_rental_backend/internal/handlers"
	"dress_rental_backend/internal/middleware"
	"dress_rental_backend/internal/repositories"
	"dress_rental_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application on top of the given store.
func Setup(engine *gin.Engine, store *repositories.Store, cfg *config.Config) {
	handlers.RegisterValidators()

	// Initialize Services
	rentalService := services.NewRentalService(store, services.NewPricer(cfg.PricingMode), nil)
	dressService := services.NewDressService(store.Dresses)
	clientService := services.NewClientService(store.Clients)
	promotionService := services.NewPromotionService(store.Promotions)
	userService := services.NewUserService(store.Users)
	authService := services.NewAuthService(store.Users)

	// Initialize Handlers
	rentalHandler := handlers.NewRentalHandler(rentalService)
	dressHandler := handlers.NewDressHandler(dressService)
	clientHandler := handlers.NewClientHandler(clientService)
	promotionHandler := handlers.NewPromotionHandler(promotionService)
	userHandler := handlers.NewUserHandler(userService)
	authHandler := handlers.NewAuthHandler(authService)

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := engine.Group("/api")

	SetupAuthRoutes(api, authHandler, middleware.NewRateLimiter(cfg.LoginRatePerMinute))

	authenticated := api.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupRentalRoutes(authenticated, rentalHandler)
		SetupDressRoutes(authenticated, dressHandler)
		SetupClientRoutes(authenticated, clientHandler)
		SetupPromotionRoutes(authenticated, promotionHandler)
		SetupUserRoutes(authenticated, userHandler)
	}
}
