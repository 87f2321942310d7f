package router

import (
	"dress_rental_backend/internal/handlers"
	"dress_rental_backend/internal/middleware"
	"dress_rental_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the authentication routes. Login is public and rate limited.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler, limiter *middleware.RateLimiter) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/login", limiter.Middleware(), authHandler.Login)
		authRoutes.POST("/logout", middleware.AuthMiddleware(), authHandler.Logout)
	}
}

// SetupRentalRoutes sets up the rental lifecycle routes.
func SetupRentalRoutes(authenticatedGroup *gin.RouterGroup, rentalHandler *handlers.RentalHandler) {
	rentalRoutes := authenticatedGroup.Group("/rental")
	staff := middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleUser)
	adminOnly := middleware.RoleAuthMiddleware(models.RoleAdmin)
	{
		rentalRoutes.GET("", staff, rentalHandler.GetRentals)
		rentalRoutes.GET("/:id", staff, rentalHandler.GetRentalByID)
		rentalRoutes.POST("/create", staff, rentalHandler.CreateRental)
		rentalRoutes.PUT("/update/:id", staff, rentalHandler.UpdateRental)
		rentalRoutes.PUT("/damage/:id", adminOnly, rentalHandler.ReportDamage)
		rentalRoutes.DELETE("/delete/:id", adminOnly, rentalHandler.DeleteRental)
	}
}

// SetupDressRoutes sets up the dress catalogue routes.
func SetupDressRoutes(authenticatedGroup *gin.RouterGroup, dressHandler *handlers.DressHandler) {
	dressRoutes := authenticatedGroup.Group("/dress")
	staff := middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleUser)
	adminOnly := middleware.RoleAuthMiddleware(models.RoleAdmin)
	{
		dressRoutes.GET("", staff, dressHandler.GetDresses)
		dressRoutes.GET("/:id", staff, dressHandler.GetDressByID)
		dressRoutes.POST("/create", adminOnly, dressHandler.CreateDress)
		dressRoutes.PUT("/update/:id", adminOnly, dressHandler.UpdateDress)
		dressRoutes.DELETE("/delete/:id", adminOnly, dressHandler.DeleteDress)
	}
}

// SetupClientRoutes sets up the client routes.
func SetupClientRoutes(authenticatedGroup *gin.RouterGroup, clientHandler *handlers.ClientHandler) {
	clientRoutes := authenticatedGroup.Group("/client")
	staff := middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleUser)
	{
		clientRoutes.GET("", staff, clientHandler.GetClients)
		clientRoutes.GET("/client/:id", staff, clientHandler.GetClientByID)
		clientRoutes.POST("/create", staff, clientHandler.CreateClient)
		clientRoutes.PUT("/update/:id", staff, clientHandler.UpdateClient)
		clientRoutes.DELETE("/delete/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), clientHandler.DeleteClient)
	}
}

// SetupPromotionRoutes sets up the promotion routes.
func SetupPromotionRoutes(authenticatedGroup *gin.RouterGroup, promotionHandler *handlers.PromotionHandler) {
	promotionRoutes := authenticatedGroup.Group("/promotion")
	staff := middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleUser)
	adminOnly := middleware.RoleAuthMiddleware(models.RoleAdmin)
	{
		promotionRoutes.GET("", staff, promotionHandler.GetPromotions)
		promotionRoutes.GET("/promotion/:id", staff, promotionHandler.GetPromotionByID)
		promotionRoutes.POST("/create", adminOnly, promotionHandler.CreatePromotion)
		promotionRoutes.PUT("/update/:id", adminOnly, promotionHandler.UpdatePromotion)
		promotionRoutes.DELETE("/delete/:id", adminOnly, promotionHandler.DeletePromotion)
	}
}

// SetupUserRoutes sets up the user management routes. Admin only.
func SetupUserRoutes(authenticatedGroup *gin.RouterGroup, userHandler *handlers.UserHandler) {
	userRoutes := authenticatedGroup.Group("/user")
	userRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		userRoutes.GET("", userHandler.GetUsers)
		userRoutes.GET("/:id", userHandler.GetUserByID)
		userRoutes.POST("/create", userHandler.CreateUser)
		userRoutes.PUT("/update/:id", userHandler.UpdateUser)
		userRoutes.DELETE("/delete/:id", userHandler.DeleteUser)
	}
}
