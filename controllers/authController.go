package controllers

import (
	"KuskoDento/handlers"
	"KuskoDento/middlewares"
	"KuskoDento/models"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Handler *handlers.AuthHandler
}

// NewAuthController creates a new AuthController with the given AuthHandler
func NewAuthController(authHandler *handlers.AuthHandler) *AuthController {
	return &AuthController{
		Handler: authHandler,
	}
}

// RegisterRoutes initializes all authentication routes directly on the router
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	// Public routes: No authentication required
	router.POST("/auth/login", ac.Handler.Login)
	router.GET("/auth/session", ac.Handler.Session)

	// Protected routes: Requires a valid token
	authGroup := router.Group("/auth").Use(middlewares.TokenAuthMiddleware())
	{
		authGroup.POST("/logoff", ac.Handler.Logoff)
		authGroup.POST("/refresh-token", ac.Handler.RefreshToken)
	}

	// Admin routes: Requires a valid token and admin role
	adminGroup := router.Group("/auth/admin").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware(models.RoleAdmin),
	)
	{
		adminGroup.POST("/users", ac.Handler.Register)
		adminGroup.GET("/users", ac.Handler.GetAllUsers)
		adminGroup.GET("/users/:user_id", ac.Handler.GetUserByID)
		adminGroup.PUT("/users/:user_id", ac.Handler.UpdateUserProfile)
		adminGroup.PUT("/users/:user_id/password", ac.Handler.ChangePassword)
		adminGroup.DELETE("/users/:user_id", ac.Handler.DeleteUser)
	}
}
