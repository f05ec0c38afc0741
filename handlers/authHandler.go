package handlers

import (
	"errors"
	"fmt"

	"KuskoDento/models"
	"KuskoDento/services"
	"KuskoDento/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	UserService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{
		UserService: userService,
	}
}

// Login authenticates the user, persists the session marker and returns
// paseto tokens along with the public profile.
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserService.AuthenticateUser(ctx, credentials.Username, credentials.Password)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid username or password"})
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(user.ID, user.Role)
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("Failed to generate tokens: %v", err)})
		return
	}
	utils.SetAuthCookies(c, accessToken, refreshToken)

	user.Password = ""
	c.JSON(200, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"user":         user,
	})
}

// Session returns the persisted "currently logged in identity" marker, read
// at startup to decide initial routing.
func (h *AuthHandler) Session(c *gin.Context) {
	session, err := h.UserService.CurrentSession(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	if session == nil {
		c.JSON(200, gin.H{"authenticated": false})
		return
	}
	c.JSON(200, gin.H{"authenticated": true, "session": session})
}

// Logoff clears the session marker and the auth cookies.
func (h *AuthHandler) Logoff(c *gin.Context) {
	if err := h.UserService.Logout(c.Request.Context()); err != nil {
		internalError(c, err)
		return
	}
	utils.ClearAuthCookies(c)
	c.Status(200)
}

// RefreshToken issues a fresh access token from a still-valid refresh token
// cookie.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken, err := c.Cookie("refreshToken")
	if err != nil || refreshToken == "" {
		c.JSON(401, gin.H{"error": "Missing refresh token"})
		return
	}

	claims, err := utils.ValidateToken(refreshToken)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid refresh token"})
		return
	}

	accessToken, err := utils.GenerateAccessToken(claims.UserID, claims.Role)
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("Failed to generate token: %v", err)})
		return
	}
	utils.SetAuthCookies(c, accessToken, refreshToken)
	c.JSON(200, gin.H{"accessToken": accessToken})
}

// Register handles new user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.UserService.ValidateAndCreateUser(c.Request.Context(), &user); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("Validation failed: %v", err)})
		return
	}

	user.Password = ""
	c.JSON(201, user)
}

func (h *AuthHandler) GetAllUsers(c *gin.Context) {
	users, err := h.UserService.GetAllUsers(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	for i := range users {
		users[i].Password = ""
	}
	c.JSON(200, users)
}

func (h *AuthHandler) GetUserByID(c *gin.Context) {
	user, err := h.UserService.GetUserByID(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		internalError(c, err)
		return
	}
	if user == nil {
		c.JSON(404, gin.H{"error": "User not found"})
		return
	}
	user.Password = ""
	c.JSON(200, user)
}

// UpdateUserProfile replaces profile fields; the stored password hash is
// preserved.
func (h *AuthHandler) UpdateUserProfile(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	user.ID = c.Param("user_id")

	if err := h.UserService.UpdateUserProfile(c.Request.Context(), &user); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	user.Password = ""
	c.JSON(200, user)
}

// ChangePassword updates the stored hash after validating the new secret.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var data struct {
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.UserService.UpdateUserPassword(c.Request.Context(), c.Param("user_id"), data.NewPassword); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	c.Status(200)
}

// DeleteUser removes an account. Deleting the sole remaining user is
// refused so the system always keeps at least one account.
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	if err := h.UserService.DeleteUser(c.Request.Context(), c.Param("user_id")); err != nil {
		if errors.Is(err, services.ErrLastUser) {
			c.JSON(409, gin.H{"error": "No se puede eliminar el único usuario del sistema"})
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(204, gin.H{"message": "User deleted"})
}
