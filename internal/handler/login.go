package handler

import (
	"ModelFlow/internal/dto"
	"ModelFlow/internal/service"
	"ModelFlow/model"
	"ModelFlow/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Login authenticates a user by email and returns a token.
func Login(c *gin.Context) {
	var loginRequest dto.LoginRequest
	if err := c.ShouldBind(&loginRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	var user *model.User
	var err error
	if user, err = service.FindUserByEmail(loginRequest.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account not found"})
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "account not activated"})
		return
	}
	if err = service.CheckPassword(loginRequest.Email, loginRequest.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wrong password"})
		return
	}
	token, err := utils.GenerateToken(user.ID, user.UserName, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "success",
		"token":   token,
		"user":    user,
	})
}
