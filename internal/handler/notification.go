package handler

import (
	"ModelFlow/internal/dto"
	"ModelFlow/internal/service"
	"ModelFlow/utils"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Notifications lists the caller's notifications, newest first.
func Notifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	notifications, err := service.ListNotifications(utils.CurrentEmail(c), limit)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, notifications)
}

// MarkNotificationsRead marks the given notifications as read.
func MarkNotificationsRead(c *gin.Context) {
	var req dto.NotificationIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	updated, err := service.MarkNotificationsRead(utils.CurrentEmail(c), req.NotificationIDs)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, gin.H{"updated": updated})
}

// DeleteNotifications removes the given notifications.
func DeleteNotifications(c *gin.Context) {
	var req dto.NotificationIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	deleted, err := service.DeleteNotifications(utils.CurrentEmail(c), req.NotificationIDs)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, gin.H{"deleted": deleted})
}
