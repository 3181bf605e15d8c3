package handler

import (
	"ModelFlow/internal/dto"
	"ModelFlow/internal/service"
	"ModelFlow/utils"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func automationIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid automation id"})
		return 0, false
	}
	return id, true
}

// UploadAutomation stores a new workflow automation.
func UploadAutomation(c *gin.Context) {
	var req dto.AutomationUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	automation, err := service.UploadAutomation(c.Request.Context(), utils.CurrentEmail(c), &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, automation)
}

// ListAutomations lists the caller's automations.
func ListAutomations(c *gin.Context) {
	automations, err := service.ListAutomations(utils.CurrentEmail(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, automations)
}

// GetAutomation returns one automation including its workflow definition.
func GetAutomation(c *gin.Context) {
	id, ok := automationIDParam(c)
	if !ok {
		return
	}
	automation, err := service.GetAutomation(utils.CurrentEmail(c), id)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, automation)
}

// UpdateAutomation applies partial updates to an automation.
func UpdateAutomation(c *gin.Context) {
	id, ok := automationIDParam(c)
	if !ok {
		return
	}
	var req dto.AutomationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	automation, err := service.UpdateAutomation(c.Request.Context(), utils.CurrentEmail(c), id, &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, automation)
}

// DeleteAutomation removes an automation.
func DeleteAutomation(c *gin.Context) {
	id, ok := automationIDParam(c)
	if !ok {
		return
	}
	if err := service.DeleteAutomation(utils.CurrentEmail(c), id); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, gin.H{"deleted": id})
}

// ToggleAutomation enables or disables an automation.
func ToggleAutomation(c *gin.Context) {
	id, ok := automationIDParam(c)
	if !ok {
		return
	}
	var req dto.AutomationToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "enabled flag required"})
		return
	}
	automation, err := service.ToggleAutomation(c.Request.Context(), utils.CurrentEmail(c), id, *req.Enabled)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, automation)
}

// ImportAutomation pushes an automation into the workflow engine.
func ImportAutomation(c *gin.Context) {
	id, ok := automationIDParam(c)
	if !ok {
		return
	}
	automation, err := service.ImportAutomation(c.Request.Context(), utils.CurrentEmail(c), id)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, automation)
}

// ExecuteAutomation proxies a run through the workflow engine.
func ExecuteAutomation(c *gin.Context) {
	id, ok := automationIDParam(c)
	if !ok {
		return
	}
	var req dto.AutomationExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	result, err := service.ExecuteAutomation(c.Request.Context(), utils.CurrentEmail(c), id, req.Inputs)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, result)
}

// SearchAutomations ranks the catalog by semantic similarity to a query.
func SearchAutomations(c *gin.Context) {
	var req dto.AutomationSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	results, err := service.SearchAutomations(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, results)
}
