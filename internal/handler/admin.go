package handler

import (
	"ModelFlow/internal/dto"
	"ModelFlow/internal/service"
	"ModelFlow/internal/task"
	"ModelFlow/model"
	"ModelFlow/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PendingModels lists submissions waiting for review.
func PendingModels(c *gin.Context) {
	models, err := service.ListPendingModels()
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, models)
}

// ReviewModel approves or rejects a pending submission and mails the author.
func ReviewModel(c *gin.Context) {
	id, ok := modelIDParam(c)
	if !ok {
		return
	}
	var req dto.ReviewModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	m, err := service.ReviewModel(c.Request.Context(), id, req.Action, req.RejectionReason)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	msg := task.EmailMessage{
		To:        m.AuthorEmail,
		ModelName: m.Name,
	}
	if m.Status == model.ModelStatusApproved {
		msg.Kind = task.EmailModelApproved
	} else {
		msg.Kind = task.EmailModelRejected
		msg.Reason = req.RejectionReason
	}
	task.EnqueueEmail(c.Request.Context(), msg)

	utils.Success(c, m)
}

// PendingWithdrawals lists withdrawal requests, optionally filtered by status.
func PendingWithdrawals(c *gin.Context) {
	status := c.DefaultQuery("status", model.WithdrawalStatusPending)
	requests, err := service.ListWithdrawals(status)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, requests)
}

// ApproveWithdrawal marks a pending withdrawal as paid out.
func ApproveWithdrawal(c *gin.Context) {
	var req dto.WithdrawApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	request, err := service.ApproveWithdrawal(req.RequestID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, request)
}

// RejectWithdrawal declines a pending withdrawal.
func RejectWithdrawal(c *gin.Context) {
	var req dto.WithdrawRejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	request, err := service.RejectWithdrawal(req.RequestID, req.Reason)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, request)
}
