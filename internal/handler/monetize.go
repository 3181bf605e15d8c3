package handler

import (
	"ModelFlow/internal/dto"
	"ModelFlow/internal/service"
	"ModelFlow/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Earnings returns the caller's earnings ledger.
func Earnings(c *gin.Context) {
	entries, err := service.EarningsHistory(utils.CurrentEmail(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, entries)
}

// PurchasedModels lists the caller's purchases.
func PurchasedModels(c *gin.Context) {
	purchases, err := service.ListPurchases(utils.CurrentEmail(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, purchases)
}

// Balance returns the caller's withdrawable balance breakdown.
func Balance(c *gin.Context) {
	balance, err := service.AvailableBalance(utils.CurrentEmail(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, balance)
}

// CreateWithdrawal submits a withdrawal request against the available balance.
func CreateWithdrawal(c *gin.Context) {
	var req dto.WithdrawCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	request, err := service.SubmitWithdrawal(utils.CurrentEmail(c), req.PaypalEmail, req.Amount)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, request)
}
