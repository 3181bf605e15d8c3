package service_test

import (
	"ModelFlow/internal/service"
	"ModelFlow/model"
	"ModelFlow/utils"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{
		UserName: email,
		Password: "hashed",
		Email:    email,
		Role:     model.RoleUser,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestPurchaseModel(t *testing.T) {
	db := setupTestDB(t)
	m := createApprovedModel(t, db, "paid-model", "author@example.com", 1999)

	purchase, err := service.PurchaseModel(m.ID, "buyer@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1999), purchase.Price)
	assert.Equal(t, model.PurchaseStatusHeld, purchase.Status)
	assert.True(t, purchase.ReleaseAt.After(time.Now()))
	assert.NotEmpty(t, purchase.OrderRef)

	// Author is notified
	var notif model.Notification
	require.NoError(t, db.Where("user_email = ?", "author@example.com").First(&notif).Error)
	assert.Equal(t, model.NotificationPurchase, notif.Type)
}

func TestPurchaseModelTwiceConflicts(t *testing.T) {
	db := setupTestDB(t)
	m := createApprovedModel(t, db, "paid-model", "author@example.com", 1999)

	_, err := service.PurchaseModel(m.ID, "buyer@example.com")
	require.NoError(t, err)

	_, err = service.PurchaseModel(m.ID, "buyer@example.com")
	require.ErrorIs(t, err, utils.ErrConflict)
}

func TestPurchaseOwnModelRejected(t *testing.T) {
	db := setupTestDB(t)
	m := createApprovedModel(t, db, "paid-model", "author@example.com", 1999)

	_, err := service.PurchaseModel(m.ID, "author@example.com")
	require.ErrorIs(t, err, utils.ErrBadRequest)
}

func TestPurchasePendingModelRejected(t *testing.T) {
	db := setupTestDB(t)
	m := createPendingModel(t, db, "waiting", "author@example.com")

	_, err := service.PurchaseModel(m.ID, "buyer@example.com")
	require.ErrorIs(t, err, utils.ErrBadRequest)
}

func TestAvailableBalanceReleasesDueFunds(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "author@example.com")
	m := createApprovedModel(t, db, "paid-model", "author@example.com", 1000)

	purchase, err := service.PurchaseModel(m.ID, "buyer@example.com")
	require.NoError(t, err)

	// Still held
	balance, err := service.AvailableBalance("author@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance.AvailableBalance)
	assert.Equal(t, int64(1000), balance.HeldEarnings)

	// Hold period over
	require.NoError(t, db.Model(&model.Purchase{}).
		Where("id = ?", purchase.ID).
		Update("release_at", time.Now().Add(-time.Hour)).Error)

	balance, err = service.AvailableBalance("author@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance.AvailableBalance)
	assert.Equal(t, int64(1000), balance.ReleasedEarnings)
	assert.Equal(t, int64(0), balance.HeldEarnings)
}

func TestSubmitWithdrawalValidation(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "author@example.com")

	_, err := service.SubmitWithdrawal("author@example.com", "not-an-email", 100)
	require.ErrorIs(t, err, utils.ErrBadRequest)

	_, err = service.SubmitWithdrawal("author@example.com", "pay@example.com", 0)
	require.ErrorIs(t, err, utils.ErrBadRequest)

	// No earnings yet, so any amount exceeds the balance
	_, err = service.SubmitWithdrawal("author@example.com", "pay@example.com", 100)
	require.ErrorIs(t, err, utils.ErrBadRequest)
}

func releasedEarnings(t *testing.T, db *gorm.DB, author string, amount int64) {
	t.Helper()
	m := createApprovedModel(t, db, "paid-"+author, author, amount)
	purchase, err := service.PurchaseModel(m.ID, "buyer@example.com")
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.Purchase{}).
		Where("id = ?", purchase.ID).
		Update("release_at", time.Now().Add(-time.Hour)).Error)
}

func TestSubmitWithdrawalAgainstBalance(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "author@example.com")
	releasedEarnings(t, db, "author@example.com", 1000)

	request, err := service.SubmitWithdrawal("author@example.com", "pay@example.com", 600)
	require.NoError(t, err)
	assert.Equal(t, model.WithdrawalStatusPending, request.Status)

	// Pending withdrawals count against the available balance
	_, err = service.SubmitWithdrawal("author@example.com", "pay@example.com", 600)
	require.ErrorIs(t, err, utils.ErrBadRequest)

	_, err = service.SubmitWithdrawal("author@example.com", "pay@example.com", 400)
	require.NoError(t, err)
}

func TestApproveWithdrawal(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "author@example.com")
	releasedEarnings(t, db, "author@example.com", 1000)

	request, err := service.SubmitWithdrawal("author@example.com", "pay@example.com", 600)
	require.NoError(t, err)

	approved, err := service.ApproveWithdrawal(request.ID)
	require.NoError(t, err)
	assert.Equal(t, model.WithdrawalStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)

	var user model.User
	require.NoError(t, db.Where("email = ?", "author@example.com").First(&user).Error)
	assert.Equal(t, int64(600), user.WithdrawnAmount)

	balance, err := service.AvailableBalance("author@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(400), balance.AvailableBalance)
}

func TestApproveWithdrawalTwiceConflicts(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "author@example.com")
	releasedEarnings(t, db, "author@example.com", 1000)

	request, err := service.SubmitWithdrawal("author@example.com", "pay@example.com", 600)
	require.NoError(t, err)

	_, err = service.ApproveWithdrawal(request.ID)
	require.NoError(t, err)

	_, err = service.ApproveWithdrawal(request.ID)
	require.ErrorIs(t, err, utils.ErrConflict)

	// The amount was applied exactly once
	var user model.User
	require.NoError(t, db.Where("email = ?", "author@example.com").First(&user).Error)
	assert.Equal(t, int64(600), user.WithdrawnAmount)
}

func TestRejectWithdrawal(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "author@example.com")
	releasedEarnings(t, db, "author@example.com", 1000)

	request, err := service.SubmitWithdrawal("author@example.com", "pay@example.com", 600)
	require.NoError(t, err)

	rejected, err := service.RejectWithdrawal(request.ID, "account mismatch")
	require.NoError(t, err)
	assert.Equal(t, model.WithdrawalStatusRejected, rejected.Status)

	// Rejected requests free the balance again
	balance, err := service.AvailableBalance("author@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance.AvailableBalance)

	var user model.User
	require.NoError(t, db.Where("email = ?", "author@example.com").First(&user).Error)
	assert.Zero(t, user.WithdrawnAmount)
}

func TestHasPurchased(t *testing.T) {
	db := setupTestDB(t)
	m := createApprovedModel(t, db, "paid-model", "author@example.com", 1999)

	has, err := service.HasPurchased(m.ID, "buyer@example.com")
	require.NoError(t, err)
	assert.False(t, has)

	_, err = service.PurchaseModel(m.ID, "buyer@example.com")
	require.NoError(t, err)

	has, err = service.HasPurchased(m.ID, "buyer@example.com")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestApproveWithdrawalConcurrentAppliesOnce(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "author@example.com")
	releasedEarnings(t, db, "author@example.com", 1000)

	request, err := service.SubmitWithdrawal("author@example.com", "pay@example.com", 600)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = service.ApproveWithdrawal(request.ID)
		}()
	}
	wg.Wait()

	// The amount lands exactly once no matter which approval wins
	var user model.User
	require.NoError(t, db.Where("email = ?", "author@example.com").First(&user).Error)
	assert.Equal(t, int64(600), user.WithdrawnAmount)

	var updated model.WithdrawalRequest
	require.NoError(t, db.First(&updated, request.ID).Error)
	assert.Equal(t, model.WithdrawalStatusApproved, updated.Status)
}

func TestSubmitWithdrawalUnknownUser(t *testing.T) {
	setupTestDB(t)

	_, err := service.SubmitWithdrawal("ghost@example.com", "pay@example.com", 100)
	require.ErrorIs(t, err, utils.ErrNotFound)
}
