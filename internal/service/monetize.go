package service

import (
	"ModelFlow/config"
	"ModelFlow/internal/dto"
	"ModelFlow/internal/repo"
	"ModelFlow/model"
	"ModelFlow/utils"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PurchaseModel records a purchase and the matching earnings-ledger entry.
// Funds stay held until the release date passes.
func PurchaseModel(modelID uint64, buyerEmail string) (*model.Purchase, error) {
	var purchase model.Purchase
	err := repo.Db.Transaction(func(tx *gorm.DB) error {
		var m model.Model
		if err := tx.First(&m, modelID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("model %d: %w", modelID, utils.ErrNotFound)
			}
			return err
		}
		if m.Status != model.ModelStatusApproved {
			return fmt.Errorf("model is not purchasable: %w", utils.ErrBadRequest)
		}
		if m.AuthorEmail == buyerEmail {
			return fmt.Errorf("you cannot purchase your own model: %w", utils.ErrBadRequest)
		}

		now := time.Now()
		purchase = model.Purchase{
			ModelID:     modelID,
			ModelName:   m.Name,
			BuyerEmail:  buyerEmail,
			AuthorEmail: m.AuthorEmail,
			Price:       m.Price,
			OrderRef:    utils.GenOrderRef(),
			Status:      model.PurchaseStatusHeld,
			ReleaseAt:   now.Add(config.AppConfig.FundsHold),
		}
		if err := tx.Create(&purchase).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("you have already purchased this model: %w", utils.ErrConflict)
			}
			return err
		}

		notification := &model.Notification{
			UserEmail:      m.AuthorEmail,
			Type:           model.NotificationPurchase,
			Title:          "Model purchased",
			Message:        fmt.Sprintf("%s purchased your model %q.", buyerEmail, m.Name),
			RelatedModelID: &m.ID,
		}
		return tx.Create(notification).Error
	})
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// HasPurchased reports whether the buyer holds a purchase for the model.
func HasPurchased(modelID uint64, buyerEmail string) (bool, error) {
	var count int64
	err := repo.Db.Model(&model.Purchase{}).
		Where("model_id = ? AND buyer_email = ?", modelID, buyerEmail).
		Count(&count).Error
	return count > 0, err
}

// ListPurchases returns the buyer's purchases, newest first.
func ListPurchases(buyerEmail string) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := repo.Db.
		Where("buyer_email = ?", buyerEmail).
		Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}

// releaseDueFunds flips held ledger rows whose hold period has passed.
func releaseDueFunds(db *gorm.DB, authorEmail string) error {
	return db.Model(&model.Purchase{}).
		Where("author_email = ? AND status = ? AND release_at <= ?",
			authorEmail, model.PurchaseStatusHeld, time.Now()).
		UpdateColumn("status", model.PurchaseStatusReleased).Error
}

// EarningsHistory returns the author's ledger entries, newest first.
func EarningsHistory(authorEmail string) ([]model.Purchase, error) {
	if err := releaseDueFunds(repo.Db, authorEmail); err != nil {
		return nil, err
	}
	var entries []model.Purchase
	err := repo.Db.
		Where("author_email = ?", authorEmail).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// balanceFor computes the balance position against the given db handle so
// callers inside a transaction see their own consistent view.
func balanceFor(db *gorm.DB, user *model.User) (*dto.BalanceResponse, error) {
	if err := releaseDueFunds(db, user.Email); err != nil {
		return nil, err
	}

	var released, held, pending int64
	if err := db.Model(&model.Purchase{}).
		Where("author_email = ? AND status = ?", user.Email, model.PurchaseStatusReleased).
		Select("COALESCE(SUM(price), 0)").Scan(&released).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Purchase{}).
		Where("author_email = ? AND status = ?", user.Email, model.PurchaseStatusHeld).
		Select("COALESCE(SUM(price), 0)").Scan(&held).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.WithdrawalRequest{}).
		Where("user_email = ? AND status = ?", user.Email, model.WithdrawalStatusPending).
		Select("COALESCE(SUM(amount), 0)").Scan(&pending).Error; err != nil {
		return nil, err
	}

	available := released - user.WithdrawnAmount - pending
	if available < 0 {
		available = 0
	}
	return &dto.BalanceResponse{
		AvailableBalance:   available,
		ReleasedEarnings:   released,
		HeldEarnings:       held,
		WithdrawnAmount:    user.WithdrawnAmount,
		PendingWithdrawals: pending,
	}, nil
}

// AvailableBalance computes what the user can still withdraw: released
// earnings minus withdrawn and pending withdrawal amounts.
func AvailableBalance(userEmail string) (*dto.BalanceResponse, error) {
	user, err := FindUserByEmail(userEmail)
	if err != nil {
		return nil, err
	}
	return balanceFor(repo.Db, user)
}

// SubmitWithdrawal creates a pending withdrawal request. The amount may not
// exceed the available balance.
func SubmitWithdrawal(userEmail, paypalEmail string, amount int64) (*model.WithdrawalRequest, error) {
	paypalEmail = strings.TrimSpace(paypalEmail)
	if paypalEmail == "" || !strings.Contains(paypalEmail, "@") {
		return nil, fmt.Errorf("please enter a valid email address: %w", utils.ErrBadRequest)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be greater than 0: %w", utils.ErrBadRequest)
	}

	var request *model.WithdrawalRequest
	err := repo.Db.Transaction(func(tx *gorm.DB) error {
		// 锁住用户行, concurrent submissions for the same user validate in turn
		var user model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("email = ?", userEmail).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user %s: %w", userEmail, utils.ErrNotFound)
			}
			return err
		}
		balance, err := balanceFor(tx, &user)
		if err != nil {
			return err
		}
		if amount > balance.AvailableBalance {
			return fmt.Errorf("amount exceeds available balance: %w", utils.ErrBadRequest)
		}

		request = &model.WithdrawalRequest{
			UserEmail:   userEmail,
			PaypalEmail: paypalEmail,
			Amount:      amount,
			Status:      model.WithdrawalStatusPending,
			SubmittedAt: time.Now(),
		}
		return tx.Create(request).Error
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// ListWithdrawals returns withdrawal requests, optionally filtered by status.
func ListWithdrawals(status string) ([]model.WithdrawalRequest, error) {
	query := repo.Db.Model(&model.WithdrawalRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var requests []model.WithdrawalRequest
	err := query.Order("submitted_at DESC").Find(&requests).Error
	return requests, err
}

// ApproveWithdrawal applies a pending request. The status flip is conditioned
// on the row still being pending, so only the transaction that wins the flip
// applies the amount. 两个并发审批也只会入账一次.
func ApproveWithdrawal(requestID uint64) (*model.WithdrawalRequest, error) {
	var request model.WithdrawalRequest
	err := repo.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("withdrawal request %d: %w", requestID, utils.ErrNotFound)
			}
			return err
		}
		if request.Status != model.WithdrawalStatusPending {
			return fmt.Errorf("withdrawal request is already %s: %w", request.Status, utils.ErrConflict)
		}

		now := time.Now()
		res := tx.Model(&model.WithdrawalRequest{}).
			Where("id = ? AND status = ?", requestID, model.WithdrawalStatusPending).
			Updates(map[string]interface{}{
				"status":      model.WithdrawalStatusApproved,
				"approved_at": &now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("withdrawal request is no longer pending: %w", utils.ErrConflict)
		}

		res = tx.Model(&model.User{}).
			Where("email = ?", request.UserEmail).
			UpdateColumn("withdrawn_amount", gorm.Expr("withdrawn_amount + ?", request.Amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("user %s: %w", request.UserEmail, utils.ErrNotFound)
		}

		request.Status = model.WithdrawalStatusApproved
		request.ApprovedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// RejectWithdrawal moves a pending request to rejected.
func RejectWithdrawal(requestID uint64, reason string) (*model.WithdrawalRequest, error) {
	var request model.WithdrawalRequest
	err := repo.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("withdrawal request %d: %w", requestID, utils.ErrNotFound)
			}
			return err
		}
		if request.Status != model.WithdrawalStatusPending {
			return fmt.Errorf("withdrawal request is already %s: %w", request.Status, utils.ErrConflict)
		}
		res := tx.Model(&model.WithdrawalRequest{}).
			Where("id = ? AND status = ?", requestID, model.WithdrawalStatusPending).
			Updates(map[string]interface{}{
				"status":          model.WithdrawalStatusRejected,
				"rejected_reason": reason,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("withdrawal request is no longer pending: %w", utils.ErrConflict)
		}
		request.Status = model.WithdrawalStatusRejected
		request.RejectedReason = reason
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}
