package service

import (
	"ModelFlow/internal/dto"
	"ModelFlow/internal/repo"
	"ModelFlow/model"
	"ModelFlow/utils"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// LikeModel records a like. The like row and the counter move in one
// transaction so the counter always equals the row count, and a duplicate
// like from the same user is a conflict.
func LikeModel(ctx context.Context, modelID uint64, userEmail string) (*dto.LikeResponse, error) {
	var likes int64
	err := repo.Db.Transaction(func(tx *gorm.DB) error {
		var m model.Model
		if err := tx.First(&m, modelID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("model %d: %w", modelID, utils.ErrNotFound)
			}
			return err
		}

		like := &model.ModelLike{ModelID: modelID, UserEmail: userEmail}
		if err := tx.Create(like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("model already liked: %w", utils.ErrConflict)
			}
			return err
		}
		if err := tx.Model(&model.Model{}).
			Where("id = ?", modelID).
			UpdateColumn("likes", gorm.Expr("likes + 1")).Error; err != nil {
			return err
		}
		// 回读 the stored counter, not the pre-update snapshot
		return tx.Model(&model.Model{}).
			Where("id = ?", modelID).
			Select("likes").Scan(&likes).Error
	})
	if err != nil {
		return nil, err
	}
	if repo.Redis != nil {
		_ = utils.InvalidateModelDetailCache(ctx, modelID)
		_ = utils.InvalidateModelListCache(ctx)
	}
	return &dto.LikeResponse{Liked: true, Likes: likes}, nil
}

// UnlikeModel removes a like, decrementing the counter in the same
// transaction. Unliking a model never liked is not found.
func UnlikeModel(ctx context.Context, modelID uint64, userEmail string) (*dto.LikeResponse, error) {
	var likes int64
	err := repo.Db.Transaction(func(tx *gorm.DB) error {
		var m model.Model
		if err := tx.First(&m, modelID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("model %d: %w", modelID, utils.ErrNotFound)
			}
			return err
		}

		res := tx.Where("model_id = ? AND user_email = ?", modelID, userEmail).
			Delete(&model.ModelLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("like: %w", utils.ErrNotFound)
		}
		if err := tx.Model(&model.Model{}).
			Where("id = ? AND likes > 0", modelID).
			UpdateColumn("likes", gorm.Expr("likes - 1")).Error; err != nil {
			return err
		}
		return tx.Model(&model.Model{}).
			Where("id = ?", modelID).
			Select("likes").Scan(&likes).Error
	})
	if err != nil {
		return nil, err
	}
	if repo.Redis != nil {
		_ = utils.InvalidateModelDetailCache(ctx, modelID)
		_ = utils.InvalidateModelListCache(ctx)
	}
	return &dto.LikeResponse{Liked: false, Likes: likes}, nil
}

// LikeStatus reports whether the user liked the model and the current count.
func LikeStatus(modelID uint64, userEmail string) (*dto.LikeResponse, error) {
	var m model.Model
	if err := repo.Db.First(&m, modelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("model %d: %w", modelID, utils.ErrNotFound)
		}
		return nil, err
	}
	var count int64
	if err := repo.Db.Model(&model.ModelLike{}).
		Where("model_id = ? AND user_email = ?", modelID, userEmail).
		Count(&count).Error; err != nil {
		return nil, err
	}
	return &dto.LikeResponse{Liked: count > 0, Likes: m.Likes}, nil
}
