package service

import (
	"ModelFlow/config"
	"ModelFlow/internal/repo"
	"ModelFlow/model"
	"ModelFlow/utils"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

// ArchiveModel moves a model into cold storage. The archived copy keeps the
// original id and a trimmed field subset; copy and delete happen in one
// transaction so the model never exists in both tables.
func ArchiveModel(ctx context.Context, id uint64, requesterEmail string) (*model.ArchivedModel, error) {
	var archived model.ArchivedModel
	now := time.Now()
	deletionAt := now.Add(config.AppConfig.ArchiveRetention)

	err := repo.Db.Transaction(func(tx *gorm.DB) error {
		var m model.Model
		if err := tx.First(&m, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("model %d: %w", id, utils.ErrNotFound)
			}
			return err
		}
		if m.AuthorEmail != requesterEmail {
			return fmt.Errorf("you can only archive your own models: %w", utils.ErrForbidden)
		}

		archived = model.ArchivedModel{
			ID:                  m.ID,
			Name:                m.Name,
			AuthorEmail:         m.AuthorEmail,
			Price:               m.Price,
			StorageType:         m.StorageType,
			Bucket:              m.Bucket,
			ObjectName:          m.ObjectName,
			URL:                 m.URL,
			FileName:            m.FileName,
			FileSize:            m.FileSize,
			MimeType:            m.MimeType,
			UploadedAt:          m.UploadedAt,
			ScheduledDeletionAt: deletionAt,
			ArchivedAt:          now,
			CreatedAt:           m.CreatedAt,
		}
		if err := tx.Create(&archived).Error; err != nil {
			return err
		}
		if err := tx.Where("model_id = ?", id).Delete(&model.ModelLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Model{}, id).Error
	})
	if err != nil {
		return nil, err
	}

	if repo.Redis != nil {
		if err := repo.ScheduleArchivePurge(ctx, id, config.AppConfig.ArchiveRetention); err != nil {
			// 过期回收由 worker 的周期清理兜底
			log.Printf("schedule archive purge %d failed: %v", id, err)
		}
		_ = utils.InvalidateModelDetailCache(ctx, id)
		_ = utils.InvalidateModelListCache(ctx)
	}
	return &archived, nil
}

// ListArchivedModels returns the requester's archived models.
func ListArchivedModels(authorEmail string) ([]model.ArchivedModel, error) {
	var archived []model.ArchivedModel
	err := repo.Db.
		Where("author_email = ?", authorEmail).
		Order("archived_at DESC").
		Find(&archived).Error
	return archived, err
}

// PurgeOverdueArchives removes archived models past their scheduled deletion
// date. Backstop for missed redis expiry events.
func PurgeOverdueArchives(ctx context.Context) (int, error) {
	var overdue []model.ArchivedModel
	if err := repo.Db.
		Where("scheduled_deletion_at <= ?", time.Now()).
		Find(&overdue).Error; err != nil {
		return 0, err
	}
	purged := 0
	for _, archived := range overdue {
		if err := repo.PurgeArchivedModel(ctx, archived.ID); err != nil {
			log.Printf("purge archived model %d failed: %v", archived.ID, err)
			continue
		}
		purged++
	}
	return purged, nil
}
