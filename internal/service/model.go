package service

import (
	"ModelFlow/config"
	"ModelFlow/internal/dto"
	"ModelFlow/internal/repo"
	"ModelFlow/internal/storage"
	"ModelFlow/model"
	"ModelFlow/utils"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"gorm.io/gorm"
)

// SubmitModel stores an uploaded model file and creates the pending record.
// Zip uploads stream into object storage; drive uploads keep the external link.
func SubmitModel(
	ctx context.Context,
	form *dto.ModelUploadForm,
	authorEmail string,
	reader io.Reader,
	fileName string,
	fileSize int64,
	mimeType string,
) (*model.Model, error) {
	if form.Price < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", utils.ErrBadRequest)
	}
	tags := normalizeTags(form.Tags)
	if tags == "" {
		return nil, fmt.Errorf("at least one tag is required: %w", utils.ErrBadRequest)
	}

	m := &model.Model{
		Name:        strings.TrimSpace(form.Name),
		AuthorEmail: authorEmail,
		Description: form.Description,
		Features:    form.Features,
		UseCases:    form.UseCases,
		Setup:       form.Setup,
		Tags:        tags,
		ImgURL:      form.ImgURL,
		Price:       form.Price,
		Status:      model.ModelStatusPending,
	}

	now := time.Now()
	switch form.UploadType {
	case model.StorageTypeZip:
		if reader == nil || fileName == "" {
			return nil, fmt.Errorf("file is required for zip uploads: %w", utils.ErrBadRequest)
		}
		if storage.Default == nil {
			return nil, fmt.Errorf("storage not initialized: %w", utils.ErrUpstream)
		}
		bucket := config.AppConfig.BucketName
		objectName := fmt.Sprintf("models/%s/%s/%s", authorEmail, utils.GetToken(), path.Base(fileName))
		if err := storage.Default.PutObject(ctx, bucket, objectName, reader, fileSize, storage.PutOptions{
			ContentType: mimeType,
		}); err != nil {
			return nil, fmt.Errorf("store model file: %w", utils.ErrUpstream)
		}
		m.StorageType = model.StorageTypeZip
		m.Bucket = bucket
		m.ObjectName = objectName
		m.FileName = path.Base(fileName)
		m.FileSize = fileSize
		m.MimeType = mimeType
		m.UploadedAt = &now
	case model.StorageTypeDrive:
		if strings.TrimSpace(form.DriveLink) == "" {
			return nil, fmt.Errorf("drive link is required for drive uploads: %w", utils.ErrBadRequest)
		}
		m.StorageType = model.StorageTypeDrive
		m.URL = strings.TrimSpace(form.DriveLink)
		m.FileName = path.Base(m.URL)
		m.UploadedAt = &now
	default:
		return nil, fmt.Errorf("unknown upload type %q: %w", form.UploadType, utils.ErrBadRequest)
	}

	if err := repo.Db.Create(m).Error; err != nil {
		// 上传成功但落库失败 回收对象避免孤儿文件
		if m.ObjectName != "" && storage.Default != nil {
			_ = storage.Default.RemoveObject(ctx, m.Bucket, m.ObjectName)
		}
		return nil, err
	}
	return m, nil
}

func normalizeTags(raw string) string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return strings.Join(out, ",")
}

// ListApprovedModels returns approved models, newest first, with caching.
func ListApprovedModels(ctx context.Context, page, pageSize int) (*dto.ModelListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	if repo.Redis != nil {
		if cached, ok := utils.GetModelListFromCache(ctx, page, pageSize); ok {
			return &dto.ModelListResponse{Models: cached.Models, Total: cached.Total}, nil
		}
	}

	var models []model.Model
	var total int64
	query := repo.Db.Model(&model.Model{}).Where("status = ?", model.ModelStatusApproved)
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&models).Error; err != nil {
		return nil, err
	}

	if repo.Redis != nil {
		_ = utils.SetModelListToCache(ctx, page, pageSize, &utils.ModelListCache{
			Models: models,
			Total:  total,
		}, time.Minute)
	}
	return &dto.ModelListResponse{Models: models, Total: total}, nil
}

// ListUserModels returns every model owned by the author, any status.
func ListUserModels(authorEmail string) ([]model.Model, error) {
	var models []model.Model
	err := repo.Db.
		Where("author_email = ?", authorEmail).
		Order("created_at DESC").
		Find(&models).Error
	return models, err
}

// GetModel returns a model by id. Non-approved models are visible only to
// their author and admins.
func GetModel(ctx context.Context, id uint64, requesterEmail string, isAdmin bool) (*model.Model, error) {
	var m model.Model
	if repo.Redis != nil {
		if cached, ok := utils.GetModelDetailFromCache(ctx, id); ok {
			m = *cached
		}
	}
	if m.ID == 0 {
		if err := repo.Db.First(&m, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("model %d: %w", id, utils.ErrNotFound)
			}
			return nil, err
		}
		if repo.Redis != nil {
			_ = utils.SetModelDetailToCache(ctx, id, &m, time.Minute)
		}
	}
	if m.Status != model.ModelStatusApproved && m.AuthorEmail != requesterEmail && !isAdmin {
		return nil, fmt.Errorf("model %d: %w", id, utils.ErrNotFound)
	}
	return &m, nil
}

// DeleteModel removes a model. Only the author or an admin may delete.
func DeleteModel(ctx context.Context, id uint64, requesterEmail string, isAdmin bool) error {
	var m model.Model
	if err := repo.Db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("model %d: %w", id, utils.ErrNotFound)
		}
		return err
	}
	if m.AuthorEmail != requesterEmail && !isAdmin {
		return fmt.Errorf("only the author can delete a model: %w", utils.ErrForbidden)
	}

	err := repo.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("model_id = ?", id).Delete(&model.ModelLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Model{}, id).Error
	})
	if err != nil {
		return err
	}

	if m.StorageType == model.StorageTypeZip && m.ObjectName != "" && storage.Default != nil {
		if rmErr := storage.Default.RemoveObject(ctx, m.Bucket, m.ObjectName); rmErr != nil {
			// 行已删除 对象清理失败只记录
			log.Printf("remove object %s/%s failed: %v", m.Bucket, m.ObjectName, rmErr)
		}
	}
	if repo.Redis != nil {
		_ = utils.InvalidateModelDetailCache(ctx, id)
		_ = utils.InvalidateModelListCache(ctx)
	}
	return nil
}

// ListPendingModels returns models awaiting review, newest first.
func ListPendingModels() ([]model.Model, error) {
	var models []model.Model
	err := repo.Db.
		Where("status = ?", model.ModelStatusPending).
		Order("created_at DESC").
		Find(&models).Error
	return models, err
}

// ReviewModel approves or rejects a pending model and notifies the author.
// Only pending models transition; re-reviewing is a conflict.
func ReviewModel(ctx context.Context, id uint64, action, rejectionReason string) (*model.Model, error) {
	if action != "approve" && action != "reject" {
		return nil, fmt.Errorf("action must be approve or reject: %w", utils.ErrBadRequest)
	}

	var m model.Model
	err := repo.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("model %d: %w", id, utils.ErrNotFound)
			}
			return err
		}
		if m.Status != model.ModelStatusPending {
			return fmt.Errorf("model %d is already %s: %w", id, m.Status, utils.ErrConflict)
		}

		updates := map[string]interface{}{}
		notification := &model.Notification{
			UserEmail:      m.AuthorEmail,
			RelatedModelID: &m.ID,
		}
		if action == "approve" {
			m.Status = model.ModelStatusApproved
			updates["status"] = model.ModelStatusApproved
			notification.Type = model.NotificationModelApproval
			notification.Title = "Model approved"
			notification.Message = fmt.Sprintf("Your model %q has been approved and is now live.", m.Name)
		} else {
			m.Status = model.ModelStatusRejected
			m.RejectionReason = rejectionReason
			updates["status"] = model.ModelStatusRejected
			updates["rejection_reason"] = rejectionReason
			notification.Type = model.NotificationModelRejection
			notification.Title = "Model rejected"
			notification.Message = fmt.Sprintf("Your model %q was rejected. %s", m.Name, rejectionReason)
		}

		if err := tx.Model(&model.Model{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Create(notification).Error
	})
	if err != nil {
		return nil, err
	}

	if repo.Redis != nil {
		_ = utils.InvalidateModelDetailCache(ctx, id)
		_ = utils.InvalidateModelListCache(ctx)
	}
	return &m, nil
}
