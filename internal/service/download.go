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

	"gorm.io/gorm"
)

type downloadTarget struct {
	AuthorEmail string
	Status      string
	Price       int64
	StorageType string
	Bucket      string
	ObjectName  string
	URL         string
	FileName    string
	Archived    bool
}

// DownloadModel issues a short-lived signed URL for a model's file. The live
// table is checked first, then the archive. Priced models are limited to the
// author, admins and purchasers.
func DownloadModel(ctx context.Context, id uint64, requesterEmail string, isAdmin bool) (*dto.DownloadResponse, error) {
	target, err := findDownloadTarget(id)
	if err != nil {
		return nil, err
	}

	if !target.Archived && target.Status != model.ModelStatusApproved &&
		target.AuthorEmail != requesterEmail && !isAdmin {
		return nil, fmt.Errorf("model %d: %w", id, utils.ErrNotFound)
	}

	if target.Price > 0 && target.AuthorEmail != requesterEmail && !isAdmin {
		purchased, err := HasPurchased(id, requesterEmail)
		if err != nil {
			return nil, err
		}
		if !purchased {
			return nil, fmt.Errorf("purchase required to download this model: %w", utils.ErrForbidden)
		}
	}
	if target.Archived && target.AuthorEmail != requesterEmail && !isAdmin {
		purchased, err := HasPurchased(id, requesterEmail)
		if err != nil {
			return nil, err
		}
		if !purchased {
			return nil, fmt.Errorf("archived models are limited to owners and purchasers: %w", utils.ErrForbidden)
		}
	}

	expiry := config.AppConfig.SignedURLExpiry
	if target.StorageType == model.StorageTypeDrive {
		if target.URL == "" {
			return nil, fmt.Errorf("no file path found for this model: %w", utils.ErrBadRequest)
		}
		return &dto.DownloadResponse{DownloadURL: target.URL, ExpiresIn: int(expiry.Seconds())}, nil
	}

	if target.ObjectName == "" {
		return nil, fmt.Errorf("no file path found for this model: %w", utils.ErrBadRequest)
	}
	if storage.Default == nil {
		return nil, fmt.Errorf("storage not initialized: %w", utils.ErrUpstream)
	}

	params := map[string]string{
		"response-content-disposition": fmt.Sprintf("attachment; filename=\"%s\"", utils.SanitizeHeaderFilename(target.FileName)),
	}
	signedURL, err := storage.Default.PresignedGetObjectWithResponse(ctx, target.Bucket, target.ObjectName, expiry, params)
	if err != nil {
		return nil, fmt.Errorf("failed to generate download link: %w", utils.ErrUpstream)
	}

	if !target.Archived {
		_ = repo.Db.Model(&model.Model{}).
			Where("id = ?", id).
			UpdateColumn("downloads", gorm.Expr("downloads + 1")).Error
	}
	return &dto.DownloadResponse{DownloadURL: signedURL, ExpiresIn: int(expiry.Seconds())}, nil
}

func findDownloadTarget(id uint64) (*downloadTarget, error) {
	var m model.Model
	err := repo.Db.First(&m, id).Error
	if err == nil {
		return &downloadTarget{
			AuthorEmail: m.AuthorEmail,
			Status:      m.Status,
			Price:       m.Price,
			StorageType: m.StorageType,
			Bucket:      m.Bucket,
			ObjectName:  m.ObjectName,
			URL:         m.URL,
			FileName:    m.FileName,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var archived model.ArchivedModel
	if err := repo.Db.First(&archived, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("model %d: %w", id, utils.ErrNotFound)
		}
		return nil, err
	}
	return &downloadTarget{
		AuthorEmail: archived.AuthorEmail,
		Price:       archived.Price,
		StorageType: archived.StorageType,
		Bucket:      archived.Bucket,
		ObjectName:  archived.ObjectName,
		URL:         archived.URL,
		FileName:    archived.FileName,
		Archived:    true,
	}, nil
}
