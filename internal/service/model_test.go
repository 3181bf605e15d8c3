package service_test

import (
	"ModelFlow/internal/dto"
	"ModelFlow/internal/service"
	"ModelFlow/model"
	"ModelFlow/utils"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitModelDriveLink(t *testing.T) {
	db := setupTestDB(t)
	form := &dto.ModelUploadForm{
		Name:        "whisper-small",
		Description: "speech to text",
		Tags:        " asr , Audio ",
		Price:       500,
		UploadType:  model.StorageTypeDrive,
		DriveLink:   "https://drive.example.com/whisper",
	}

	m, err := service.SubmitModel(context.Background(), form, "author@example.com", nil, "", 0, "")
	require.NoError(t, err)
	assert.Equal(t, model.ModelStatusPending, m.Status)
	assert.Equal(t, "ASR,AUDIO", m.Tags)
	assert.Equal(t, model.StorageTypeDrive, m.StorageType)
	assert.Equal(t, "https://drive.example.com/whisper", m.URL)

	var stored model.Model
	require.NoError(t, db.First(&stored, m.ID).Error)
	assert.Equal(t, model.ModelStatusPending, stored.Status)
}

func TestSubmitModelValidation(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	_, err := service.SubmitModel(ctx, &dto.ModelUploadForm{
		Name: "x", Description: "d", Tags: "nlp", Price: -1,
		UploadType: model.StorageTypeDrive, DriveLink: "https://x",
	}, "a@example.com", nil, "", 0, "")
	require.ErrorIs(t, err, utils.ErrBadRequest)

	_, err = service.SubmitModel(ctx, &dto.ModelUploadForm{
		Name: "x", Description: "d", Tags: " , ",
		UploadType: model.StorageTypeDrive, DriveLink: "https://x",
	}, "a@example.com", nil, "", 0, "")
	require.ErrorIs(t, err, utils.ErrBadRequest)

	_, err = service.SubmitModel(ctx, &dto.ModelUploadForm{
		Name: "x", Description: "d", Tags: "nlp",
		UploadType: model.StorageTypeDrive,
	}, "a@example.com", nil, "", 0, "")
	require.ErrorIs(t, err, utils.ErrBadRequest)

	_, err = service.SubmitModel(ctx, &dto.ModelUploadForm{
		Name: "x", Description: "d", Tags: "nlp",
		UploadType: "tarball",
	}, "a@example.com", nil, "", 0, "")
	require.ErrorIs(t, err, utils.ErrBadRequest)
}

func TestListApprovedModelsOnlyApproved(t *testing.T) {
	db := setupTestDB(t)
	createApprovedModel(t, db, "live", "author@example.com", 0)
	createPendingModel(t, db, "waiting", "author@example.com")

	resp, err := service.ListApprovedModels(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Models, 1)
	assert.Equal(t, "live", resp.Models[0].Name)
}

func TestGetModelVisibility(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	pending := createPendingModel(t, db, "waiting", "author@example.com")

	// Author sees their pending model
	m, err := service.GetModel(ctx, pending.ID, "author@example.com", false)
	require.NoError(t, err)
	assert.Equal(t, "waiting", m.Name)

	// Admin sees it too
	_, err = service.GetModel(ctx, pending.ID, "admin@example.com", true)
	require.NoError(t, err)

	// Anyone else gets not found, not forbidden
	_, err = service.GetModel(ctx, pending.ID, "stranger@example.com", false)
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestDeleteModelOwnership(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	m := createApprovedModel(t, db, "to-delete", "author@example.com", 0)

	err := service.DeleteModel(ctx, m.ID, "stranger@example.com", false)
	require.ErrorIs(t, err, utils.ErrForbidden)

	require.NoError(t, service.DeleteModel(ctx, m.ID, "author@example.com", false))

	var count int64
	require.NoError(t, db.Model(&model.Model{}).Where("id = ?", m.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteModelRemovesLikes(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	m := createApprovedModel(t, db, "to-delete", "author@example.com", 0)
	_, err := service.LikeModel(ctx, m.ID, "fan@example.com")
	require.NoError(t, err)

	require.NoError(t, service.DeleteModel(ctx, m.ID, "admin@example.com", true))

	var likes int64
	require.NoError(t, db.Model(&model.ModelLike{}).Where("model_id = ?", m.ID).Count(&likes).Error)
	assert.Zero(t, likes)
}

func TestReviewModelApprove(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	pending := createPendingModel(t, db, "waiting", "author@example.com")

	m, err := service.ReviewModel(ctx, pending.ID, "approve", "")
	require.NoError(t, err)
	assert.Equal(t, model.ModelStatusApproved, m.Status)

	var notif model.Notification
	require.NoError(t, db.Where("user_email = ?", "author@example.com").First(&notif).Error)
	assert.Equal(t, model.NotificationModelApproval, notif.Type)
	require.NotNil(t, notif.RelatedModelID)
	assert.Equal(t, pending.ID, *notif.RelatedModelID)
}

func TestReviewModelReject(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	pending := createPendingModel(t, db, "waiting", "author@example.com")

	m, err := service.ReviewModel(ctx, pending.ID, "reject", "missing documentation")
	require.NoError(t, err)
	assert.Equal(t, model.ModelStatusRejected, m.Status)

	var stored model.Model
	require.NoError(t, db.First(&stored, pending.ID).Error)
	assert.Equal(t, "missing documentation", stored.RejectionReason)
}

func TestReviewModelTwiceConflicts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	pending := createPendingModel(t, db, "waiting", "author@example.com")

	_, err := service.ReviewModel(ctx, pending.ID, "approve", "")
	require.NoError(t, err)

	_, err = service.ReviewModel(ctx, pending.ID, "reject", "changed my mind")
	require.ErrorIs(t, err, utils.ErrConflict)
}

func TestReviewModelBadAction(t *testing.T) {
	db := setupTestDB(t)
	pending := createPendingModel(t, db, "waiting", "author@example.com")
	_, err := service.ReviewModel(context.Background(), pending.ID, "maybe", "")
	require.ErrorIs(t, err, utils.ErrBadRequest)
}
