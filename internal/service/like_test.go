package service_test

import (
	"ModelFlow/internal/service"
	"ModelFlow/model"
	"ModelFlow/utils"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeModel(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	m := createApprovedModel(t, db, "bert-base", "author@example.com", 0)

	resp, err := service.LikeModel(ctx, m.ID, "fan@example.com")
	require.NoError(t, err)
	assert.True(t, resp.Liked)
	assert.Equal(t, int64(1), resp.Likes)

	// Counter matches the like rows
	var rows int64
	require.NoError(t, db.Model(&model.ModelLike{}).Where("model_id = ?", m.ID).Count(&rows).Error)
	var stored model.Model
	require.NoError(t, db.First(&stored, m.ID).Error)
	assert.Equal(t, rows, stored.Likes)
}

func TestLikeModelTwiceConflicts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	m := createApprovedModel(t, db, "bert-base", "author@example.com", 0)

	_, err := service.LikeModel(ctx, m.ID, "fan@example.com")
	require.NoError(t, err)

	_, err = service.LikeModel(ctx, m.ID, "fan@example.com")
	require.ErrorIs(t, err, utils.ErrConflict)

	// Counter did not move on the failed like
	var stored model.Model
	require.NoError(t, db.First(&stored, m.ID).Error)
	assert.Equal(t, int64(1), stored.Likes)
}

func TestUnlikeModel(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	m := createApprovedModel(t, db, "bert-base", "author@example.com", 0)

	_, err := service.LikeModel(ctx, m.ID, "fan@example.com")
	require.NoError(t, err)

	resp, err := service.UnlikeModel(ctx, m.ID, "fan@example.com")
	require.NoError(t, err)
	assert.False(t, resp.Liked)
	assert.Equal(t, int64(0), resp.Likes)

	_, err = service.UnlikeModel(ctx, m.ID, "fan@example.com")
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestLikeModelNotFound(t *testing.T) {
	setupTestDB(t)
	_, err := service.LikeModel(context.Background(), 12345, "fan@example.com")
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestLikeStatus(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	m := createApprovedModel(t, db, "bert-base", "author@example.com", 0)

	status, err := service.LikeStatus(m.ID, "fan@example.com")
	require.NoError(t, err)
	assert.False(t, status.Liked)

	_, err = service.LikeModel(ctx, m.ID, "fan@example.com")
	require.NoError(t, err)

	status, err = service.LikeStatus(m.ID, "fan@example.com")
	require.NoError(t, err)
	assert.True(t, status.Liked)
	assert.Equal(t, int64(1), status.Likes)
}

func TestLikeResponseMatchesStoredCounter(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	m := createApprovedModel(t, db, "bert-base", "author@example.com", 0)

	// Counter already moved by others before this like commits
	require.NoError(t, db.Model(&model.Model{}).
		Where("id = ?", m.ID).
		UpdateColumn("likes", 7).Error)

	resp, err := service.LikeModel(ctx, m.ID, "fan@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(8), resp.Likes)

	var stored model.Model
	require.NoError(t, db.First(&stored, m.ID).Error)
	assert.Equal(t, stored.Likes, resp.Likes)
}

func TestUnlikeResponseMatchesStoredCounter(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	m := createApprovedModel(t, db, "bert-base", "author@example.com", 0)

	_, err := service.LikeModel(ctx, m.ID, "fan@example.com")
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.Model{}).
		Where("id = ?", m.ID).
		UpdateColumn("likes", 5).Error)

	resp, err := service.UnlikeModel(ctx, m.ID, "fan@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(4), resp.Likes)

	var stored model.Model
	require.NoError(t, db.First(&stored, m.ID).Error)
	assert.Equal(t, stored.Likes, resp.Likes)
}
