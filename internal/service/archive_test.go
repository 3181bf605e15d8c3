package service_test

import (
	"ModelFlow/internal/service"
	"ModelFlow/model"
	"ModelFlow/utils"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveModelMovesExactlyOneCopy(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	m := createApprovedModel(t, db, "old-model", "author@example.com", 0)

	archived, err := service.ArchiveModel(ctx, m.ID, "author@example.com")
	require.NoError(t, err)
	assert.Equal(t, m.ID, archived.ID)
	assert.Equal(t, "old-model", archived.Name)
	assert.True(t, archived.ScheduledDeletionAt.After(time.Now()))

	// Gone from the live table, present once in the archive
	var live, cold int64
	require.NoError(t, db.Model(&model.Model{}).Where("id = ?", m.ID).Count(&live).Error)
	require.NoError(t, db.Model(&model.ArchivedModel{}).Where("id = ?", m.ID).Count(&cold).Error)
	assert.Zero(t, live)
	assert.Equal(t, int64(1), cold)
}

func TestArchiveModelForbiddenForNonOwner(t *testing.T) {
	db := setupTestDB(t)
	m := createApprovedModel(t, db, "old-model", "author@example.com", 0)

	_, err := service.ArchiveModel(context.Background(), m.ID, "stranger@example.com")
	require.ErrorIs(t, err, utils.ErrForbidden)

	// Nothing moved
	var live int64
	require.NoError(t, db.Model(&model.Model{}).Where("id = ?", m.ID).Count(&live).Error)
	assert.Equal(t, int64(1), live)
}

func TestArchiveModelDropsLikes(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	m := createApprovedModel(t, db, "old-model", "author@example.com", 0)
	_, err := service.LikeModel(ctx, m.ID, "fan@example.com")
	require.NoError(t, err)

	_, err = service.ArchiveModel(ctx, m.ID, "author@example.com")
	require.NoError(t, err)

	var likes int64
	require.NoError(t, db.Model(&model.ModelLike{}).Where("model_id = ?", m.ID).Count(&likes).Error)
	assert.Zero(t, likes)
}

func TestListArchivedModelsScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	mine := createApprovedModel(t, db, "mine", "author@example.com", 0)
	other := createApprovedModel(t, db, "other", "second@example.com", 0)

	_, err := service.ArchiveModel(ctx, mine.ID, "author@example.com")
	require.NoError(t, err)
	_, err = service.ArchiveModel(ctx, other.ID, "second@example.com")
	require.NoError(t, err)

	archives, err := service.ListArchivedModels("author@example.com")
	require.NoError(t, err)
	require.Len(t, archives, 1)
	assert.Equal(t, "mine", archives[0].Name)
}

func TestPurgeOverdueArchives(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	m := createApprovedModel(t, db, "old-model", "author@example.com", 0)

	_, err := service.ArchiveModel(ctx, m.ID, "author@example.com")
	require.NoError(t, err)

	// Not yet due
	purged, err := service.PurgeOverdueArchives(ctx)
	require.NoError(t, err)
	assert.Zero(t, purged)

	// Force the deadline into the past
	require.NoError(t, db.Model(&model.ArchivedModel{}).
		Where("id = ?", m.ID).
		Update("scheduled_deletion_at", time.Now().Add(-time.Hour)).Error)

	purged, err = service.PurgeOverdueArchives(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	var cold int64
	require.NoError(t, db.Model(&model.ArchivedModel{}).Where("id = ?", m.ID).Count(&cold).Error)
	assert.Zero(t, cold)
}
