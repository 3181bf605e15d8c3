package service_test

import (
	"ModelFlow/internal/service"
	"ModelFlow/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createNotification(t *testing.T, db *gorm.DB, email, kind string) *model.Notification {
	t.Helper()
	n := &model.Notification{
		UserEmail: email,
		Type:      kind,
		Title:     "test",
		Message:   "test message",
	}
	require.NoError(t, db.Create(n).Error)
	return n
}

func TestListNotificationsScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	createNotification(t, db, "a@example.com", model.NotificationComment)
	createNotification(t, db, "b@example.com", model.NotificationComment)

	notifications, err := service.ListNotifications("a@example.com", 0)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "a@example.com", notifications[0].UserEmail)
}

func TestMarkNotificationsRead(t *testing.T) {
	db := setupTestDB(t)
	mine := createNotification(t, db, "a@example.com", model.NotificationComment)
	other := createNotification(t, db, "b@example.com", model.NotificationComment)

	// The other user's id is silently skipped
	updated, err := service.MarkNotificationsRead("a@example.com", []uint64{mine.ID, other.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	var stored model.Notification
	require.NoError(t, db.First(&stored, other.ID).Error)
	assert.False(t, stored.Read)
}

func TestDeleteNotificationsScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	mine := createNotification(t, db, "a@example.com", model.NotificationComment)
	other := createNotification(t, db, "b@example.com", model.NotificationComment)

	deleted, err := service.DeleteNotifications("a@example.com", []uint64{mine.ID, other.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var count int64
	require.NoError(t, db.Model(&model.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPurgeStaleCommentNotifications(t *testing.T) {
	db := setupTestDB(t)
	stale := createNotification(t, db, "a@example.com", model.NotificationComment)
	fresh := createNotification(t, db, "a@example.com", model.NotificationComment)
	keeper := createNotification(t, db, "a@example.com", model.NotificationPurchase)

	old := time.Now().Add(-service.CommentNotificationTTL - time.Hour)
	require.NoError(t, db.Model(&model.Notification{}).
		Where("id IN ?", []uint64{stale.ID, keeper.ID}).
		Update("created_at", old).Error)

	purged, err := service.PurgeStaleCommentNotifications()
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	// Only the stale comment notification is gone
	var remaining []model.Notification
	require.NoError(t, db.Find(&remaining).Error)
	ids := []uint64{remaining[0].ID, remaining[1].ID}
	assert.Contains(t, ids, fresh.ID)
	assert.Contains(t, ids, keeper.ID)
}
