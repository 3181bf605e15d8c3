package service

import (
	"ModelFlow/internal/repo"
	"ModelFlow/model"
	"time"
)

// CommentNotificationTTL is how long comment notifications are kept.
const CommentNotificationTTL = 14 * 24 * time.Hour

// ListNotifications returns the user's notifications, newest first.
func ListNotifications(userEmail string, limit int) ([]model.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var notifications []model.Notification
	err := repo.Db.
		Where("user_email = ?", userEmail).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// MarkNotificationsRead marks the given ids read, scoped to the owner.
func MarkNotificationsRead(userEmail string, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := repo.Db.Model(&model.Notification{}).
		Where("id IN ? AND user_email = ?", ids, userEmail).
		UpdateColumn("read", true)
	return res.RowsAffected, res.Error
}

// DeleteNotifications removes the given ids. The query filters by both the
// id set and the owner so one user cannot delete another's notifications.
func DeleteNotifications(userEmail string, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := repo.Db.
		Where("id IN ? AND user_email = ?", ids, userEmail).
		Delete(&model.Notification{})
	return res.RowsAffected, res.Error
}

// PurgeStaleCommentNotifications deletes comment notifications older than the
// retention window. Run from the worker's housekeeping schedule.
func PurgeStaleCommentNotifications() (int64, error) {
	cutoff := time.Now().Add(-CommentNotificationTTL)
	res := repo.Db.
		Where("type = ? AND created_at < ?", model.NotificationComment, cutoff).
		Delete(&model.Notification{})
	return res.RowsAffected, res.Error
}
