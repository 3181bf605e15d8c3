package worker

import (
	"ModelFlow/internal/repo"
	"ModelFlow/internal/service"
	"ModelFlow/internal/task"
	"ModelFlow/model"
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// deletionWarningLead is how far before the scheduled purge the owner is
// warned by mail.
const deletionWarningLead = 3 * 24 * time.Hour

// StartHousekeeping schedules the periodic maintenance jobs and returns the
// running scheduler.
func StartHousekeeping(ctx context.Context) *cron.Cron {
	c := cron.New()
	_, _ = c.AddFunc("@hourly", func() {
		// 多个 worker 实例只允许一个执行清理
		if repo.Redis != nil {
			lock := repo.NewRedisLock(repo.Redis, "housekeeping:archive-purge", 10*time.Minute)
			if err := lock.Lock(ctx); err != nil {
				return
			}
			defer lock.Unlock(ctx)
		}
		if n, err := service.PurgeOverdueArchives(ctx); err != nil {
			log.Printf("housekeeping: archive purge failed: %v", err)
		} else if n > 0 {
			log.Printf("housekeeping: purged %d overdue archives", n)
		}
	})
	_, _ = c.AddFunc("@hourly", func() {
		if err := WarnUpcomingDeletions(ctx); err != nil {
			log.Printf("housekeeping: deletion warnings failed: %v", err)
		}
	})
	_, _ = c.AddFunc("@daily", func() {
		if n, err := service.PurgeStaleCommentNotifications(); err != nil {
			log.Printf("housekeeping: notification purge failed: %v", err)
		} else if n > 0 {
			log.Printf("housekeeping: purged %d stale notifications", n)
		}
	})
	c.Start()
	return c
}

// WarnUpcomingDeletions mails owners whose archived models are close to the
// scheduled purge. Each archive is warned at most once.
func WarnUpcomingDeletions(ctx context.Context) error {
	deadline := time.Now().Add(deletionWarningLead)
	var archives []model.ArchivedModel
	err := repo.Db.
		Where("scheduled_deletion_at <= ? AND deletion_warned_at IS NULL", deadline).
		Find(&archives).Error
	if err != nil {
		return err
	}
	for _, archive := range archives {
		task.EnqueueEmail(ctx, task.EmailMessage{
			Kind:       task.EmailDeletionWarning,
			To:         archive.AuthorEmail,
			ModelName:  archive.Name,
			DeleteDate: archive.ScheduledDeletionAt.Format("2006-01-02"),
		})
		now := time.Now()
		if err := repo.Db.Model(&model.ArchivedModel{}).
			Where("id = ?", archive.ID).
			Update("deletion_warned_at", &now).Error; err != nil {
			log.Printf("housekeeping: mark warned failed for archive %d: %v", archive.ID, err)
		}
	}
	return nil
}
