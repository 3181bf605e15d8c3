package repo

import (
	"ModelFlow/config"
	"ModelFlow/internal/storage"
	"ModelFlow/model"
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"log"
	"strconv"
	"strings"
	"time"
)

var Redis *redis.Client

// ArchiveKeyPrefix marks TTL keys that schedule archived-model deletion.
const ArchiveKeyPrefix = "archive:"

type RedisLock struct {
	rdb   *redis.Client
	key   string
	token string
	ttl   time.Duration
}

// InitRedis initializes Redis client.
func InitRedis() {
	RedisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", config.AppConfig.RedisHost, config.AppConfig.RedisPort),
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})
	_, err := RedisClient.Ping(context.Background()).Result()
	if err != nil {
		log.Fatal("init redis fail", err)
	}
	log.Println("init redis success")
	Redis = RedisClient
}

// EnableKeyspaceNotifications enables Redis keyspace events.
func EnableKeyspaceNotifications(ctx context.Context) error {
	if Redis == nil {
		return errors.New("redis not initialized")
	}
	return Redis.ConfigSet(ctx, "notify-keyspace-events", "Ex").Err()
}

// NewRedisLock creates a Redis lock helper.
func NewRedisLock(rdb *redis.Client, key string, ttl time.Duration) *RedisLock {
	return &RedisLock{
		rdb: rdb,
		key: key,
		ttl: ttl,
	}
}

// Lock acquires a Redis-based lock.
func (l *RedisLock) Lock(ctx context.Context) error {
	token := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("lock is busy")
	}
	l.token = token
	return nil
}

var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Unlock releases a Redis-based lock.
func (l *RedisLock) Unlock(ctx context.Context) error {
	if l.token == "" {
		return nil
	}
	_, err := unlockScript.Run(
		ctx,
		l.rdb,
		[]string{l.key},
		l.token,
	).Result()
	return err
}

// ScheduleArchivePurge sets a TTL key whose expiry triggers archived-model deletion.
func ScheduleArchivePurge(ctx context.Context, modelID uint64, retention time.Duration) error {
	if Redis == nil {
		return errors.New("redis not initialized")
	}
	key := fmt.Sprintf("%s%d", ArchiveKeyPrefix, modelID)
	return Redis.Set(ctx, key, "1", retention).Err()
}

// ListenRedisExpired listens for Redis expired events.
func ListenRedisExpired(ctx context.Context, rdb *redis.Client, ready chan<- struct{}) {
	pubsub := rdb.Subscribe(ctx, "__keyevent@0__:expired")
	_, err := pubsub.Receive(ctx)
	if err != nil {
		log.Fatalf("subscribe failed: %v", err)
	}
	close(ready)
	ch := pubsub.Channel()

	for msg := range ch {
		key := msg.Payload
		handleExpiredKey(ctx, key)
	}
}

// handleExpiredKey dispatches expired-key handlers.
func handleExpiredKey(ctx context.Context, key string) {
	switch {
	case strings.HasPrefix(key, ArchiveKeyPrefix):
		handleArchiveExpired(ctx, key)
	default:
	}
}

// handleArchiveExpired purges an archived model whose retention ran out.
func handleArchiveExpired(ctx context.Context, key string) {
	raw := strings.TrimPrefix(key, ArchiveKeyPrefix)
	modelID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		log.Printf("archive expiry: bad key %q: %v", key, err)
		return
	}
	if err := PurgeArchivedModel(ctx, modelID); err != nil {
		log.Printf("archive expiry: purge %d failed: %v", modelID, err)
		return
	}
	log.Println("archived model purged:", modelID)
}

// PurgeArchivedModel removes the stored object and the archived row.
func PurgeArchivedModel(ctx context.Context, modelID uint64) error {
	var archived model.ArchivedModel
	if err := Db.First(&archived, modelID).Error; err != nil {
		return err
	}
	if archived.StorageType == model.StorageTypeZip && archived.ObjectName != "" && storage.Default != nil {
		if err := storage.Default.RemoveObject(ctx, archived.Bucket, archived.ObjectName); err != nil {
			log.Printf("archive purge: remove object %s/%s failed: %v", archived.Bucket, archived.ObjectName, err)
		}
	}
	return Db.Delete(&model.ArchivedModel{}, modelID).Error
}
