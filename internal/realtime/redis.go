package realtime

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

const (
	connsKeyPrefix = "presence:conns:"
	onlineKey      = "presence:online"
)

// RedisBackend mirrors the user -> connection-id mapping in a shared Redis
// so every gateway process sees connections registered on the others. The
// online index is maintained best-effort; a briefly stale entry is
// acceptable for presence reads.
type RedisBackend struct {
	rdb *redis.Client
}

func NewRedisBackend(rdb *redis.Client) *RedisBackend {
	return &RedisBackend{rdb: rdb}
}

func connsKey(userID string) string { return connsKeyPrefix + userID }

func (b *RedisBackend) Add(ctx context.Context, userID, connID string) error {
	pipe := b.rdb.TxPipeline()
	pipe.SAdd(ctx, connsKey(userID), connID)
	pipe.SAdd(ctx, onlineKey, userID)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "presence add")
	}
	return nil
}

func (b *RedisBackend) Remove(ctx context.Context, userID, connID string) error {
	if err := b.rdb.SRem(ctx, connsKey(userID), connID).Err(); err != nil {
		return errors.Wrap(err, "presence remove")
	}

	// Drop the user from the online index once the last connection is gone.
	n, err := b.rdb.SCard(ctx, connsKey(userID)).Result()
	if err != nil {
		return errors.Wrap(err, "presence card")
	}
	if n == 0 {
		if err := b.rdb.SRem(ctx, onlineKey, userID).Err(); err != nil {
			return errors.Wrap(err, "presence online index")
		}
	}
	return nil
}

func (b *RedisBackend) Connections(ctx context.Context, userID string) ([]string, error) {
	conns, err := b.rdb.SMembers(ctx, connsKey(userID)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "presence lookup")
	}
	return conns, nil
}

func (b *RedisBackend) OnlineUsers(ctx context.Context) ([]string, error) {
	users, err := b.rdb.SMembers(ctx, onlineKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "presence online users")
	}
	return users, nil
}
