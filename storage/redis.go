package storage

import (
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/go-redis/redis/v7"
	"github.com/pkg/errors"

	"wsproxy/iface"
)

const (
	MessageExpired = time.Hour * 48
	//每个通道最多保留的快照条数
	maxPerChannel = 1000
)

// RedisStorage 按通道维度保存消息快照,最新的在前
type RedisStorage struct {
	cli *redis.Client
}

func NewRedisStorage(cli *redis.Client) iface.IMessageStorage {
	return &RedisStorage{
		cli: cli,
	}
}

func (r *RedisStorage) Save(channelID string, snap iface.MessageSnapshot) error {
	buf, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, "marshal snapshot")
	}
	key := KeyMessages(channelID)
	if err := r.cli.LPush(key, buf).Err(); err != nil {
		return err
	}
	if err := r.cli.LTrim(key, 0, maxPerChannel-1).Err(); err != nil {
		return err
	}
	return r.cli.Expire(key, MessageExpired).Err()
}

func (r *RedisStorage) List(channelID string, limit int64) ([]iface.MessageSnapshot, error) {
	if limit <= 0 || limit > maxPerChannel {
		limit = maxPerChannel
	}
	list, err := r.cli.LRange(KeyMessages(channelID), 0, limit-1).Result()
	if err != nil {
		return nil, err
	}
	result := make([]iface.MessageSnapshot, 0, len(list))
	for _, item := range list {
		var snap iface.MessageSnapshot
		if err := json.Unmarshal([]byte(item), &snap); err != nil {
			continue
		}
		result = append(result, snap)
	}
	return result, nil
}

func KeyMessages(channel string) string {
	return fmt.Sprintf("proxy:msg:%s", channel)
}
