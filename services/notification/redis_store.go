package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"salonbook/models"

	"github.com/go-redis/redis/v8"
)

const (
	usersKey      = "relay:users"
	subsKeyPrefix = "relay:subs:"
	mailboxPrefix = "relay:mailbox:"
)

// RedisStore keeps relay state in Redis so it survives relay restarts.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func subsKey(userID int) string    { return subsKeyPrefix + strconv.Itoa(userID) }
func mailboxKey(userID int) string { return mailboxPrefix + strconv.Itoa(userID) }

func (r *RedisStore) Subscribe(ctx context.Context, userID int, callbackURL string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, subsKey(userID), callbackURL)
		pipe.SAdd(ctx, usersKey, userID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe user %d: %w", userID, err)
	}
	return nil
}

func (r *RedisStore) Unsubscribe(ctx context.Context, userID int, callbackURL string) error {
	if err := r.client.SRem(ctx, subsKey(userID), callbackURL).Err(); err != nil {
		return fmt.Errorf("failed to unsubscribe user %d: %w", userID, err)
	}
	left, err := r.client.SCard(ctx, subsKey(userID)).Result()
	if err != nil {
		return err
	}
	if left == 0 {
		return r.client.SRem(ctx, usersKey, userID).Err()
	}
	return nil
}

func (r *RedisStore) Subscriptions(ctx context.Context, userID int) (int, error) {
	n, err := r.client.SCard(ctx, subsKey(userID)).Result()
	return int(n), err
}

func (r *RedisStore) Subscribers(ctx context.Context) ([]int, error) {
	members, err := r.client.SMembers(ctx, usersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	ids := make([]int, 0, len(members))
	for _, m := range members {
		id, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func (r *RedisStore) Enqueue(ctx context.Context, userID int, msg models.RelayMessage) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return r.client.RPush(ctx, mailboxKey(userID), b).Err()
}

func (r *RedisStore) Pending(ctx context.Context, userID int) (int, error) {
	n, err := r.client.LLen(ctx, mailboxKey(userID)).Result()
	return int(n), err
}

func (r *RedisStore) Drain(ctx context.Context, userID int) ([]models.RelayMessage, error) {
	var rng *redis.StringSliceCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		rng = pipe.LRange(ctx, mailboxKey(userID), 0, -1)
		pipe.Del(ctx, mailboxKey(userID))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to drain mailbox of user %d: %w", userID, err)
	}

	raw := rng.Val()
	msgs := make([]models.RelayMessage, 0, len(raw))
	for _, item := range raw {
		var msg models.RelayMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			continue
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}
