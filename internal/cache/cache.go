// Package cache wraps the Redis response cache used by the HTTP layer:
// JSON get/set with a TTL plus the key builders for the cached lookups.
package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL is how long a cached lookup stays valid before it is refreshed from
// the store.
const TTL = 60 * time.Second

// AccountKey caches the profile/balance lookup for a user.
func AccountKey(userID string) string { return "account:" + userID }

// WalletKey caches the bitcoin wallet lookup for a user.
func WalletKey(userID string) string { return "btcwallet:" + userID }

// HistoryKey caches one page of a user's transaction history.
func HistoryKey(userID string, page, pageSize int) string {
	return "txhistory:" + userID + ":page:" + strconv.Itoa(page) + ":size:" + strconv.Itoa(pageSize)
}

// Get retrieves key and unmarshals it into dest, reporting whether the
// key existed.
func Get(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(val), dest)
}

// Set stores value under key for TTL.
func Set(ctx context.Context, rdb *redis.Client, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, TTL).Err()
}

// InvalidateUser drops every cached lookup for the user after a mutating
// operation: the account view, the wallet view and the first history
// pages (the cache is best effort, deeper pages age out on TTL).
func InvalidateUser(ctx context.Context, rdb *redis.Client, userID string) {
	keys := []string{AccountKey(userID), WalletKey(userID)}
	for page := 1; page <= 5; page++ {
		keys = append(keys, HistoryKey(userID, page, 20))
	}
	rdb.Del(ctx, keys...)
}
