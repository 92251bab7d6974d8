package repositories

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/recipe-api/internal/logger"
)

const tokenKeyPrefix = "auth_token:"

// TokenRepository keeps the set of live API tokens in Redis, keyed by token id.
// A token missing from the registry has been revoked or has expired.
type TokenRepository struct {
	client *redis.Client
}

func NewTokenRepository(client *redis.Client) *TokenRepository {
	return &TokenRepository{client: client}
}

// Save registers the token for userID until ttl elapses.
func (r *TokenRepository) Save(ctx context.Context, tokenID string, userID int64, ttl time.Duration) error {
	key := tokenKeyPrefix + tokenID
	err := r.client.Set(ctx, key, strconv.FormatInt(userID, 10), ttl).Err()

	logger.Log.Infow(
		"redis",
		"key", key,
		"user_id", userID,
		"ttl", ttl,
		"error", err,
	)

	return err
}

// GetUserID returns the owner of a registered token, or ErrNotFound.
func (r *TokenRepository) GetUserID(ctx context.Context, tokenID string) (int64, error) {
	key := tokenKeyPrefix + tokenID

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow(
			"redis",
			"key", key,
			"result", val,
			"error", err,
		)
		if errors.Is(err, redis.Nil) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	userID, err := strconv.ParseInt(val, 10, 64)

	logger.Log.Infow(
		"redis",
		"key", key,
		"value", val,
		"result", userID,
		"error", err,
	)

	if err != nil {
		return 0, err
	}
	return userID, nil
}

// Delete revokes the token. Deleting an unknown token is not an error.
func (r *TokenRepository) Delete(ctx context.Context, tokenID string) error {
	key := tokenKeyPrefix + tokenID
	n, err := r.client.Del(ctx, key).Result()

	logger.Log.Infow(
		"redis",
		"key", key,
		"result", n,
		"error", err,
	)

	return err
}
