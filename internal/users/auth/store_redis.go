// Copyright (c) 2026 Litho Press. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lithopress/litho/internal/platform/apperr"
	"github.com/lithopress/litho/internal/platform/constants"
)

// RedisResetTokenRepository implements ResetTokenRepository using Redis.
type RedisResetTokenRepository struct {
	client *redis.Client
}

// NewResetTokenRepository creates a new Redis-backed ResetTokenRepository.
func NewResetTokenRepository(client *redis.Client) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

/*
Set stores a reset token with its associated userID and TTL.

Parameters:
  - context: context.Context
  - token: string
  - userID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisResetTokenRepository) Set(context context.Context, token, userID string, ttl time.Duration) error {
	key := constants.RedisPrefixResetToken + token

	if err := repository.client.Set(context, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_set_failed: %w", err)
	}

	return nil
}

/*
Get retrieves the userID for a given token.

Description: Returns apperr.NotFound if the token is absent or expired.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - string: Original UserID
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisResetTokenRepository) Get(context context.Context, token string) (string, error) {
	key := constants.RedisPrefixResetToken + token

	userID, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Reset token is invalid or expired")
		}
		return "", fmt.Errorf("redis_reset_token_get_failed: %w", err)
	}

	return userID, nil
}

/*
Delete removes the token from Redis.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisResetTokenRepository) Delete(context context.Context, token string) error {
	key := constants.RedisPrefixResetToken + token

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_delete_failed: %w", err)
	}

	return nil
}
