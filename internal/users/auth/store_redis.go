// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/av3hub/avhub/internal/platform/apperr"
	"github.com/av3hub/avhub/internal/platform/constants"
	"github.com/av3hub/avhub/internal/platform/sec"
)

// RedisResetTokenRepository stores password-reset tokens in Redis with a
// TTL. Only token digests are stored, never the raw tokens.
type RedisResetTokenRepository struct {
	client *redis.Client
}

func NewRedisResetTokenRepository(client *redis.Client) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

func resetTokenKey(token string) string {
	return constants.RedisPrefixResetToken + sec.HashToken(token)
}

func (repository *RedisResetTokenRepository) Set(context context.Context, token, userID string, timeToLive time.Duration) error {
	return repository.client.Set(context, resetTokenKey(token), userID, timeToLive).Err()
}

func (repository *RedisResetTokenRepository) Get(context context.Context, token string) (string, error) {
	userID, err := repository.client.Get(context, resetTokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.Unauthorized("Invalid or expired reset token")
		}
		return "", err
	}
	return userID, nil
}

func (repository *RedisResetTokenRepository) Delete(context context.Context, token string) error {
	return repository.client.Del(context, resetTokenKey(token)).Err()
}
