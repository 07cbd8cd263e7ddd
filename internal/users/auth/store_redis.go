// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yamdb/internal/platform/constants"
)

// # Cooldown Repository

// RedisCooldownRepository implements [CooldownRepository] with SET NX and a TTL.
type RedisCooldownRepository struct {
	client *redis.Client
}

// NewCooldownRepository creates a new Redis-backed CooldownRepository.
func NewCooldownRepository(client *redis.Client) *RedisCooldownRepository {
	return &RedisCooldownRepository{client: client}
}

// cooldownKey normalizes the email so case variants share one window.
func cooldownKey(email string) string {
	return constants.RedisPrefixSignupCooldown + strings.ToLower(strings.TrimSpace(email))
}

/*
Acquire starts the cooldown for email if none is running.

Parameters:
  - context: context.Context
  - email: string
  - window: time.Duration

Returns:
  - bool: true when the key was created by this call
  - error: Execution errors
*/
func (repository *RedisCooldownRepository) Acquire(context context.Context, email string, window time.Duration) (bool, error) {
	acquired, err := repository.client.SetNX(context, cooldownKey(email), time.Now().Unix(), window).Result()
	if err != nil {
		return false, fmt.Errorf("redis_signup_cooldown_acquire_failed: %w", err)
	}

	return acquired, nil
}

/*
Release deletes the cooldown key for email.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisCooldownRepository) Release(context context.Context, email string) error {
	if err := repository.client.Del(context, cooldownKey(email)).Err(); err != nil {
		return fmt.Errorf("redis_signup_cooldown_release_failed: %w", err)
	}

	return nil
}
