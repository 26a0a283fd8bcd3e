// Package rediscache holds the access-token revocation blacklist. Entries
// self-expire; nothing is ever persisted durably.
package rediscache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KshitijChavan-Stack/authflow/internal/auth/domain"
	autherror "github.com/KshitijChavan-Stack/authflow/internal/errors"
	"github.com/KshitijChavan-Stack/authflow/internal/logger"
)

var _ domain.RevocationCache = (*RevocationCache)(nil)

const blacklistKeyPrefix = "blacklist:"

type RevocationCache struct {
	client *redis.Client
	log    *logger.Logger
}

func NewRevocationCache(client *redis.Client, log *logger.Logger) *RevocationCache {
	return &RevocationCache{client: client, log: log}
}

func key(token string) string {
	sum := sha256.Sum256([]byte(token))

	return blacklistKeyPrefix + hex.EncodeToString(sum[:])
}

// Blacklist records the token until ttl elapses. The caller passes the
// token's remaining lifetime; an entry outliving the signature would be
// pointless.
func (c *RevocationCache) Blacklist(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := c.client.Set(ctx, key(token), "blacklisted", ttl).Err(); err != nil {
		return autherror.Infrastructure("blacklist token", err)
	}

	return nil
}

// IsBlacklisted fails open: when the cache is unreachable the token reads as
// not blacklisted. Availability wins over this defense-in-depth check; the
// signature and expiry checks remain the primary gate.
func (c *RevocationCache) IsBlacklisted(ctx context.Context, token string) bool {
	err := c.client.Get(ctx, key(token)).Err()
	if err == nil {
		return true
	}

	// go-redis can wrap the miss sentinel, so match with errors.Is; only a
	// real outage should be logged as failing open.
	if !errors.Is(err, redis.Nil) {
		c.log.Error("revocation cache unavailable, failing open", "error", err)
	}

	return false
}
