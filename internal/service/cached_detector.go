package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"interioai/internal/repository"

	"go.uber.org/zap"
)

const detectCachePrefix = "interioai:detect:"

// CachedDetector memoizes detections by image content. Cache failures are logged
// and bypassed; empty detections are never stored.
type CachedDetector struct {
	next   Detector
	store  repository.KVStore
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedDetector(next Detector, store repository.KVStore, ttl time.Duration, logger *zap.Logger) *CachedDetector {
	return &CachedDetector{
		next:   next,
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

var _ Detector = (*CachedDetector)(nil)

func (c *CachedDetector) Detect(ctx context.Context, imagePath string) ([]string, error) {
	key, err := detectCacheKey(imagePath)
	if err != nil {
		return nil, NewExternalDependencyError("storage", "hash image", err)
	}

	if cached, err := c.store.Get(ctx, key); err == nil {
		var items []string
		if err := json.Unmarshal([]byte(cached), &items); err == nil {
			c.logger.Debug("detection cache hit", zap.String("key", key), zap.Int("count", len(items)))
			return items, nil
		}
		c.logger.Warn("corrupt detection cache entry", zap.String("key", key))
	} else if !errors.Is(err, repository.ErrCacheMiss) {
		c.logger.Warn("detection cache read failed", zap.String("key", key), zap.Error(err))
	}

	items, err := c.next.Detect(ctx, imagePath)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}

	payload, err := json.Marshal(items)
	if err == nil {
		err = c.store.Set(ctx, key, string(payload), c.ttl)
	}
	if err != nil {
		c.logger.Warn("detection cache write failed", zap.String("key", key), zap.Error(err))
	}
	return items, nil
}

func detectCacheKey(imagePath string) (string, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash image: %w", err)
	}
	return detectCachePrefix + hex.EncodeToString(h.Sum(nil)), nil
}
