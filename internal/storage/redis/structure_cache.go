package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/zenny/moodle-theme-snap/internal/models"
	"github.com/zenny/moodle-theme-snap/pkg/logger"
)

// DefaultStructureTTL bounds how stale a cached structure can get when an
// invalidation is missed.
const DefaultStructureTTL = 10 * time.Minute

type structureSource interface {
	CourseStructure(ctx context.Context, courseID uuid.UUID) (*models.CourseStructure, error)
}

// CachedStructure serves course structures from Redis and falls back to the
// source on a miss. Redis failures are logged and never fail a read.
type CachedStructure struct {
	log    logger.Log
	client *redis.Client
	source structureSource
	ttl    time.Duration
}

func NewCachedStructure(log logger.Log, client *redis.Client, source structureSource, ttl time.Duration) *CachedStructure {
	if ttl <= 0 {
		ttl = DefaultStructureTTL
	}
	return &CachedStructure{log: log, client: client, source: source, ttl: ttl}
}

func (c *CachedStructure) CourseStructure(ctx context.Context, courseID uuid.UUID) (*models.CourseStructure, error) {
	key := StructureKey(courseID)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var structure models.CourseStructure
		if err := json.Unmarshal(data, &structure); err == nil {
			return &structure, nil
		}
		c.log.Warn("CourseStructure: dropping undecodable cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		c.log.ErrorErr("CourseStructure: cache read failed", err, "key", key)
	}

	structure, err := c.source.CourseStructure(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(structure); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.ErrorErr("CourseStructure: cache write failed", err, "key", key)
		}
	}
	return structure, nil
}

func (c *CachedStructure) Invalidate(ctx context.Context, courseID uuid.UUID) error {
	if err := c.client.Del(ctx, StructureKey(courseID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate structure cache: %w", err)
	}
	return nil
}
