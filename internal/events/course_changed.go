package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/zenny/moodle-theme-snap/internal/app_errors"
	"github.com/zenny/moodle-theme-snap/internal/models"
	"github.com/zenny/moodle-theme-snap/pkg/logger"
)

// CourseChanged is published by the host after a course, its sections or its
// modules were edited, and after a course was deleted.
type CourseChanged struct {
	CourseID uuid.UUID `json:"course_id"`
	Deleted  bool      `json:"deleted,omitempty"`
}

type courseLoader interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

type structureInvalidator interface {
	Invalidate(ctx context.Context, courseID uuid.UUID) error
}

type courseIndexer interface {
	Index(ctx context.Context, course models.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CourseChangedConsumer struct {
	log       logger.Log
	client    *redis.Client
	channel   string
	courses   courseLoader
	structure structureInvalidator
	index     courseIndexer
}

func NewCourseChangedConsumer(log logger.Log, client *redis.Client, channel string, courses courseLoader, structure structureInvalidator) *CourseChangedConsumer {
	return &CourseChangedConsumer{log: log, client: client, channel: channel, courses: courses, structure: structure}
}

// WithIndex keeps the search index in step with course changes.
func (c *CourseChangedConsumer) WithIndex(index courseIndexer) *CourseChangedConsumer {
	c.index = index
	return c
}

func (c *CourseChangedConsumer) Run(ctx context.Context) error {
	return listen(ctx, c.log, c.client, c.channel, c.handle)
}

func (c *CourseChangedConsumer) handle(ctx context.Context, payload string) error {
	var event CourseChanged
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return fmt.Errorf("decode course_changed event: %w", err)
	}
	if event.CourseID == uuid.Nil {
		return fmt.Errorf("course_changed event without course_id")
	}

	if err := c.structure.Invalidate(ctx, event.CourseID); err != nil {
		c.log.ErrorErr("CourseChangedConsumer: failed to invalidate structure", err, "course_id", event.CourseID.String())
	}
	if c.index == nil {
		return nil
	}

	if event.Deleted {
		return c.index.Delete(ctx, event.CourseID)
	}
	course, err := c.courses.CourseByID(ctx, event.CourseID)
	if errors.Is(err, app_errors.ErrCourseNotFound) {
		return c.index.Delete(ctx, event.CourseID)
	}
	if err != nil {
		return fmt.Errorf("load course %s: %w", event.CourseID, err)
	}
	return c.index.Index(ctx, *course)
}

// PublishCourseChanged announces an edited or deleted course on channel.
func PublishCourseChanged(ctx context.Context, client *redis.Client, channel string, event CourseChanged) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return client.Publish(ctx, channel, data).Err()
}
