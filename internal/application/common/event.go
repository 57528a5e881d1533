package common

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// 领域事件routing key（Topic Exchange，消费方可订阅book.*、*.deleted等）
const (
	EventBookCreated   = "book.created"
	EventBookUpdated   = "book.updated"
	EventBookDeleted   = "book.deleted"
	EventAuthorCreated = "author.created"
	EventAuthorUpdated = "author.updated"
	EventAuthorDeleted = "author.deleted"
)

// Event 领域事件
type Event struct {
	Type       string      `json:"type"`
	ID         uint        `json:"id"`
	Payload    interface{} `json:"payload,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// NewEvent 创建领域事件
func NewEvent(eventType string, id uint, payload interface{}) Event {
	return Event{
		Type:       eventType,
		ID:         id,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// EventPublisher 领域事件发布接口
// 由infrastructure/messaging实现，未启用MQ时使用NopPublisher
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher 不发布
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// AfterWrite 写操作提交后的副作用：使缓存失效、发布事件
// 两者失败都只记录日志，写操作本身已经成功
func AfterWrite(ctx context.Context, cache ViewCache, events EventPublisher, logger *zap.Logger, event Event) {
	if err := cache.Invalidate(ctx); err != nil {
		logger.Warn("缓存失效失败", zap.String("event", event.Type), zap.Error(err))
	}
	if err := events.Publish(ctx, event); err != nil {
		logger.Warn("发布领域事件失败",
			zap.String("event", event.Type),
			zap.Uint("id", event.ID),
			zap.Error(err),
		)
	}
}

func uitoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
