package messaging

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/application/common"
	"github.com/xiebiao/bookshelf/pkg/circuitbreaker"
	"github.com/xiebiao/bookshelf/pkg/metrics"
)

// Publisher 底层消息发布者，由pkg/mq.Publisher实现
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// EventPublisher 领域事件发布者
// 设计说明:
// 1. 以事件类型作为routing key投递到Topic Exchange
// 2. 熔断器保护:消息代理连续失败后快速失败,不拖慢写请求
// 3. 每次发布有独立超时,不受请求取消影响
type EventPublisher struct {
	publisher Publisher
	breaker   *circuitbreaker.CircuitBreaker
	timeout   time.Duration
	logger    *zap.Logger
}

var _ common.EventPublisher = (*EventPublisher)(nil)

// NewEventPublisher 创建领域事件发布者
func NewEventPublisher(publisher Publisher, logger *zap.Logger) *EventPublisher {
	breaker := circuitbreaker.New("event-publisher", circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c circuitbreaker.Counts) bool {
			return c.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			metrics.SetBreakerState(name, float64(to))
			logger.Warn("熔断器状态变化",
				zap.String("name", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})

	return &EventPublisher{
		publisher: publisher,
		breaker:   breaker,
		timeout:   3 * time.Second,
		logger:    logger,
	}
}

// Publish 发布领域事件
func (p *EventPublisher) Publish(ctx context.Context, event common.Event) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	err := p.breaker.Execute(func() error {
		return p.publisher.Publish(ctx, event.Type, event)
	})

	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		metrics.RecordEvent(event.Type, "rejected")
	case err != nil:
		metrics.RecordEvent(event.Type, metrics.ResultFailure)
	default:
		metrics.RecordEvent(event.Type, metrics.ResultSuccess)
	}
	return err
}
