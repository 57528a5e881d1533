// Package metrics Prometheus指标定义
//
// 指标类型：
//   - Counter：只增不减（请求总数、操作次数）
//   - Gauge：可增可减（进行中的请求、熔断器状态）
//   - Histogram：分布统计（请求耗时）
//
// 所有指标注册到默认Registry，由/metrics端点暴露
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookshelf"

// 操作结果标签
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	once sync.Once

	// HTTPRequestsTotal HTTP请求总数，标签：method、path（路由模板）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时，标签：method、path
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// BookOperationsTotal 图书写操作次数，标签：operation（create/update/delete）、result
	BookOperationsTotal *prometheus.CounterVec

	// AuthorOperationsTotal 作者写操作次数，标签同上
	AuthorOperationsTotal *prometheus.CounterVec

	// CacheRequestsTotal 视图缓存读取，标签：result（hit/miss/error）
	CacheRequestsTotal *prometheus.CounterVec

	// EventsPublishedTotal 领域事件发布，标签：routing_key、result（success/failure/rejected）
	EventsPublishedTotal *prometheus.CounterVec

	// CircuitBreakerState 熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）
	CircuitBreakerState *prometheus.GaugeVec
)

// InitMetrics 初始化并注册指标，可重复调用
func InitMetrics() {
	once.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP请求耗时（秒）",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_progress",
				Help:      "正在处理的HTTP请求数",
			},
		)

		BookOperationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "book_operations_total",
				Help:      "图书写操作次数",
			},
			[]string{"operation", "result"},
		)

		AuthorOperationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "author_operations_total",
				Help:      "作者写操作次数",
			},
			[]string{"operation", "result"},
		)

		CacheRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_requests_total",
				Help:      "视图缓存读取次数",
			},
			[]string{"result"},
		)

		EventsPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_published_total",
				Help:      "领域事件发布次数",
			},
			[]string{"routing_key", "result"},
		)

		CircuitBreakerState = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_state",
				Help:      "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
			},
			[]string{"name"},
		)
	})
}

// RecordOperation 按err记录一次写操作结果
// 未调用InitMetrics时（如单元测试）不记录
func RecordOperation(counter *prometheus.CounterVec, operation string, err error) {
	if counter == nil {
		return
	}
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	counter.WithLabelValues(operation, result).Inc()
}

// RecordCache 记录一次缓存读取（hit/miss/error）
func RecordCache(result string) {
	if CacheRequestsTotal == nil {
		return
	}
	CacheRequestsTotal.WithLabelValues(result).Inc()
}

// RecordEvent 记录一次事件发布（success/failure/rejected）
func RecordEvent(routingKey, result string) {
	if EventsPublishedTotal == nil {
		return
	}
	EventsPublishedTotal.WithLabelValues(routingKey, result).Inc()
}

// SetBreakerState 记录熔断器状态
func SetBreakerState(name string, state float64) {
	if CircuitBreakerState == nil {
		return
	}
	CircuitBreakerState.WithLabelValues(name).Set(state)
}

// ObserveHTTPRequest 记录一次HTTP请求
func ObserveHTTPRequest(method, path, status string, seconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(seconds)
}
