// Package metrics 提供 Prometheus helper，包含本系统常用 counter/gauge/histogram
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 指标集合
type Metrics struct {
	// HTTP 请求计数
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTP 请求耗时
	HTTPRequestDuration prometheus.Histogram

	// 行情更新计数
	QuoteUpdatesTotal prometheus.Counter
	// 活跃合约数
	InstrumentsActive prometheus.Gauge

	// 期权评估计数（按 moneyness 分类）
	OptionEvaluationsTotal *prometheus.CounterVec
	// 行权计数
	OptionExercisesTotal prometheus.Counter

	registry *prometheus.Registry
}

// New 创建指标实例并注册到独立 registry
func New(serviceName string) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "optionsdesk",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "optionsdesk",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}),
		QuoteUpdatesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "optionsdesk",
			Subsystem: serviceName,
			Name:      "quote_updates_total",
			Help:      "Total accepted quote updates",
		}),
		InstrumentsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "optionsdesk",
			Subsystem: serviceName,
			Name:      "instruments_active",
			Help:      "Number of active instruments",
		}),
		OptionEvaluationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "optionsdesk",
			Subsystem: serviceName,
			Name:      "option_evaluations_total",
			Help:      "Total option evaluations by moneyness",
		}, []string{"moneyness"}),
		OptionExercisesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "optionsdesk",
			Subsystem: serviceName,
			Name:      "option_exercises_total",
			Help:      "Total option exercises",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.QuoteUpdatesTotal,
		m.InstrumentsActive,
		m.OptionEvaluationsTotal,
		m.OptionExercisesTotal,
	)

	return m
}

// Handler 返回 /metrics 的 HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
