package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "feedback_chat"

// Chat outcomes recorded on ChatRequests.
const (
	OutcomeOK                = "ok"
	OutcomeMissingCredential = "missing_credential"
	OutcomeUpstreamError     = "upstream_error"
)

// Metrics holds the collectors for HTTP traffic and the chat relay.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	ChatRequests    *prometheus.CounterVec
	UpstreamLatency prometheus.Histogram
	TokensTotal     *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ChatRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_requests_total",
			Help:      "Total chat relay calls by outcome",
		}, []string{"outcome"}),
		UpstreamLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of generation API calls",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		}),
		TokensTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_tokens_total",
			Help:      "Tokens reported by the generation API by kind",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.ChatRequests, m.UpstreamLatency, m.TokensTotal)
	return m
}

func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) ObserveChat(outcome string) {
	if m == nil {
		return
	}
	m.ChatRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveUpstream(d time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamLatency.Observe(d.Seconds())
}

// AddTokens records token usage; non-positive counts are skipped.
func (m *Metrics) AddTokens(prompt, output int) {
	if m == nil {
		return
	}
	if prompt > 0 {
		m.TokensTotal.WithLabelValues("prompt").Add(float64(prompt))
	}
	if output > 0 {
		m.TokensTotal.WithLabelValues("output").Add(float64(output))
	}
}
