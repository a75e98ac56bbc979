// Package metrics instruments transports with Prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/frankli0324/go-jsonrpc/internal/model"
	"github.com/frankli0324/go-jsonrpc/internal/transport"
)

const namespace = "jsonrpc"

// Metrics holds the collectors shared by every instrumented transport.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg, when not nil.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of exchanges by target, kind and outcome",
			},
			[]string{"target", "kind", "outcome"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Exchange latency histogram",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~16s
			},
			[]string{"target", "kind"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.RequestsTotal, m.RequestDuration)
	}
	return m
}

func (m *Metrics) Middleware() transport.Middleware {
	return func(next transport.Transport) transport.Transport {
		return &instrumented{next: next, m: m}
	}
}

func (m *Metrics) observe(target, kind string, start time.Time, err error) {
	m.RequestsTotal.WithLabelValues(target, kind, outcome(err)).Inc()
	m.RequestDuration.WithLabelValues(target, kind).Observe(time.Since(start).Seconds())
}

// outcome labels an exchange: "ok", or the kind of the failure.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var e *model.Error
	if !errors.As(err, &e) {
		return "error"
	}
	switch e.Kind {
	case model.ErrTransport:
		return "transport"
	case model.ErrJSON:
		return "json"
	}
	return "protocol"
}

type instrumented struct {
	next transport.Transport
	m    *Metrics
}

func (t *instrumented) Target() string {
	return t.next.Target()
}

func (t *instrumented) SendRequest(ctx context.Context, req *model.Request) (*model.Response, error) {
	start := time.Now()
	resp, err := t.next.SendRequest(ctx, req)
	t.m.observe(t.next.Target(), "single", start, err)
	return resp, err
}

func (t *instrumented) SendBatch(ctx context.Context, reqs []*model.Request) ([]*model.Response, error) {
	start := time.Now()
	resps, err := t.next.SendBatch(ctx, reqs)
	t.m.observe(t.next.Target(), "batch", start, err)
	return resps, err
}
