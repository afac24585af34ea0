// Package metrics holds the Prometheus instruments recorded by benchmark runs.
package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "dlsig"

// Operation labels.
const (
	OpSign   = "sign"
	OpVerify = "verify"
)

// Result labels.
const (
	ResultOK      = "ok"
	ResultValid   = "valid"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// Metrics groups the benchmark instruments.
type Metrics struct {
	operations    *prometheus.CounterVec
	signSeconds   prometheus.Histogram
	verifySeconds prometheus.Histogram
}

// New creates the instruments and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "bench",
				Name:      "operations_total",
				Help:      "Count of sign and verify calls classified by result",
			},
			[]string{"op", "result"},
		),
		signSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "bench",
				Name:      "sign_seconds",
				Help:      "Time spent producing one signature",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.002, 0.005, 0.01, 0.05},
			},
		),
		verifySeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "bench",
				Name:      "verify_seconds",
				Help:      "Time spent verifying one signature",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.002, 0.005, 0.01, 0.05},
			},
		),
	}
	reg.MustRegister(m.operations, m.signSeconds, m.verifySeconds)
	return m
}

// ObserveSign records one sign call.
func (m *Metrics) ObserveSign(d time.Duration, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.operations.WithLabelValues(OpSign, result).Inc()
	m.signSeconds.Observe(d.Seconds())
}

// ObserveVerify records one verify call.
func (m *Metrics) ObserveVerify(d time.Duration, valid bool, err error) {
	if m == nil {
		return
	}
	result := ResultInvalid
	switch {
	case err != nil:
		result = ResultError
	case valid:
		result = ResultValid
	}
	m.operations.WithLabelValues(OpVerify, result).Inc()
	m.verifySeconds.Observe(d.Seconds())
}

// Operations exposes the operation counter, mainly for tests.
func (m *Metrics) Operations() *prometheus.CounterVec {
	return m.operations
}

// WriteText writes every metric family gathered from g in the Prometheus
// text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
