/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/humaidq/medimind/labs"
)

const namespace = "medimind"

// Metrics is a set of collectors bound to one registry.
type Metrics struct {
	registry *prometheus.Registry

	documents     *prometheus.CounterVec
	results       *prometheus.CounterVec
	scanDuration  prometheus.Histogram
	reminders     *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDurations *prometheus.HistogramVec
}

// New builds the collectors on a fresh registry, including the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_scanned_total",
			Help:      "Lab documents scanned, by document kind and outcome.",
		}, []string{"kind", "outcome"}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lab_results_total",
			Help:      "Interpreted lab results, by status.",
		}, []string{"status"}),
		scanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scan_duration_seconds",
			Help:      "Time spent extracting and interpreting a document.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		}),
		reminders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_delivered_total",
			Help:      "Reminder delivery attempts, by channel and outcome.",
		}, []string{"channel", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method and status code.",
		}, []string{"method", "code"}),
		httpDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.documents,
		m.results,
		m.scanDuration,
		m.reminders,
		m.httpRequests,
		m.httpDurations,
	)

	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveScan records one scanned document. A nil error counts as "ok".
func (m *Metrics) ObserveScan(kind string, elapsed time.Duration, results []labs.Interpretation, err error) {
	if m == nil {
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}

	m.documents.WithLabelValues(kind, outcome).Inc()
	m.scanDuration.Observe(elapsed.Seconds())

	for _, r := range results {
		m.results.WithLabelValues(string(r.Status)).Inc()
	}
}

// ObserveReminder records one delivery attempt on a channel.
func (m *Metrics) ObserveReminder(channel string, err error) {
	if m == nil {
		return
	}

	outcome := "sent"
	if err != nil {
		outcome = "failed"
	}

	m.reminders.WithLabelValues(channel, outcome).Inc()
}

// ObserveRequest records a served HTTP request.
func (m *Metrics) ObserveRequest(method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.httpDurations.WithLabelValues(method).Observe(elapsed.Seconds())
}
