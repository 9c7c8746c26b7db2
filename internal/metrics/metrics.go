// Package metrics exposes the prometheus counters of the landing page service.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "landing"

// Render sources.
const (
	SourceCache  = "cache"
	SourceRender = "render"
)

// Mutation outcomes.
const (
	ResultApplied = "applied"
	ResultNoop    = "noop"
	ResultError   = "error"
)

// Upload outcomes.
const (
	UploadSuccess  = "success"
	UploadRejected = "rejected"
	UploadFailed   = "failed"
)

var (
	initOnce          sync.Once
	renderTotal       *prometheus.CounterVec
	uploadTotal       *prometheus.CounterVec
	mutationTotal     *prometheus.CounterVec
	uploadBytesTotal  prometheus.Counter
	renderedPageBytes prometheus.Histogram
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	jobRuns           *prometheus.CounterVec
	jobDuration       *prometheus.HistogramVec
)

func initMetrics() {
	initOnce.Do(func() {
		renderTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_total",
			Help:      "Landing pages rendered, by content mode and whether the HTML came from cache",
		}, []string{"mode", "source"})

		uploadTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "media_upload_total",
			Help:      "Media uploads by result",
		}, []string{"result"})

		mutationTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_mutation_total",
			Help:      "Document mutations by operation and whether they changed the tree",
		}, []string{"op", "result"})

		uploadBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "media_upload_bytes_total",
			Help:      "Bytes stored by successful media uploads",
		})

		renderedPageBytes = promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rendered_page_bytes",
			Help:      "Size of rendered landing page HTML",
			Buckets:   prometheus.ExponentialBuckets(1024, 2, 10),
		})

		httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"})

		httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"})

		jobRuns = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "background",
			Name:      "job_runs_total",
			Help:      "Background job executions by job and status",
		}, []string{"job", "status"})

		jobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "background",
			Name:      "job_duration_seconds",
			Help:      "Duration of background job executions",
			Buckets:   prometheus.DefBuckets,
		}, []string{"job"})
	})
}

// Job statuses.
const (
	JobSuccess  = "success"
	JobFailure  = "failure"
	JobCanceled = "canceled"
)

func ObserveJob(job, status string, elapsed time.Duration) {
	initMetrics()
	jobRuns.WithLabelValues(job, status).Inc()
	jobDuration.WithLabelValues(job).Observe(elapsed.Seconds())
}

// ObserveHTTPRequest records one served request. route is the matched route
// pattern, not the raw path, to keep label cardinality bounded.
func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	initMetrics()
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveRender counts a rendered page.
func ObserveRender(mode, source string, size int) {
	initMetrics()
	renderTotal.WithLabelValues(mode, source).Inc()
	if source == SourceRender {
		renderedPageBytes.Observe(float64(size))
	}
}

// ObserveUpload counts an upload attempt. size is only recorded on success.
func ObserveUpload(result string, size int64) {
	initMetrics()
	uploadTotal.WithLabelValues(result).Inc()
	if result == UploadSuccess && size > 0 {
		uploadBytesTotal.Add(float64(size))
	}
}

// ObserveMutation counts a document mutation.
func ObserveMutation(op string, applied bool) {
	initMetrics()
	result := ResultNoop
	if applied {
		result = ResultApplied
	}
	mutationTotal.WithLabelValues(op, result).Inc()
}

// ObserveMutationError counts a rejected document mutation.
func ObserveMutationError(op string) {
	initMetrics()
	mutationTotal.WithLabelValues(op, ResultError).Inc()
}
