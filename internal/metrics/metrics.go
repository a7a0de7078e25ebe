/*


Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package metrics holds the prometheus collectors shared across Kubimo's
// reconcilers and the indexer, following the teacher's
// internal/pkg/storageos/metrics adapter shape.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

// LatencyMetric observes how long a named operation takes.
type LatencyMetric interface {
	Observe(kind string, latency time.Duration)
}

// ResultMetric counts a named operation's outcomes, partitioned by error.
type ResultMetric interface {
	Increment(kind string, err error)
}

var (
	// ReconcileLatency observes reconcile duration per controller kind.
	ReconcileLatency LatencyMetric = &latencyAdapter{m: reconcileDuration}

	// ReconcileResults counts reconcile outcomes per controller kind.
	ReconcileResults ResultMetric = &resultAdapter{m: reconcileTotal}

	// IndexerUploadLatency observes S3 upload duration per operation kind.
	IndexerUploadLatency LatencyMetric = &latencyAdapter{m: indexerUploadDuration}

	// IndexerUploadResults counts indexer upload outcomes.
	IndexerUploadResults ResultMetric = &resultAdapter{m: indexerUploadTotal}

	registerOnce sync.Once
)

var (
	reconcileDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kubimo_reconcile_duration_seconds",
			Help:    "Distribution of reconcile durations, partitioned by controller kind.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	reconcileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kubimo_reconcile_total",
			Help: "Number of reconciles, partitioned by controller kind and error string.",
		},
		[]string{"kind", "error"},
	)

	indexerUploadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kubimo_indexer_upload_duration_seconds",
			Help:    "Distribution of indexer S3 upload durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	indexerUploadTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kubimo_indexer_upload_total",
			Help: "Number of indexer S3 uploads, partitioned by outcome.",
		},
		[]string{"kind", "error"},
	)
)

// Register ensures the package's collectors are registered against
// controller-runtime's default registry exactly once.
func Register() {
	registerOnce.Do(func() {
		metrics.Registry.MustRegister(reconcileDuration, reconcileTotal, indexerUploadDuration, indexerUploadTotal)
	})
}

type latencyAdapter struct{ m *prometheus.HistogramVec }

func (l *latencyAdapter) Observe(kind string, latency time.Duration) {
	l.m.WithLabelValues(kind).Observe(latency.Seconds())
}

type resultAdapter struct{ m *prometheus.CounterVec }

func (r *resultAdapter) Increment(kind string, err error) {
	if err == nil {
		r.m.WithLabelValues(kind, "").Inc()
		return
	}
	r.m.WithLabelValues(kind, err.Error()).Inc()
}
