// Package metrics exposes Prometheus instrumentation for repository calls,
// the response cache and page outcomes.
package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "patisserie"

// Recorder is safe to use as a nil pointer: every method is then a no-op.
type Recorder struct {
	registry     *prom.Registry
	repoDuration *prom.HistogramVec
	cacheLookups *prom.CounterVec
	pageVerdicts *prom.CounterVec
	refChanges   prom.Counter
}

// NewRecorder registers the collectors on a fresh registry.
func NewRecorder() *Recorder {
	reg := prom.NewRegistry()
	r := &Recorder{
		registry: reg,
		repoDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "repository_request_duration_seconds",
			Help:      "Duration of content repository calls",
			Buckets:   prom.DefBuckets,
		}, []string{"op", "result"}),
		cacheLookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Repository cache lookups by result",
		}, []string{"kind", "result"}),
		pageVerdicts: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "page_verdicts_total",
			Help:      "Detail page slug verdicts by page type",
		}, []string{"page", "verdict"}),
		refChanges: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "master_ref_changes_total",
			Help:      "Number of times the repository master ref changed",
		}),
	}
	reg.MustRegister(r.repoDuration, r.cacheLookups, r.pageVerdicts, r.refChanges)
	reg.MustRegister(promcollect.NewGoCollector(), promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}))
	return r
}

// ObserveRepository records one repository call.
func (r *Recorder) ObserveRepository(op string, d time.Duration, err error) {
	if r == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failed"
	}
	r.repoDuration.WithLabelValues(op, result).Observe(d.Seconds())
}

// IncCacheLookup counts a cache hit or miss for a kind of entry (document, documents, query, bookmark).
func (r *Recorder) IncCacheLookup(kind string, hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(kind, result).Inc()
}

// IncVerdict counts a slug verdict for a detail page.
func (r *Recorder) IncVerdict(page, verdict string) {
	if r == nil {
		return
	}
	r.pageVerdicts.WithLabelValues(page, verdict).Inc()
}

func (r *Recorder) IncRefChange() {
	if r == nil {
		return
	}
	r.refChanges.Inc()
}

// Registry returns the underlying registry, nil for a nil Recorder.
func (r *Recorder) Registry() *prom.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
