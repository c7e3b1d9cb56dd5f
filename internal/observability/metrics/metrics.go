package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "appraisal_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	appraisalRequests *prometheus.CounterVec
	appraisalLatency  *prometheus.HistogramVec

	methodFailures *prometheus.CounterVec

	reportExportTotal   *prometheus.CounterVec
	reportExportLatency *prometheus.HistogramVec

	geocodeLookups *prometheus.CounterVec
)

// Init registers observability metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		appraisalRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "requests_total",
				Help: "Total appraisal computations by result",
			},
			[]string{"result"},
		)
		appraisalLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "latency_seconds",
				Help:    "Appraisal computation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		methodFailures = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "method_failures_total",
				Help: "Valuation methods that failed to compute, by method",
			},
			[]string{"method"},
		)

		reportExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_export_total",
				Help: "Total report export operations by format and result",
			},
			[]string{"format", "result"},
		)
		reportExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_export_latency_seconds",
				Help:    "Report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		geocodeLookups = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "geocode_lookups_total",
				Help: "Geocoding lookups by result",
			},
			[]string{"result"},
		)

		prometheus.MustRegister(
			appraisalRequests,
			appraisalLatency,
			methodFailures,
			reportExportTotal,
			reportExportLatency,
			geocodeLookups,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

// ObserveAppraisal records appraisal duration and result.
func ObserveAppraisal(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if appraisalRequests != nil {
		appraisalRequests.WithLabelValues(result).Inc()
	}
	if appraisalLatency != nil {
		appraisalLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncMethodFailure counts a valuation method that failed to compute.
func IncMethodFailure(method string) {
	if method == "" {
		method = "unknown"
	}
	if methodFailures != nil {
		methodFailures.WithLabelValues(method).Inc()
	}
}

// ObserveReportExport records export latency and result.
func ObserveReportExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if reportExportTotal != nil {
		reportExportTotal.WithLabelValues(format, result).Inc()
	}
	if reportExportLatency != nil {
		reportExportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// IncGeocodeLookup counts a geocoding lookup by result.
func IncGeocodeLookup(result string) {
	if result == "" {
		result = "unknown"
	}
	if geocodeLookups != nil {
		geocodeLookups.WithLabelValues(result).Inc()
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError

	GeocodeResultHit      = "hit"
	GeocodeResultMiss     = "miss"
	GeocodeResultDegraded = "degraded"
)
