package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "platform_"

	resultSuccess  = "success"
	resultError    = "error"
	resultFallback = "fallback"
)

var (
	registerOnce sync.Once

	simulationTotal   *prometheus.CounterVec
	simulationLatency *prometheus.HistogramVec
	pipelineFailures  *prometheus.CounterVec

	assistantCalls   *prometheus.CounterVec
	assistantLatency *prometheus.HistogramVec

	reportExportTotal   *prometheus.CounterVec
	reportExportLatency *prometheus.HistogramVec

	tariffMutations *prometheus.CounterVec
)

// Init registers observability metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		simulationTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "simulation_total",
				Help: "Total simulation requests by result",
			},
			[]string{"result"},
		)
		simulationLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "simulation_latency_seconds",
				Help:    "Simulation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		pipelineFailures = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "simulation_pipeline_failures_total",
				Help: "Total pipeline failures by error code",
			},
			[]string{"code"},
		)

		assistantCalls = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "assistant_calls_total",
				Help: "Total assistant calls by operation and result",
			},
			[]string{"operation", "result"},
		)
		assistantLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "assistant_latency_seconds",
				Help:    "Assistant call latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
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

		tariffMutations = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "tariff_mutations_total",
				Help: "Total tariff catalog mutations by action",
			},
			[]string{"action"},
		)

		prometheus.MustRegister(
			simulationTotal,
			simulationLatency,
			pipelineFailures,
			assistantCalls,
			assistantLatency,
			reportExportTotal,
			reportExportLatency,
			tariffMutations,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

// ObserveSimulation records simulation duration and result.
func ObserveSimulation(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if simulationTotal != nil {
		simulationTotal.WithLabelValues(result).Inc()
	}
	if simulationLatency != nil {
		simulationLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncPipelineFailure increments the pipeline failure counter.
func IncPipelineFailure(code string) {
	if code == "" {
		code = "unknown"
	}
	if pipelineFailures != nil {
		pipelineFailures.WithLabelValues(code).Inc()
	}
}

// ObserveAssistantCall records an assistant call and whether the fallback was used.
func ObserveAssistantCall(operation, result string, duration time.Duration) {
	if operation == "" {
		operation = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if assistantCalls != nil {
		assistantCalls.WithLabelValues(operation, result).Inc()
	}
	if assistantLatency != nil {
		assistantLatency.WithLabelValues(operation).Observe(duration.Seconds())
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

// IncTariffMutation increments tariff mutation counters.
func IncTariffMutation(action string) {
	if action == "" {
		action = "unknown"
	}
	if tariffMutations != nil {
		tariffMutations.WithLabelValues(action).Inc()
	}
}

// Exported constants for callers.
const (
	ResultSuccess  = resultSuccess
	ResultError    = resultError
	ResultFallback = resultFallback
)
