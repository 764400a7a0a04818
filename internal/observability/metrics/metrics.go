// Package metrics exposes prometheus collectors for billing and closings.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "cashdesk_"

	ResultSuccess     = "success"
	ResultInvalid     = "invalid_input"
	ResultUnavailable = "unavailable"
	ResultConflict    = "conflict"
	ResultError       = "error"
)

var (
	registerOnce sync.Once

	invoicesCreated *prometheus.CounterVec
	invoiceAmount   *prometheus.CounterVec

	closingTotal   *prometheus.CounterVec
	closingLatency *prometheus.HistogramVec

	reportExportTotal   *prometheus.CounterVec
	reportExportLatency *prometheus.HistogramVec

	printJobs *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
)

// Init registers the collectors with reg, or the default registry when nil.
// Only the first call has an effect.
func Init(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}

		invoicesCreated = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "invoices_created_total",
				Help: "Total invoices issued by payment method",
			},
			[]string{"method"},
		)
		invoiceAmount = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "invoice_amount_total",
				Help: "Sum of invoice totals by payment method",
			},
			[]string{"method"},
		)

		closingTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "closings_total",
				Help: "Total closing attempts by result",
			},
			[]string{"result"},
		)
		closingLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "closing_latency_seconds",
				Help:    "Closing computation and persistence latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		reportExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_export_total",
				Help: "Total report exports by format and result",
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

		printJobs = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "print_jobs_total",
				Help: "Total thermal print jobs by document and result",
			},
			[]string{"document", "result"},
		)

		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)

		reg.MustRegister(
			invoicesCreated,
			invoiceAmount,
			closingTotal,
			closingLatency,
			reportExportTotal,
			reportExportLatency,
			printJobs,
			httpRequests,
			httpLatency,
		)
	})
}

// IncInvoiceCreated counts one issued invoice and its amount.
func IncInvoiceCreated(method string, amount float64) {
	if method == "" {
		method = "unknown"
	}
	if invoicesCreated != nil {
		invoicesCreated.WithLabelValues(method).Inc()
	}
	if invoiceAmount != nil && amount > 0 {
		invoiceAmount.WithLabelValues(method).Add(amount)
	}
}

// ObserveClosing records a closing attempt.
func ObserveClosing(result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if closingTotal != nil {
		closingTotal.WithLabelValues(result).Inc()
	}
	if closingLatency != nil {
		closingLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveReportExport records a report export.
func ObserveReportExport(format, result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if reportExportTotal != nil {
		reportExportTotal.WithLabelValues(format, result).Inc()
	}
	if reportExportLatency != nil {
		reportExportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// IncPrintJob counts a print attempt.
func IncPrintJob(document, result string) {
	if printJobs != nil {
		printJobs.WithLabelValues(document, result).Inc()
	}
}

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	if httpRequests != nil {
		httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	}
	if httpLatency != nil {
		httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
	}
}
