package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	Init(reg)
	Init(reg)

	IncInvoiceCreated("cash", 590)
	IncInvoiceCreated("cash", 10)
	ObserveClosing(ResultSuccess, 20*time.Millisecond)
	ObserveClosing(ResultConflict, time.Millisecond)
	ObserveReportExport("xlsx", ResultSuccess, time.Millisecond)
	IncPrintJob("receipt", ResultError)
	ObserveHTTPRequest("GET", "/api/v1/closings", 200, time.Millisecond)

	assert.Equal(t, 2.0, counterValue(t, invoicesCreated.WithLabelValues("cash")))
	assert.Equal(t, 600.0, counterValue(t, invoiceAmount.WithLabelValues("cash")))
	assert.Equal(t, 1.0, counterValue(t, closingTotal.WithLabelValues(ResultConflict)))
	assert.Equal(t, 1.0, counterValue(t, printJobs.WithLabelValues("receipt", ResultError)))
	assert.Equal(t, 1.0, counterValue(t, httpRequests.WithLabelValues("GET", "/api/v1/closings", "200")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
