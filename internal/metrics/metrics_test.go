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

func TestObserveMutation(t *testing.T) {
	initMetrics()
	before := counterValue(t, mutationTotal.WithLabelValues("insert", ResultApplied))
	noopBefore := counterValue(t, mutationTotal.WithLabelValues("insert", ResultNoop))

	ObserveMutation("insert", true)
	ObserveMutation("insert", false)
	ObserveMutation("insert", true)

	assert.Equal(t, before+2, counterValue(t, mutationTotal.WithLabelValues("insert", ResultApplied)))
	assert.Equal(t, noopBefore+1, counterValue(t, mutationTotal.WithLabelValues("insert", ResultNoop)))
}

func TestObserveUpload(t *testing.T) {
	initMetrics()
	bytesBefore := counterValue(t, uploadBytesTotal)
	failedBefore := counterValue(t, uploadTotal.WithLabelValues(UploadFailed))

	ObserveUpload(UploadSuccess, 2048)
	ObserveUpload(UploadFailed, 4096)

	assert.Equal(t, bytesBefore+2048, counterValue(t, uploadBytesTotal))
	assert.Equal(t, failedBefore+1, counterValue(t, uploadTotal.WithLabelValues(UploadFailed)))
}

func TestObserveRender(t *testing.T) {
	initMetrics()
	before := counterValue(t, renderTotal.WithLabelValues("template", SourceCache))

	ObserveRender("template", SourceCache, 0)

	assert.Equal(t, before+1, counterValue(t, renderTotal.WithLabelValues("template", SourceCache)))
}

func TestObserveHTTPRequest(t *testing.T) {
	initMetrics()
	before := counterValue(t, httpRequests.WithLabelValues("GET", "unmatched", "404"))

	ObserveHTTPRequest("GET", "", 404, 5*time.Millisecond)

	assert.Equal(t, before+1, counterValue(t, httpRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestObserveJob(t *testing.T) {
	initMetrics()
	before := counterValue(t, jobRuns.WithLabelValues("warm_render", JobFailure))

	ObserveJob("warm_render", JobFailure, time.Second)

	assert.Equal(t, before+1, counterValue(t, jobRuns.WithLabelValues("warm_render", JobFailure)))
}
