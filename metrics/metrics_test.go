package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { Register(reg) })
}

func TestRecordJobSubmitted(t *testing.T) {
	before := testutil.ToFloat64(jobsSubmittedTotal.WithLabelValues("success"))
	RecordJobSubmitted(true)
	assert.Equal(t, before+1, testutil.ToFloat64(jobsSubmittedTotal.WithLabelValues("success")))

	beforeErr := testutil.ToFloat64(jobsSubmittedTotal.WithLabelValues("error"))
	RecordJobSubmitted(false)
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(jobsSubmittedTotal.WithLabelValues("error")))
}

func TestPollAndFallbackCounters(t *testing.T) {
	beforePoll := testutil.ToFloat64(pollCyclesTotal)
	RecordPollCycle()
	assert.Equal(t, beforePoll+1, testutil.ToFloat64(pollCyclesTotal))

	beforeFallback := testutil.ToFloat64(streamFallbacksTotal)
	RecordStreamFallback()
	assert.Equal(t, beforeFallback+1, testutil.ToFloat64(streamFallbacksTotal))
}

func TestTrackerGauge(t *testing.T) {
	before := testutil.ToFloat64(trackersActive)
	TrackerStarted()
	assert.Equal(t, before+1, testutil.ToFloat64(trackersActive))
	TrackerStopped()
	assert.Equal(t, before, testutil.ToFloat64(trackersActive))
}

func TestObserveBackendRequest(t *testing.T) {
	require.NotPanics(t, func() {
		ObserveBackendRequest("CreateJob", 0.25, nil)
		ObserveBackendRequest("CreateJob", 1.5, errors.New("boom"))
	})
}
