package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AuroraMediaLabs/pipedash/pkg/testutil"
)

func TestEstimateETA_Inactive(t *testing.T) {
	assert.Zero(t, EstimateETA(nil))
	assert.Zero(t, EstimateETA(&ProgressState{Active: false}))
}

func TestEstimateETA_BackendSuppliedWins(t *testing.T) {
	p := &ProgressState{
		Active:          true,
		TotalVideos:     10,
		CompletedVideos: 2,
		ElapsedSeconds:  600,
		EstimatedETA:    testutil.Ptr(42.5),
	}
	assert.Equal(t, 42.5, EstimateETA(p))
}

func TestEstimateETA_NoCompletedUsesDefault(t *testing.T) {
	p := &ProgressState{
		Active:       true,
		TotalVideos:  5,
		CurrentIndex: 1,
	}
	assert.Equal(t, 4*DefaultSecondsPerVideo, EstimateETA(p))
}

func TestEstimateETA_Extrapolates(t *testing.T) {
	// 2 videos done in 200s, 3 remain: 100s each.
	p := &ProgressState{
		Active:          true,
		TotalVideos:     5,
		CompletedVideos: 2,
		ElapsedSeconds:  200,
	}
	assert.InDelta(t, 300, EstimateETA(p), 0.001)
}

func TestEstimateETA_CreditsInFlightProgress(t *testing.T) {
	// Same throughput, current video half done: 300 - 50.
	p := &ProgressState{
		Active:          true,
		TotalVideos:     5,
		CompletedVideos: 2,
		ElapsedSeconds:  200,
		CurrentProgress: 0.5,
	}
	assert.InDelta(t, 250, EstimateETA(p), 0.001)
}

func TestEstimateETA_NeverNegative(t *testing.T) {
	p := &ProgressState{
		Active:          true,
		TotalVideos:     2,
		CompletedVideos: 2,
		ElapsedSeconds:  100,
		CurrentProgress: 1,
	}
	assert.Zero(t, EstimateETA(p))
}
