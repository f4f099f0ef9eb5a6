package httputil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AuroraMediaLabs/pipedash/pkg/httputil"
)

func TestDefaultConstants(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 30*time.Second, httputil.DefaultAPITimeout, "API timeout should be 30s")
	assert.Equal(t, 5*time.Second, httputil.DefaultHealthTimeout, "health timeout should be 5s")
}

func TestNewHTTPClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		timeout time.Duration
	}{
		{"api timeout", httputil.DefaultAPITimeout},
		{"health timeout", httputil.DefaultHealthTimeout},
		{"custom timeout", 5 * time.Second},
		{"zero timeout", 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := httputil.NewHTTPClient(tt.timeout)
			require.NotNil(t, client, "returned client must not be nil")
			assert.Equal(t, tt.timeout, client.Timeout, "client timeout must match requested value")
		})
	}
}

func TestNewHTTPClient_DistinctInstances(t *testing.T) {
	t.Parallel()

	a := httputil.NewHTTPClient(httputil.DefaultAPITimeout)
	b := httputil.NewHTTPClient(httputil.DefaultAPITimeout)
	assert.NotSame(t, a, b, "each call must return a fresh client")
}

func TestNewStreamClient(t *testing.T) {
	t.Parallel()

	client := httputil.NewStreamClient()
	require.NotNil(t, client)
	assert.Zero(t, client.Timeout, "stream client must not carry an overall timeout")
}
