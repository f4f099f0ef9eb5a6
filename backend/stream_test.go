package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sseServer serves a canned event sequence on /progress/stream.
func sseServer(t *testing.T, events []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/progress/stream", r.URL.Path)
		require.Equal(t, "text/event-stream", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, ev := range events {
			fmt.Fprint(w, ev)
			flusher.Flush()
		}
	}))
}

func collectEvents(t *testing.T, ch <-chan StreamEvent) []StreamEvent {
	t.Helper()
	var got []StreamEvent
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return got
			}
			got = append(got, ev)
		case <-timeout:
			t.Fatal("timed out waiting for stream events")
		}
	}
}

func TestStreamProgress_DeliversEvents(t *testing.T) {
	srv := sseServer(t, []string{
		"event: progress\ndata: {\"is_active\":true,\"job_id\":\"j1\",\"overall_percent\":40}\n\n",
		"event: progress\ndata: {\"is_active\":true,\"job_id\":\"j1\",\"overall_percent\":80}\n\n",
		"event: complete\ndata: {\"is_active\":false,\"job_id\":\"j1\",\"status\":\"completed\"}\n\n",
	})
	defer srv.Close()

	c := NewClient(srv.URL)
	ch, err := c.StreamProgress(context.Background())
	require.NoError(t, err)

	got := collectEvents(t, ch)
	require.Len(t, got, 3)
	assert.Equal(t, EventProgress, got[0].Type)
	assert.Equal(t, 40.0, got[0].State.OverallPercent)
	assert.Equal(t, EventComplete, got[2].Type)
	assert.Equal(t, JobCompleted, got[2].State.Status)
}

func TestStreamProgress_IdleEvent(t *testing.T) {
	srv := sseServer(t, []string{"event: idle\ndata: {}\n\n"})
	defer srv.Close()

	c := NewClient(srv.URL)
	ch, err := c.StreamProgress(context.Background())
	require.NoError(t, err)

	got := collectEvents(t, ch)
	require.Len(t, got, 1)
	assert.Equal(t, EventIdle, got[0].Type)
	assert.False(t, got[0].State.Active)
}

func TestStreamProgress_SkipsMalformedAndUnknown(t *testing.T) {
	srv := sseServer(t, []string{
		"event: progress\ndata: not-json\n\n",
		"event: heartbeat\ndata: {}\n\n",
		"event: progress\ndata: {\"is_active\":true,\"overall_percent\":10}\n\n",
	})
	defer srv.Close()

	c := NewClient(srv.URL)
	ch, err := c.StreamProgress(context.Background())
	require.NoError(t, err)

	got := collectEvents(t, ch)
	require.Len(t, got, 1)
	assert.Equal(t, 10.0, got[0].State.OverallPercent)
}

func TestStreamProgress_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotImplemented)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.StreamProgress(context.Background())
	require.Error(t, err)
}

func TestStreamProgress_ContextCancelClosesChannel(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.(http.Flusher).Flush()
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	c := NewClient(srv.URL)
	ch, err := c.StreamProgress(ctx)
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should close after cancel")
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after context cancel")
	}
}
