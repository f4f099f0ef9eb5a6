package backend

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/AuroraMediaLabs/pipedash/logger"
	pkgerrors "github.com/AuroraMediaLabs/pipedash/pkg/errors"
)

// StreamEventType identifies a progress stream event.
type StreamEventType string

// Stream event types delivered by the backend.
const (
	EventProgress StreamEventType = "progress"
	EventComplete StreamEventType = "complete"
	EventIdle     StreamEventType = "idle"
)

// StreamEvent is one server-push progress event.
type StreamEvent struct {
	Type  StreamEventType
	State *ProgressState
}

// eventBuffer is the channel buffer size for stream consumers; progress
// events are coalescable so a slow consumer only delays, never deadlocks.
const eventBuffer = 16

// StreamProgress subscribes to the backend's server-push progress stream.
// Events are delivered on the returned channel until the context is
// cancelled, the backend closes the stream, or a read error occurs; the
// channel is closed in all cases. A non-nil error return means the
// subscription never got established (the caller should fall back to
// polling); errors after establishment surface as a closed channel, which
// the tracker likewise treats as a fallback trigger unless a terminal event
// was already delivered.
func (c *Client) StreamProgress(ctx context.Context) (<-chan StreamEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/progress/stream", nil)
	if err != nil {
		return nil, pkgerrors.New(component, "StreamProgress", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.stream.Do(req)
	if err != nil {
		return nil, pkgerrors.New(component, "StreamProgress", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, pkgerrors.New(component, "StreamProgress",
			fmt.Errorf("unexpected status")).WithStatusCode(resp.StatusCode)
	}

	events := make(chan StreamEvent, eventBuffer)
	go func() {
		defer close(events)
		defer resp.Body.Close()
		c.readEvents(ctx, bufio.NewScanner(resp.Body), events)
	}()
	return events, nil
}

// readEvents parses the SSE wire format: "event:"/"data:" line pairs
// separated by blank lines. Unknown event types are skipped.
func (c *Client) readEvents(ctx context.Context, scanner *bufio.Scanner, events chan<- StreamEvent) {
	var eventType, data string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			eventType = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		case line == "":
			if ev, ok := decodeEvent(eventType, data); ok {
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				}
			}
			eventType, data = "", ""
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		logger.Warn("progress stream read failed", "error", err)
	}
}

// decodeEvent turns one SSE event into a StreamEvent.
func decodeEvent(eventType, data string) (StreamEvent, bool) {
	switch StreamEventType(eventType) {
	case EventProgress, EventComplete:
		var state ProgressState
		if data == "" || json.Unmarshal([]byte(data), &state) != nil {
			return StreamEvent{}, false
		}
		return StreamEvent{Type: StreamEventType(eventType), State: &state}, true
	case EventIdle:
		return StreamEvent{Type: EventIdle, State: &ProgressState{Active: false}}, true
	default:
		return StreamEvent{}, false
	}
}
