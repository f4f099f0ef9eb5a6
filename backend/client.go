package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AuroraMediaLabs/pipedash/logger"
	"github.com/AuroraMediaLabs/pipedash/metrics"
	pkgerrors "github.com/AuroraMediaLabs/pipedash/pkg/errors"
	"github.com/AuroraMediaLabs/pipedash/pkg/httputil"
)

const component = "backend"

// Client talks to the inference backend's REST surface.
type Client struct {
	baseURL string
	http    *http.Client
	stream  *http.Client
	health  *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the request/response HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) { cl.http = c }
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httputil.NewHTTPClient(httputil.DefaultAPITimeout),
		stream:  httputil.NewStreamClient(),
		health:  httputil.NewHTTPClient(httputil.DefaultHealthTimeout),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Health probes backend connectivity. A non-nil error means the UI should
// degrade to its offline indicator; it is not fatal.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return pkgerrors.New(component, "Health", err)
	}
	resp, err := c.health.Do(req)
	if err != nil {
		return pkgerrors.New(component, "Health", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return pkgerrors.New(component, "Health",
			fmt.Errorf("unexpected status")).WithStatusCode(resp.StatusCode)
	}
	return nil
}

// Browse lists media and folders under a path. Each returned video entry may
// carry a sidecar prompt file discovered next to it.
func (c *Client) Browse(ctx context.Context, req *BrowseRequest) (*BrowseResponse, error) {
	var out BrowseResponse
	if err := c.doJSON(ctx, "Browse", http.MethodPost, "/browse", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateJob submits a job and returns the backend's job record, whose id is
// then used for polling or stream subscription. The editor state is left
// untouched on failure so the user can retry.
func (c *Client) CreateJob(ctx context.Context, req *CreateJobRequest) (*Job, error) {
	var out createJobResponse
	err := c.doJSON(ctx, "CreateJob", http.MethodPost, "/jobs", req, &out)
	metrics.RecordJobSubmitted(err == nil)
	if err != nil {
		return nil, err
	}
	logger.JobSubmitted(out.Job.ID, out.Job.Name, len(req.Workflow.Stages), len(req.Inputs))
	return &out.Job, nil
}

// GetJob fetches a job with whatever result data the backend has.
// Unknown ids surface as a 404-tagged error; see pkg/errors.IsNotFound.
func (c *Client) GetJob(ctx context.Context, id string) (*JobDetail, error) {
	var out JobDetail
	if err := c.doJSON(ctx, "GetJob", http.MethodGet, "/jobs/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Progress fetches the current progress snapshot. When no job is active the
// backend answers with is_active=false, which decodes to an inactive state
// rather than an error.
func (c *Client) Progress(ctx context.Context) (*ProgressState, error) {
	var out ProgressState
	if err := c.doJSON(ctx, "Progress", http.MethodGet, "/progress", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSettings fetches the persisted default parameter sets and output/API
// settings.
func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	var out Settings
	if err := c.doJSON(ctx, "GetSettings", http.MethodGet, "/settings", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSettings replaces the persisted settings.
func (c *Client) UpdateSettings(ctx context.Context, s *Settings) error {
	return c.doJSON(ctx, "UpdateSettings", http.MethodPut, "/settings", s, nil)
}

// doJSON performs one JSON request/response exchange, wrapping failures with
// component/operation context and the response status code.
func (c *Client) doJSON(ctx context.Context, op, method, path string, body, out any) error {
	start := time.Now()
	err := c.exchange(ctx, method, path, body, out)
	metrics.ObserveBackendRequest(op, time.Since(start).Seconds(), err)
	if err != nil {
		logger.APIResponse(method, c.baseURL+path, pkgerrors.StatusCodeOf(err), err)
		if ce, ok := err.(*pkgerrors.ContextualError); ok {
			ce.Operation = op
			return ce
		}
		return pkgerrors.New(component, op, err)
	}
	return nil
}

func (c *Client) exchange(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.New(component, "", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.New(component, "", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	logger.APIRequest(method, c.baseURL+path)

	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.New(component, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := readErrorMessage(resp.Body)
		return pkgerrors.New(component, "", fmt.Errorf("%s", msg)).
			WithStatusCode(resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.New(component, "", fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// readErrorMessage extracts a human-readable message from an error body.
// Backends answer either {"error": "..."} or plain text.
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return "request failed"
	}
	var wrapped struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &wrapped) == nil && wrapped.Error != "" {
		return wrapped.Error
	}
	return strings.TrimSpace(string(data))
}
