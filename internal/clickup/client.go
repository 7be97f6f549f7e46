package clickup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	backoff "github.com/cenkalti/backoff/v5"
	"golang.org/x/time/rate"

	"github.com/cuptool/cuptool/internal/logging"
)

const (
	// DefaultBaseURL is the ClickUp v2 API root.
	DefaultBaseURL = "https://api.clickup.com/api/v2"

	// DefaultRequestsPerMinute matches the rate limit of ClickUp's
	// free plan. Paid plans allow more; tune with WithRateLimit.
	DefaultRequestsPerMinute = 100

	defaultMaxTries = 4
)

// APIError is a non-2xx response from the ClickUp API. Code carries
// ClickUp's ECODE identifier when the response body includes one.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("clickup: %s (%s, HTTP %d)", e.Message, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("clickup: %s (HTTP %d)", e.Message, e.StatusCode)
}

// IsNotFound reports whether err is an APIError with HTTP status 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// MetricsRecorder receives throttling and retry events from the
// client. Implemented by instrumentation.Metrics; a nil recorder
// disables recording.
type MetricsRecorder interface {
	RecordRateLimitWait(ctx context.Context, wait time.Duration)
	RecordAPIRetry(ctx context.Context, reason string)
}

// Client is an authenticated ClickUp API client. It is safe for
// concurrent use; the rate limiter is shared across goroutines.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	limiter    *rate.Limiter
	maxTries   uint
	metrics    MetricsRecorder
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL points the client at a different API root. Used by
// tests and by ClickUp's EU data residency hosts.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

// WithRateLimit sets the client-side token bucket in requests per
// minute, with a burst of one tenth of the rate.
func WithRateLimit(perMinute int) Option {
	return func(c *Client) {
		burst := perMinute / 10
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
	}
}

// WithMaxTries sets how often a request is attempted before the
// client gives up on retryable (429/5xx) failures.
func WithMaxTries(n uint) Option {
	return func(c *Client) { c.maxTries = n }
}

// WithMetrics attaches a metrics recorder for rate limiter waits and
// request retries.
func WithMetrics(rec MetricsRecorder) Option {
	return func(c *Client) { c.metrics = rec }
}

// NewClient creates a ClickUp client authenticating with the given
// API token (a personal token or an OAuth access token).
func NewClient(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("clickup: API token is required")
	}

	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
		token:      token,
		maxTries:   defaultMaxTries,
	}
	WithRateLimit(DefaultRequestsPerMinute)(c)

	for _, opt := range opts {
		opt(c)
	}

	slog.Debug("clickup client created",
		slog.String("base_url", c.baseURL),
		slog.String("token", logging.SanitizeToken(token)))
	return c, nil
}

// do performs one API call: rate limit, request, retry on 429/5xx
// honoring Retry-After, decode into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	waitStart := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	if c.metrics != nil {
		c.metrics.RecordRateLimitWait(ctx, time.Since(waitStart))
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	operation := func() ([]byte, error) {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("Authorization", c.token)
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer func() { _ = resp.Body.Close() }()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			if c.metrics != nil {
				c.metrics.RecordAPIRetry(ctx, "rate_limited")
			}
			slog.Debug("clickup request throttled",
				logging.Operation(method+" "+path),
				slog.String("retry_after", resp.Header.Get("Retry-After")))
			if secs, perr := strconv.Atoi(resp.Header.Get("Retry-After")); perr == nil && secs > 0 {
				return nil, backoff.RetryAfter(secs)
			}
			return nil, decodeAPIError(resp.StatusCode, data)
		case resp.StatusCode >= 500:
			if c.metrics != nil {
				c.metrics.RecordAPIRetry(ctx, "server_error")
			}
			apiErr := decodeAPIError(resp.StatusCode, data)
			slog.Debug("retrying clickup request",
				logging.Operation(method+" "+path),
				logging.Err(apiErr))
			return nil, apiErr
		case resp.StatusCode >= 400:
			return nil, backoff.Permanent(decodeAPIError(resp.StatusCode, data))
		}
		return data, nil
	}

	data, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.maxTries),
	)
	if err != nil {
		return err
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// decodeAPIError builds an APIError from ClickUp's error body
// ({"err": "...", "ECODE": "..."}) when present.
func decodeAPIError(status int, data []byte) *APIError {
	var body struct {
		Err   string `json:"err"`
		Ecode string `json:"ECODE"`
	}
	apiErr := &APIError{StatusCode: status, Message: http.StatusText(status)}
	if err := json.Unmarshal(data, &body); err == nil && body.Err != "" {
		apiErr.Message = body.Err
		apiErr.Code = body.Ecode
	}
	return apiErr
}

// Workspaces lists the workspaces (teams) visible to the token.
func (c *Client) Workspaces(ctx context.Context) ([]Workspace, error) {
	var resp struct {
		Teams []Workspace `json:"teams"`
	}
	if err := c.do(ctx, http.MethodGet, "/team", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return resp.Teams, nil
}

// Spaces lists the spaces of a workspace.
func (c *Client) Spaces(ctx context.Context, workspaceID string, includeArchived bool) ([]Space, error) {
	query := url.Values{"archived": {strconv.FormatBool(includeArchived)}}
	var resp struct {
		Spaces []Space `json:"spaces"`
	}
	if err := c.do(ctx, http.MethodGet, "/team/"+workspaceID+"/space", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}
	return resp.Spaces, nil
}

// Folders lists the folders of a space.
func (c *Client) Folders(ctx context.Context, spaceID string) ([]Folder, error) {
	var resp struct {
		Folders []Folder `json:"folders"`
	}
	if err := c.do(ctx, http.MethodGet, "/space/"+spaceID+"/folder", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	return resp.Folders, nil
}

// Lists lists the lists of a folder.
func (c *Client) Lists(ctx context.Context, folderID string) ([]List, error) {
	var resp struct {
		Lists []List `json:"lists"`
	}
	if err := c.do(ctx, http.MethodGet, "/folder/"+folderID+"/list", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list lists: %w", err)
	}
	return resp.Lists, nil
}

// FolderlessLists lists the lists that live directly in a space.
func (c *Client) FolderlessLists(ctx context.Context, spaceID string) ([]List, error) {
	var resp struct {
		Lists []List `json:"lists"`
	}
	if err := c.do(ctx, http.MethodGet, "/space/"+spaceID+"/list", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list folderless lists: %w", err)
	}
	return resp.Lists, nil
}

// TaskListOptions narrows a Tasks call.
type TaskListOptions struct {
	// IncludeClosed also returns tasks in a closed status.
	IncludeClosed bool
	// Subtasks also returns subtasks, not only top-level tasks.
	Subtasks bool
}

// Tasks lists all tasks of a list, following ClickUp's page-based
// pagination until the API reports the last page.
func (c *Client) Tasks(ctx context.Context, listID string, opts TaskListOptions) ([]Task, error) {
	var all []Task
	for page := 0; ; page++ {
		query := url.Values{"page": {strconv.Itoa(page)}}
		if opts.IncludeClosed {
			query.Set("include_closed", "true")
		}
		if opts.Subtasks {
			query.Set("subtasks", "true")
		}

		var resp struct {
			Tasks    []Task `json:"tasks"`
			LastPage bool   `json:"last_page"`
		}
		if err := c.do(ctx, http.MethodGet, "/list/"+listID+"/task", query, nil, &resp); err != nil {
			return nil, fmt.Errorf("failed to list tasks (page %d): %w", page, err)
		}

		all = append(all, resp.Tasks...)
		if resp.LastPage || len(resp.Tasks) == 0 {
			return all, nil
		}
	}
}

// Task retrieves a single task by ID.
func (c *Client) Task(ctx context.Context, taskID string) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodGet, "/task/"+taskID, nil, nil, &task); err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

// CreateTask creates a task in a list.
func (c *Client) CreateTask(ctx context.Context, listID string, input TaskInput) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPost, "/list/"+listID+"/task", nil, input, &task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &task, nil
}

// UpdateTask applies a partial update to a task.
func (c *Client) UpdateTask(ctx context.Context, taskID string, input TaskInput) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPut, "/task/"+taskID, nil, input, &task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return &task, nil
}

// CloseTask moves a task into the given closing status ("complete"
// for ClickUp's default status set).
func (c *Client) CloseTask(ctx context.Context, taskID, status string) (*Task, error) {
	task, err := c.UpdateTask(ctx, taskID, TaskInput{Status: status})
	if err != nil {
		return nil, fmt.Errorf("failed to close task: %w", err)
	}
	return task, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	if err := c.do(ctx, http.MethodDelete, "/task/"+taskID, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// Comments lists the comments of a task.
func (c *Client) Comments(ctx context.Context, taskID string) ([]Comment, error) {
	var resp struct {
		Comments []Comment `json:"comments"`
	}
	if err := c.do(ctx, http.MethodGet, "/task/"+taskID+"/comment", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return resp.Comments, nil
}

// AddComment adds a comment to a task.
func (c *Client) AddComment(ctx context.Context, taskID, text string) (*Comment, error) {
	body := map[string]string{"comment_text": text}
	var comment Comment
	if err := c.do(ctx, http.MethodPost, "/task/"+taskID+"/comment", nil, body, &comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	return &comment, nil
}
