package aicc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go-coursecreator/internal/config"
	"go-coursecreator/internal/observability"

	"go.uber.org/zap"
)

// Response is a raw upstream reply, relayed to callers as-is
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// Course is one record from the service. Its fields are not fixed, so it
// is kept as a generic map and reshaped by the course feature.
type Course map[string]any

type Client interface {
	CreateCourse(ctx context.Context, payload map[string]any) (*Response, error)
	ListCourses(ctx context.Context) ([]Course, error)
	GetCourse(ctx context.Context, id string) (*Response, error)
	GetTaskStatus(ctx context.Context, course string) (*Response, error)
}

type HTTPClient struct {
	BaseURL       string
	APIKey        string
	CreateTimeout time.Duration
	ReadTimeout   time.Duration
	PageSize      int
	HttpClient    *http.Client
	Logger        *zap.Logger
}

func NewClient(cfg *config.Config, logger *zap.Logger) Client {
	return &HTTPClient{
		BaseURL:       cfg.AICCBaseURL,
		APIKey:        cfg.AICCAPIKey,
		CreateTimeout: cfg.AICCCreateTimeout,
		ReadTimeout:   cfg.AICCReadTimeout,
		PageSize:      cfg.AICCListPageSize,
		HttpClient:    &http.Client{},
		Logger:        logger,
	}
}

// CreateCourse forwards a generation request. Any HTTP status from the
// service is returned as a Response; only transport failures are errors.
func (c *HTTPClient) CreateCourse(ctx context.Context, payload map[string]any) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode course request: %w", err)
	}
	return c.do(ctx, "create_course", http.MethodPost, "/api/courses/", body, c.CreateTimeout)
}

// ListCourses fetches a single page of PageSize courses. Collections larger
// than that are truncated.
func (c *HTTPClient) ListCourses(ctx context.Context) ([]Course, error) {
	path := "/api/courses/?page_size=" + strconv.Itoa(c.PageSize)
	resp, err := c.do(ctx, "list_courses", http.MethodGet, path, nil, c.ReadTimeout)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{Kind: KindStatus, Operation: "list_courses", StatusCode: resp.StatusCode, Body: resp.Body}
	}

	courses, err := decodeCourses(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Kind: KindDecode, Operation: "list_courses", StatusCode: resp.StatusCode, Body: resp.Body, Err: err}
	}
	return courses, nil
}

func (c *HTTPClient) GetCourse(ctx context.Context, id string) (*Response, error) {
	return c.do(ctx, "get_course", http.MethodGet, "/api/courses/"+url.PathEscape(id)+"/", nil, c.ReadTimeout)
}

func (c *HTTPClient) GetTaskStatus(ctx context.Context, course string) (*Response, error) {
	return c.do(ctx, "task_status", http.MethodGet, "/api/task-status/"+url.PathEscape(course)+"/", nil, c.ReadTimeout)
}

func (c *HTTPClient) do(ctx context.Context, operation, method, path string, body []byte, timeout time.Duration) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build aicc request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	start := time.Now()
	resp, err := c.HttpClient.Do(req)
	if err != nil {
		uerr := classify(operation, err)
		observability.AICCRequestDuration.WithLabelValues(operation, string(uerr.Kind)).Observe(time.Since(start).Seconds())
		c.Logger.Error("AICC request failed",
			zap.String("operation", operation),
			zap.String("kind", string(uerr.Kind)),
			zap.Error(err))
		return nil, uerr
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		uerr := classify(operation, err)
		observability.AICCRequestDuration.WithLabelValues(operation, string(uerr.Kind)).Observe(time.Since(start).Seconds())
		return nil, uerr
	}
	observability.AICCRequestDuration.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	c.Logger.Debug("AICC request completed",
		zap.String("operation", operation),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}

// decodeCourses accepts either a bare JSON array or a paginated
// {"results": [...]} envelope.
func decodeCourses(body []byte) ([]Course, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var courses []Course
		if err := json.Unmarshal(trimmed, &courses); err != nil {
			return nil, err
		}
		return courses, nil
	}

	var page struct {
		Results []Course `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, err
	}
	if page.Results == nil {
		page.Results = []Course{}
	}
	return page.Results, nil
}

// Payload is the body to relay to our own callers. Non-JSON bodies are
// wrapped so the response stays JSON.
func (r *Response) Payload() any {
	if len(r.Body) == 0 {
		return map[string]any{}
	}
	if !json.Valid(r.Body) {
		return map[string]any{"detail": string(r.Body)}
	}
	return r.Body
}

// OK reports a 2xx upstream status
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
