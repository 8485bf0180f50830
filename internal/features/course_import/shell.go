package course_import

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-coursecreator/internal/config"

	"go.uber.org/zap"
)

// CourseShellCreator creates the empty course a staged archive is imported into
type CourseShellCreator interface {
	CreateCourse(ctx context.Context, requesterID string, key CourseKey) (string, error)
}

// CMSCourseCreator calls the authoring platform's course-run API
type CMSCourseCreator struct {
	BaseURL    string
	Token      string
	HttpClient *http.Client
	Logger     *zap.Logger
}

func NewCMSCourseCreator(cfg *config.Config, logger *zap.Logger) CourseShellCreator {
	return &CMSCourseCreator{
		BaseURL: cfg.CMSRootURL,
		Token:   cfg.CMSAPIToken,
		HttpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		Logger: logger,
	}
}

type courseRunRequest struct {
	Org       string `json:"org"`
	Number    string `json:"number"`
	Run       string `json:"run"`
	Requester string `json:"requester_id,omitempty"`
}

func (c *CMSCourseCreator) CreateCourse(ctx context.Context, requesterID string, key CourseKey) (string, error) {
	if c.BaseURL == "" {
		return "", fmt.Errorf("CMS root URL is not configured")
	}

	body, err := json.Marshal(courseRunRequest{Org: key.Org, Number: key.Number, Run: key.Run, Requester: requesterID})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/v1/course_runs/", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to create course %s: %w", key, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("failed to create course %s: status %d: %s", key, resp.StatusCode, respBody)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &created); err == nil && created.ID != "" {
		c.Logger.Info("Created course", zap.String("course_key", created.ID))
		return created.ID, nil
	}
	c.Logger.Info("Created course", zap.String("course_key", key.String()))
	return key.String(), nil
}
