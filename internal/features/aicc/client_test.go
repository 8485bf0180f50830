package aicc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &HTTPClient{
		BaseURL:       srv.URL,
		APIKey:        "k-123",
		CreateTimeout: 2 * time.Second,
		ReadTimeout:   2 * time.Second,
		PageSize:      1000,
		HttpClient:    srv.Client(),
		Logger:        zap.NewNop(),
	}
}

func TestCreateCourseForwardsPayloadAndKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/courses/", r.URL.Path)
		assert.Equal(t, "Bearer k-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Rust", body["topic"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":7,"status":"structure_generated"}`))
	})

	resp, err := client.CreateCourse(context.Background(), map[string]any{"action": "create", "topic": "Rust"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"id":7,"status":"structure_generated"}`, string(resp.Body))
}

func TestCreateCourseRelaysErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"topic":["required"]}`))
	})

	resp, err := client.CreateCourse(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCreateCourseTimeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})
	client.CreateTimeout = 50 * time.Millisecond

	_, err := client.CreateCourse(context.Background(), map[string]any{"topic": "Rust"})
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
	assert.False(t, IsConnection(err))
}

func TestConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client := &HTTPClient{
		BaseURL:     base,
		ReadTimeout: time.Second,
		HttpClient:  &http.Client{},
		Logger:      zap.NewNop(),
	}
	_, err := client.GetCourse(context.Background(), "1")
	require.Error(t, err)
	assert.True(t, IsConnection(err))
}

func TestListCoursesAcceptsBothShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"bare array", `[{"id":1},{"id":2}]`, 2},
		{"paginated", `{"count":1,"results":[{"id":1}]}`, 1},
		{"empty page", `{"count":0}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "1000", r.URL.Query().Get("page_size"))
				w.Write([]byte(tt.body))
			})

			courses, err := client.ListCourses(context.Background())
			require.NoError(t, err)
			assert.Len(t, courses, tt.want)
		})
	}
}

func TestListCoursesStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.ListCourses(context.Background())
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, KindStatus, ue.Kind)
	assert.Equal(t, http.StatusServiceUnavailable, ue.StatusCode)
}

func TestGetTaskStatusPath(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/task-status/course-v1:orgA+101+2024/", r.URL.Path)
		w.Write([]byte(`{"state":"SUCCESS"}`))
	})

	resp, err := client.GetTaskStatus(context.Background(), "course-v1:orgA+101+2024")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
