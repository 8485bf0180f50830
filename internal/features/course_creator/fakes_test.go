package course_creator

import (
	"context"
	"sync"

	"go-coursecreator/internal/features/aicc"
	"go-coursecreator/internal/features/notification"
	"go-coursecreator/internal/features/user"
)

type MockAICCClient struct {
	Resp     *aicc.Response
	Err      error
	Requests []map[string]any
}

func (m *MockAICCClient) CreateCourse(ctx context.Context, payload map[string]any) (*aicc.Response, error) {
	m.Requests = append(m.Requests, payload)
	return m.Resp, m.Err
}

func (m *MockAICCClient) ListCourses(ctx context.Context) ([]aicc.Course, error) {
	return nil, nil
}

func (m *MockAICCClient) GetCourse(ctx context.Context, id string) (*aicc.Response, error) {
	return nil, nil
}

func (m *MockAICCClient) GetTaskStatus(ctx context.Context, course string) (*aicc.Response, error) {
	return nil, nil
}

// MockNotifier records notifications synchronously
type MockNotifier struct {
	mu   sync.Mutex
	Sent []notification.Notification
}

func (m *MockNotifier) Notify(ctx context.Context, n notification.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, n)
}

func (m *MockNotifier) Types() []notification.MessageType {
	m.mu.Lock()
	defer m.mu.Unlock()
	var types []notification.MessageType
	for _, n := range m.Sent {
		types = append(types, n.Type)
	}
	return types
}

type MockUserService struct {
	Users map[string]*user.User
}

func (m *MockUserService) GetUser(ctx context.Context, id string) (*user.User, error) {
	if u, ok := m.Users[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (m *MockUserService) ResolveByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}
