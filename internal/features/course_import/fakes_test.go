package course_import

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"go-coursecreator/internal/features/notification"
	"go-coursecreator/internal/features/user"
)

type MockStager struct {
	Staged map[string][]byte
}

func newMockStager() *MockStager {
	return &MockStager{Staged: map[string][]byte{}}
}

func (m *MockStager) Stage(filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	path := "course_exports/" + filename
	m.Staged[path] = data
	return path, nil
}

func (m *MockStager) Cleanup(olderThan time.Duration) (int, error) {
	return 0, nil
}

type MockShellCreator struct {
	Created []CourseKey
	Err     error
}

func (m *MockShellCreator) CreateCourse(ctx context.Context, requesterID string, key CourseKey) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.Created = append(m.Created, key)
	return key.String(), nil
}

type enqueued struct {
	UserID, CourseKey, StagedPath, Filename, Language string
}

type MockDispatcher struct {
	Tasks []enqueued
}

func (m *MockDispatcher) Enqueue(ctx context.Context, userID, courseKey, stagedPath, filename, language string) (string, error) {
	m.Tasks = append(m.Tasks, enqueued{userID, courseKey, stagedPath, filename, language})
	return "task-1", nil
}

type MockUserService struct {
	ByEmail map[string][]user.User
}

func (m *MockUserService) GetUser(ctx context.Context, id string) (*user.User, error) {
	return nil, errors.New("not implemented")
}

func (m *MockUserService) ResolveByEmail(ctx context.Context, email string) (*user.User, error) {
	users := m.ByEmail[email]
	switch len(users) {
	case 0:
		return nil, user.ErrUserNotFound
	case 1:
		return &users[0], nil
	default:
		return nil, user.ErrAmbiguousUser
	}
}

type MockNotifier struct {
	mu   sync.Mutex
	Sent []notification.Notification
}

func (m *MockNotifier) Notify(ctx context.Context, n notification.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, n)
}
