package attachment

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

type MockAttachmentRepo struct {
	mu          sync.Mutex
	rows        map[int64]*Attachment
	nextID      int64
	CreateErr   error
	DeleteErrOn map[int64]error
	Creates     int
}

func newMockRepo(rows ...Attachment) *MockAttachmentRepo {
	m := &MockAttachmentRepo{rows: map[int64]*Attachment{}, DeleteErrOn: map[int64]error{}}
	for i := range rows {
		r := rows[i]
		m.rows[r.ID] = &r
		if r.ID > m.nextID {
			m.nextID = r.ID
		}
	}
	return m
}

func (m *MockAttachmentRepo) Create(ctx context.Context, a *Attachment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.nextID++
	a.ID = m.nextID
	a.Created = time.Now()
	a.Modified = a.Created
	cp := *a
	m.rows[a.ID] = &cp
	m.Creates++
	return nil
}

func (m *MockAttachmentRepo) GetOwned(ctx context.Context, id int64, userID string) (*Attachment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[id]
	if !ok || a.UserID != userID {
		return nil, ErrAttachmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *MockAttachmentRepo) ListByOwner(ctx context.Context, userID, org, fileType string) ([]Attachment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Attachment{}
	for _, a := range m.rows {
		if a.UserID != userID || a.Org != org {
			continue
		}
		if fileType != "" && !strings.Contains(strings.ToLower(a.FileType), strings.ToLower(fileType)) {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *MockAttachmentRepo) FindOwned(ctx context.Context, ids []int64, userID string) ([]Attachment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Attachment{}
	for _, id := range ids {
		if a, ok := m.rows[id]; ok && a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *MockAttachmentRepo) UpdateDescription(ctx context.Context, id int64, userID, description string) (*Attachment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[id]
	if !ok || a.UserID != userID {
		return nil, ErrAttachmentNotFound
	}
	a.Description = description
	cp := *a
	return &cp, nil
}

func (m *MockAttachmentRepo) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.DeleteErrOn[id]; err != nil {
		return err
	}
	if _, ok := m.rows[id]; !ok {
		return ErrAttachmentNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *MockAttachmentRepo) EnsureIndexes(ctx context.Context) error { return nil }

func (m *MockAttachmentRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type MockStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	SaveErr error
	Saves   int
	Deletes int
}

func newMockStorage(paths ...string) *MockStorage {
	s := &MockStorage{objects: map[string][]byte{}}
	for _, p := range paths {
		s.objects[p] = []byte("x")
	}
	return s
}

func (s *MockStorage) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return "", s.SaveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.objects[name] = data
	s.Saves++
	return name, nil
}

func (s *MockStorage) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[name]; !ok {
		return errors.New("no such object")
	}
	delete(s.objects, name)
	s.Deletes++
	return nil
}

func (s *MockStorage) Exists(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[name]
	return ok, nil
}

func (s *MockStorage) URL(name string) string { return "/media/" + name }
