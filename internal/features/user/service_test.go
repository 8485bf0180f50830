package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockUserRepo struct {
	Users     []User
	Err       error
	FindByIDs int
}

func (m *MockUserRepo) FindByID(ctx context.Context, id string) (*User, error) {
	m.FindByIDs++
	for i := range m.Users {
		if m.Users[i].ID == id {
			return &m.Users[i], nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string, limit int64) ([]User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []User
	for _, u := range m.Users {
		if u.Email == email && int64(len(out)) < limit {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *MockUserRepo) Upsert(ctx context.Context, user *User) error {
	m.Users = append(m.Users, *user)
	return nil
}

func TestResolveByEmail(t *testing.T) {
	repo := &MockUserRepo{Users: []User{
		{ID: "1", Email: "solo@example.com"},
		{ID: "2", Email: "dup@example.com"},
		{ID: "3", Email: "dup@example.com"},
	}}
	svc := NewUserService(repo)
	ctx := context.Background()

	u, err := svc.ResolveByEmail(ctx, "solo@example.com")
	require.NoError(t, err)
	assert.Equal(t, "1", u.ID)

	_, err = svc.ResolveByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.ResolveByEmail(ctx, "dup@example.com")
	assert.ErrorIs(t, err, ErrAmbiguousUser)
}

func TestResolveByEmailRepoError(t *testing.T) {
	svc := NewUserService(&MockUserRepo{Err: errors.New("boom")})

	_, err := svc.ResolveByEmail(context.Background(), "a@example.com")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}

func TestGetUser(t *testing.T) {
	svc := NewUserService(&MockUserRepo{Users: []User{{ID: "5", Username: "eve"}}})

	u, err := svc.GetUser(context.Background(), "5")
	require.NoError(t, err)
	assert.Equal(t, "eve", u.Username)

	_, err = svc.GetUser(context.Background(), "6")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserCachesByID(t *testing.T) {
	repo := &MockUserRepo{Users: []User{{ID: "5", Username: "eve"}}}
	svc := NewUserService(repo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		u, err := svc.GetUser(ctx, "5")
		require.NoError(t, err)
		assert.Equal(t, "eve", u.Username)
	}
	assert.Equal(t, 1, repo.FindByIDs)

	// Callers get a copy, not the cached value.
	u, _ := svc.GetUser(ctx, "5")
	u.Username = "mallory"
	again, _ := svc.GetUser(ctx, "5")
	assert.Equal(t, "eve", again.Username)
}

func TestGetUserCacheExpires(t *testing.T) {
	repo := &MockUserRepo{Users: []User{{ID: "5", Username: "eve"}}}
	svc := NewUserService(repo).(*UserServiceImpl)
	svc.ttl = time.Nanosecond
	ctx := context.Background()

	_, err := svc.GetUser(ctx, "5")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = svc.GetUser(ctx, "5")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.FindByIDs)
}

func TestGetUserMissNotCached(t *testing.T) {
	repo := &MockUserRepo{}
	svc := NewUserService(repo)

	_, err := svc.GetUser(context.Background(), "9")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.GetUser(context.Background(), "9")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, 2, repo.FindByIDs)
}
