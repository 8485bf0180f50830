package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrAmbiguousUser = errors.New("multiple users found")
)

const (
	userCacheSize = 1024
	userCacheTTL  = 5 * time.Minute
)

type UserService interface {
	GetUser(ctx context.Context, id string) (*User, error)
	// ResolveByEmail requires exactly one account with the given email.
	ResolveByEmail(ctx context.Context, email string) (*User, error)
}

type cachedUser struct {
	user     User
	storedAt time.Time
}

type UserServiceImpl struct {
	Repo  UserRepository
	cache *lru.Cache[string, cachedUser]
	ttl   time.Duration
}

func NewUserService(repo UserRepository) UserService {
	cache, _ := lru.New[string, cachedUser](userCacheSize)
	return &UserServiceImpl{Repo: repo, cache: cache, ttl: userCacheTTL}
}

// GetUser serves recently loaded users from memory. Every authenticated
// request hits this, so id lookups are cached briefly.
func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (*User, error) {
	if s.cache != nil {
		if entry, ok := s.cache.Get(id); ok {
			if time.Since(entry.storedAt) < s.ttl {
				u := entry.user
				return &u, nil
			}
			s.cache.Remove(id)
		}
	}

	u, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Add(id, cachedUser{user: *u, storedAt: time.Now()})
	}
	return u, nil
}

// ResolveByEmail is not cached: imports must see the current set of accounts.
func (s *UserServiceImpl) ResolveByEmail(ctx context.Context, email string) (*User, error) {
	users, err := s.Repo.FindByEmail(ctx, email, 2)
	if err != nil {
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}

	switch len(users) {
	case 0:
		return nil, ErrUserNotFound
	case 1:
		return &users[0], nil
	default:
		return nil, ErrAmbiguousUser
	}
}
