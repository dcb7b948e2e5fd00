package user

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tendant/idm-console/pkg/database"
	apperrors "github.com/tendant/idm-console/pkg/errors"
	"github.com/tendant/idm-console/pkg/schema"
)

// InMemoryUserRepository implements UserRepository using in-memory storage
type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]schema.User
	now   func() time.Time
}

// NewInMemoryUserRepository creates a new in-memory user repository
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[string]schema.User),
		now:   time.Now,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func fieldValue(u schema.User) func(string) string {
	return func(key string) string {
		switch key {
		case "id":
			return u.ID
		case "username":
			return deref(u.Username)
		case "primaryEmail":
			return deref(u.PrimaryEmail)
		case "name":
			return deref(u.Name)
		}
		return ""
	}
}

// filter returns matching users newest first. Callers hold the lock.
func (r *InMemoryUserRepository) filter(keep func(schema.User) bool) []schema.User {
	users := make([]schema.User, 0, len(r.users))
	for _, u := range r.users {
		if keep(u) {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.After(users[j].CreatedAt)
		}
		return users[i].ID < users[j].ID
	})
	return users
}

func (r *InMemoryUserRepository) FindUsersByIDs(ctx context.Context, ids []string) ([]schema.User, error) {
	if len(ids) == 0 {
		return []schema.User{}, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	return r.filter(func(u schema.User) bool { return wanted[u.ID] }), nil
}

func (r *InMemoryUserRepository) FindUserByID(ctx context.Context, id string) (schema.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	return u, ok, nil
}

func (r *InMemoryUserRepository) FindAllUsers(ctx context.Context, page database.Page, search database.Search) ([]schema.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := r.filter(func(u schema.User) bool {
		return search.Accepts(SearchFields, fieldValue(u))
	})
	return database.PageSlice(users, page), nil
}

func (r *InMemoryUserRepository) CountUsers(ctx context.Context, search database.Search) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := r.filter(func(u schema.User) bool {
		return search.Accepts(SearchFields, fieldValue(u))
	})
	return int64(len(users)), nil
}

func (r *InMemoryUserRepository) InsertUser(ctx context.Context, create schema.CreateUser) (schema.User, error) {
	if err := schema.Users.Validate(create.Record(), true); err != nil {
		return schema.User{}, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid record")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[create.ID]; exists {
		return schema.User{}, apperrors.Conflict(schema.Users.Table(), "users_pkey", nil)
	}
	for _, existing := range r.users {
		if create.Username != nil && deref(existing.Username) == *create.Username {
			return schema.User{}, apperrors.Conflict(schema.Users.Table(), "users_username_key", nil)
		}
		if create.PrimaryEmail != nil && deref(existing.PrimaryEmail) == *create.PrimaryEmail {
			return schema.User{}, apperrors.Conflict(schema.Users.Table(), "users_primary_email_key", nil)
		}
	}

	u := schema.User{
		ID:           create.ID,
		Username:     create.Username,
		PrimaryEmail: create.PrimaryEmail,
		Name:         create.Name,
		Avatar:       create.Avatar,
		CustomData:   map[string]any{},
		CreatedAt:    r.now(),
	}
	if create.CustomData != nil {
		u.CustomData = create.CustomData
	}

	r.users[u.ID] = u
	return u, nil
}
