package repository

import (
	"context"
	"sync"
	"time"

	authdomain "explorehub-backend/internal/auth/domain"

	"github.com/google/uuid"
)

// memoryUserRepository keeps users in process memory. It backs DB_DRIVER=memory
// for local runs and the HTTP tests.
type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]authdomain.User
}

// NewMemoryUserRepository creates an empty in-memory UserRepository
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		users: make(map[string]authdomain.User),
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *authdomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return authdomain.ErrDuplicateEmail
		}
		if u.Username == user.Username {
			return authdomain.ErrDuplicateUsername
		}
	}

	user.ID = uuid.New().String()
	user.CreatedAt = time.Now().UTC()
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (*authdomain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, authdomain.ErrNotFound
	}
	return &u, nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*authdomain.User, error) {
	return r.find(func(u *authdomain.User) bool { return u.Email == email })
}

func (r *memoryUserRepository) FindByUsername(_ context.Context, username string) (*authdomain.User, error) {
	return r.find(func(u *authdomain.User) bool { return u.Username == username })
}

func (r *memoryUserRepository) find(match func(*authdomain.User) bool) (*authdomain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(&u) {
			found := u
			return &found, nil
		}
	}
	return nil, authdomain.ErrNotFound
}

func (r *memoryUserRepository) EnsureIndexes(context.Context) error { return nil }
