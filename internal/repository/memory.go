package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/taskvault/taskvault/internal/models"
)

// MemoryRepository is an in-memory Repository used by tests and by the
// "memory" database type for local development.
type MemoryRepository struct {
	mu           sync.RWMutex
	usersByID    map[string]*models.User
	usersByEmail map[string]*models.User
	todos        map[string]*models.Todo
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		usersByID:    make(map[string]*models.User),
		usersByEmail: make(map[string]*models.User),
		todos:        make(map[string]*models.Todo),
	}
}

func (r *MemoryRepository) CreateUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.usersByEmail[user.Email]; exists {
		return ErrEmailExists
	}

	u := *user
	r.usersByID[u.ID] = &u
	r.usersByEmail[u.Email] = &u
	return nil
}

func (r *MemoryRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.usersByEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (r *MemoryRepository) GetUserByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.usersByID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (r *MemoryRepository) CreateTodo(_ context.Context, todo *models.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := *todo
	r.todos[t.ID] = &t
	return nil
}

func (r *MemoryRepository) ListTodosByOwner(_ context.Context, ownerID string) ([]*models.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	todos := make([]*models.Todo, 0)
	for _, todo := range r.todos {
		if todo.OwnerID == ownerID {
			t := *todo
			todos = append(todos, &t)
		}
	}
	sort.Slice(todos, func(i, j int) bool {
		return todos[i].CreatedAt.Before(todos[j].CreatedAt)
	})
	return todos, nil
}

func (r *MemoryRepository) GetTodo(_ context.Context, id, ownerID string) (*models.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	todo, ok := r.todos[id]
	if !ok || todo.OwnerID != ownerID {
		return nil, ErrTodoNotFound
	}
	t := *todo
	return &t, nil
}

func (r *MemoryRepository) UpdateTodo(_ context.Context, todo *models.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.todos[todo.ID]
	if !ok || existing.OwnerID != todo.OwnerID {
		return ErrTodoNotFound
	}
	t := *todo
	r.todos[t.ID] = &t
	return nil
}

func (r *MemoryRepository) DeleteTodo(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	todo, ok := r.todos[id]
	if !ok || todo.OwnerID != ownerID {
		return ErrTodoNotFound
	}
	delete(r.todos, id)
	return nil
}
